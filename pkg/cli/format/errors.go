package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rzbill/tms/pkg/types"
	"golang.org/x/term"
)

// Error colors
var (
	ErrorColor   = color.New(color.FgRed, color.Bold)
	WarningColor = color.New(color.FgYellow, color.Bold)
	SuccessColor = color.New(color.FgGreen, color.Bold)
	FileColor    = color.New(color.FgCyan)
	HintColor    = color.New(color.FgYellow, color.Italic)
)

var hints = map[types.ErrorKind]string{
	types.KindConfigSyntax:    "Every line must be a [group] header, a key = value pair or a comment.",
	types.KindConfigValue:     "Check the value against `tms config template`.",
	types.KindEnvironment:     "Check java_home, tomcat and cache_dir point at existing installations.",
	types.KindResourceMissing: "Run `tms list <project>` to see the configured web documents.",
	types.KindIO:              "Check permissions on the cache directory.",
}

// Hint returns the remediation hint for err's kind, if any.
func Hint(err error) string {
	kind, ok := types.KindOf(err)
	if !ok {
		return ""
	}
	return hints[kind]
}

// ErrorPrinter prints errors for the operator.
type ErrorPrinter struct {
	Out           io.Writer
	TerminalWidth int
}

// NewErrorPrinter creates a printer writing to out.
func NewErrorPrinter(out io.Writer) *ErrorPrinter {
	width := 80
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &ErrorPrinter{Out: out, TerminalWidth: width}
}

// PrintError prints err with a hint for its kind.
func (p *ErrorPrinter) PrintError(err error) {
	ErrorColor.Fprintf(p.Out, "Error: %v\n", err)
	if hint := Hint(err); hint != "" {
		HintColor.Fprintf(p.Out, "  Hint: %s\n", hint)
	}
}

// PrintProblems prints every problem found in the configuration file at path.
func (p *ErrorPrinter) PrintProblems(path string, problems []error) {
	if len(problems) == 0 {
		return
	}

	width := p.TerminalWidth
	if width > 80 {
		width = 80
	}

	fmt.Fprintln(p.Out)
	ErrorColor.Fprint(p.Out, "× CONFIGURATION INVALID ")
	FileColor.Fprintln(p.Out, path)
	fmt.Fprintln(p.Out, strings.Repeat("─", width))

	for _, problem := range problems {
		if types.IsKind(problem, types.KindConfigSyntax) {
			WarningColor.Fprintf(p.Out, "  Skipped: %v\n", problem)
			continue
		}
		ErrorColor.Fprintf(p.Out, "  Error: %v\n", problem)
		if hint := Hint(problem); hint != "" {
			HintColor.Fprintf(p.Out, "  Hint: %s\n", hint)
		}
	}
	fmt.Fprintln(p.Out)
}
