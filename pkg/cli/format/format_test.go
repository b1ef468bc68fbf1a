package format

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rzbill/tms/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestDetectColor(t *testing.T) {
	env := func(vars ...string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			for _, v := range vars {
				if v == key {
					return "1", true
				}
			}
			return "", false
		}
	}

	assert.True(t, detectColor(env(), true))
	assert.False(t, detectColor(env(), false))
	assert.False(t, detectColor(env("NO_COLOR"), true))
	assert.False(t, detectColor(env("TMS_NO_COLOR"), true))
	assert.True(t, detectColor(env("TMS_FORCE_COLOR"), false))
}

func TestColorHelpersWithoutColor(t *testing.T) {
	prev := IsColorEnabled()
	EnableColor(false)
	defer EnableColor(prev)

	assert.Equal(t, "done 3", Success("done %d", 3))
	assert.Equal(t, "port: 8080", Label("port", "8080"))
	assert.Equal(t, "✓", StatusSymbol(true))
	assert.Equal(t, "✗", StatusSymbol(false))
	assert.Equal(t, "present", StatusLabel("Present"))
}

func TestPrintProblems(t *testing.T) {
	prev := IsColorEnabled()
	EnableColor(false)
	defer EnableColor(prev)

	var out bytes.Buffer
	p := &ErrorPrinter{Out: &out, TerminalWidth: 20}
	p.PrintProblems("/home/dev/.tms/config.ini", []error{
		types.NewConfigSyntaxError("line 3: missing '='"),
		types.NewConfigValueError("global log_level: unknown level %q", "loud"),
	})

	text := out.String()
	assert.Contains(t, text, "× CONFIGURATION INVALID /home/dev/.tms/config.ini")
	assert.Contains(t, text, "Skipped: line 3: missing '='")
	assert.Contains(t, text, `Error: global log_level: unknown level "loud"`)
	assert.Contains(t, text, "Hint: Check the value against `tms config template`.")
}

func TestPrintError(t *testing.T) {
	prev := IsColorEnabled()
	EnableColor(false)
	defer EnableColor(prev)

	var out bytes.Buffer
	p := &ErrorPrinter{Out: &out, TerminalWidth: 80}

	err := fmt.Errorf("generate contexts: %w", types.NewResourceMissingError("web document %q not found", "war9"))
	p.PrintError(err)
	assert.Contains(t, out.String(), `Error: generate contexts: web document "war9" not found`)
	assert.Contains(t, out.String(), "tms list <project>")

	assert.Empty(t, Hint(errors.New("plain")))
}
