package format

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Colors used across command output
var (
	GreenColor    = color.New(color.FgGreen)
	YellowColor   = color.New(color.FgYellow)
	RedColor      = color.New(color.FgRed)
	CyanColor     = color.New(color.FgCyan)
	BoldCyanColor = color.New(color.FgCyan, color.Bold)
	BoldBlue      = color.New(color.FgBlue, color.Bold)
	DimColor      = color.New(color.FgHiBlack)
	BoldGreen     = color.New(color.FgGreen, color.Bold)
	BoldYellow    = color.New(color.FgYellow, color.Bold)
	BoldRed       = color.New(color.FgRed, color.Bold)
)

func init() {
	color.NoColor = !detectColor(os.LookupEnv, term.IsTerminal(int(os.Stdout.Fd())))
}

// detectColor decides whether output should be colored. NO_COLOR and
// TMS_NO_COLOR disable color, TMS_FORCE_COLOR enables it even when stdout
// is not a terminal.
func detectColor(lookup func(string) (string, bool), isTerminal bool) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if _, ok := lookup("TMS_NO_COLOR"); ok {
		return false
	}
	if _, ok := lookup("TMS_FORCE_COLOR"); ok {
		return true
	}
	return isTerminal
}

// EnableColor enables or disables colored output globally
func EnableColor(enable bool) {
	color.NoColor = !enable
}

// IsColorEnabled returns whether colored output is enabled
func IsColorEnabled() bool {
	return !color.NoColor
}

// Success formats a message as a success (green)
func Success(format string, a ...interface{}) string {
	return GreenColor.Sprintf(format, a...)
}

// Warning formats a message as a warning (yellow)
func Warning(format string, a ...interface{}) string {
	return YellowColor.Sprintf(format, a...)
}

// Error formats a message as an error (red)
func Error(format string, a ...interface{}) string {
	return RedColor.Sprintf(format, a...)
}

// Info formats a message as info (cyan)
func Info(format string, a ...interface{}) string {
	return CyanColor.Sprintf(format, a...)
}

// Header formats a message as a header (bold blue)
func Header(format string, a ...interface{}) string {
	return BoldBlue.Sprintf(format, a...)
}

// Dim formats a message as dimmed
func Dim(format string, a ...interface{}) string {
	return DimColor.Sprintf(format, a...)
}

// Label formats a key and value with a label style
func Label(key, value string) string {
	return fmt.Sprintf("%s %s", BoldCyanColor.Sprint(key+":"), value)
}

// StatusSymbol returns a colorized status symbol
func StatusSymbol(success bool) string {
	if success {
		return GreenColor.Sprint("✓")
	}
	return RedColor.Sprint("✗")
}

// StatusLabel formats a status label based on the status value
func StatusLabel(status string) string {
	status = strings.ToLower(status)
	switch status {
	case "ok", "present", "ready", "cached":
		return BoldGreen.Sprint(status)
	case "missing", "not cached":
		return BoldYellow.Sprint(status)
	case "invalid", "error", "failed":
		return BoldRed.Sprint(status)
	default:
		return status
	}
}
