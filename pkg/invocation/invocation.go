// Package invocation builds the environment and command line used to start
// the server launcher script.
package invocation

import (
	"runtime"
	"strings"
)

// Shell selects how an Invocation is rendered as a single command string.
type Shell int

const (
	// ShellPOSIX renders `NAME='value' ... executable args`.
	ShellPOSIX Shell = iota
	// ShellWindows renders `set "NAME=value" & ... & executable args`.
	ShellWindows
)

// String returns the shell name.
func (s Shell) String() string {
	if s == ShellWindows {
		return "cmd"
	}
	return "sh"
}

// DefaultShell returns the shell of the running platform.
func DefaultShell() Shell {
	if runtime.GOOS == "windows" {
		return ShellWindows
	}
	return ShellPOSIX
}

// EnvVar is one environment assignment. An empty Value clears the variable
// for the launched process.
type EnvVar struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Builder accumulates environment assignments and arguments in order.
type Builder struct {
	shell Shell
	env   []EnvVar
	args  []string
}

// NewBuilder creates a Builder for shell.
func NewBuilder(shell Shell) *Builder {
	return &Builder{shell: shell}
}

// Env sets name to value. Setting a name twice keeps the first position and
// the last value.
func (b *Builder) Env(name, value string) *Builder {
	for i := range b.env {
		if sameName(b.shell, b.env[i].Name, name) {
			b.env[i].Value = value
			return b
		}
	}
	b.env = append(b.env, EnvVar{Name: name, Value: value})
	return b
}

// Arg appends an argument for the executable.
func (b *Builder) Arg(arg string) *Builder {
	b.args = append(b.args, arg)
	return b
}

// Build returns the invocation of executable with everything accumulated so
// far. The Builder may be reused afterwards.
func (b *Builder) Build(executable string) Invocation {
	inv := Invocation{
		Shell:      b.shell,
		Executable: executable,
		Env:        make([]EnvVar, len(b.env)),
		Args:       make([]string, len(b.args)),
	}
	copy(inv.Env, b.env)
	copy(inv.Args, b.args)
	return inv
}

// Invocation is a fully specified launch: environment, executable and
// arguments.
type Invocation struct {
	Shell      Shell    `json:"-" yaml:"-"`
	Executable string   `json:"executable" yaml:"executable"`
	Env        []EnvVar `json:"env" yaml:"env"`
	Args       []string `json:"args" yaml:"args"`
}

// Lookup returns the value assigned to name.
func (i Invocation) Lookup(name string) (string, bool) {
	for _, e := range i.Env {
		if sameName(i.Shell, e.Name, name) {
			return e.Value, true
		}
	}
	return "", false
}

// String renders the invocation as one command for its shell. Running the
// string in that shell sets every variable for the executable only.
func (i Invocation) String() string {
	var parts []string
	switch i.Shell {
	case ShellWindows:
		for _, e := range i.Env {
			parts = append(parts, `set "`+e.Name+"="+e.Value+`"`)
		}
		parts = append(parts, commandLine(i.Executable, i.Args, quoteWindows))
		return strings.Join(parts, " & ")
	default:
		for _, e := range i.Env {
			parts = append(parts, e.Name+"="+quotePOSIX(e.Value))
		}
		parts = append(parts, commandLine(i.Executable, i.Args, quotePOSIX))
		return strings.Join(parts, " ")
	}
}

// Argv returns the argument vector to execute directly. Batch scripts are
// run through cmd.
func (i Invocation) Argv() []string {
	var argv []string
	if i.Shell == ShellWindows {
		argv = append(argv, "cmd", "/C")
	}
	argv = append(argv, i.Executable)
	return append(argv, i.Args...)
}

// Environ returns base with the invocation's assignments applied, in the
// KEY=value form used by os/exec.
func (i Invocation) Environ(base []string) []string {
	env := make([]string, 0, len(base)+len(i.Env))
	for _, kv := range base {
		name := kv
		if eq := strings.IndexByte(kv, '='); eq > 0 {
			name = kv[:eq]
		}
		if _, ok := i.Lookup(name); ok {
			continue
		}
		env = append(env, kv)
	}
	for _, e := range i.Env {
		env = append(env, e.Name+"="+e.Value)
	}
	return env
}

func commandLine(executable string, args []string, quote func(string) string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(executable))
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func sameName(shell Shell, a, b string) bool {
	if shell == ShellWindows {
		return strings.EqualFold(a, b)
	}
	return a == b
}

const posixSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./:=@,+%"

func quotePOSIX(s string) string {
	if s != "" && strings.Trim(s, posixSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteWindows(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t&|<>^\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
