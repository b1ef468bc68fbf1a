// Package process launches the server in a local child process.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rzbill/tms/pkg/invocation"
	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/runner"
	"github.com/rzbill/tms/pkg/types"
)

// DefaultStopTimeout is how long an interrupted server gets to shut down
// before it is killed.
const DefaultStopTimeout = 10 * time.Second

var _ runner.Launcher = &ProcessRunner{}

// ProcessRunner runs invocations as child processes attached to the
// terminal.
type ProcessRunner struct {
	logger      log.Logger
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	baseEnv     func() []string
	dir         string
	stopTimeout time.Duration
}

// ProcessOption is a function that configures a ProcessRunner
type ProcessOption func(*ProcessRunner)

// WithLogger sets the logger for the runner
func WithLogger(logger log.Logger) ProcessOption {
	return func(r *ProcessRunner) {
		r.logger = logger
	}
}

// WithStdio replaces the streams the child process is attached to.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) ProcessOption {
	return func(r *ProcessRunner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithBaseEnv sets the environment the invocation's assignments are
// applied to. It defaults to the current process environment.
func WithBaseEnv(env []string) ProcessOption {
	return func(r *ProcessRunner) {
		r.baseEnv = func() []string { return env }
	}
}

// WithWorkDir sets the working directory of the child process.
func WithWorkDir(dir string) ProcessOption {
	return func(r *ProcessRunner) {
		r.dir = dir
	}
}

// WithStopTimeout sets how long a cancelled process may take to exit.
func WithStopTimeout(timeout time.Duration) ProcessOption {
	return func(r *ProcessRunner) {
		r.stopTimeout = timeout
	}
}

// NewProcessRunner creates a new ProcessRunner with the given options
func NewProcessRunner(options ...ProcessOption) *ProcessRunner {
	r := &ProcessRunner{
		logger:      log.Discard(),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		baseEnv:     os.Environ,
		stopTimeout: DefaultStopTimeout,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Launch runs inv and blocks until it exits. Cancelling ctx interrupts the
// process and kills it if it is still running after the stop timeout.
func (r *ProcessRunner) Launch(ctx context.Context, inv invocation.Invocation) (int, error) {
	if err := ValidateExecutable(inv.Executable); err != nil {
		return -1, types.NewError(types.KindEnvironment, err, "cannot launch %s", inv.Executable)
	}

	argv := inv.Argv()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = inv.Environ(r.baseEnv())
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Cancel = func() error {
		return interrupt(cmd.Process)
	}
	cmd.WaitDelay = r.stopTimeout

	r.logger.Debug("Launching process", log.Str("command", inv.String()))

	if err := cmd.Start(); err != nil {
		return -1, types.NewError(types.KindEnvironment, err, "start %s", inv.Executable)
	}

	r.logger.Info("Started process",
		log.Str("executable", inv.Executable),
		log.Int("pid", cmd.Process.Pid))

	err := cmd.Wait()
	exitCode := cmd.ProcessState.ExitCode()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && ctx.Err() == nil {
			return exitCode, fmt.Errorf("wait for %s: %w", inv.Executable, err)
		}
	}

	r.logger.Info("Process completed",
		log.Str("executable", inv.Executable),
		log.Int("exit_code", exitCode))

	return exitCode, nil
}
