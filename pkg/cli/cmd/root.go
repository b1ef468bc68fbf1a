package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/rzbill/tms/internal/config"
	"github.com/rzbill/tms/pkg/cli/format"
	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/runner"
	"github.com/rzbill/tms/pkg/runner/process"
	"github.com/rzbill/tms/pkg/types"
	"github.com/rzbill/tms/pkg/utils"
	"github.com/rzbill/tms/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds what every command shares. Settings and loggers are filled in
// by the root command once flags are parsed.
type app struct {
	viper     *viper.Viper
	home      string
	lookupEnv config.LookupFunc
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	printer   *format.ErrorPrinter

	newLauncher func(*app) runner.Launcher

	settings *config.Settings
	registry *log.Registry
}

func newApp(stdout, stderr io.Writer) *app {
	home, _ := os.UserHomeDir()
	return &app{
		viper:       viper.New(),
		home:        home,
		lookupEnv:   os.LookupEnv,
		stdin:       os.Stdin,
		stdout:      stdout,
		stderr:      stderr,
		printer:     format.NewErrorPrinter(stderr),
		newLauncher: processLauncher,
	}
}

func processLauncher(a *app) runner.Launcher {
	return process.NewProcessRunner(
		process.WithLogger(a.registry.Get("process")),
		process.WithStdio(a.stdin, a.stdout, a.stderr),
	)
}

// exitError carries the server's exit status out of the run command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("server exited with status %d", e.code)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tms",
		Short: "tms - Tomcat multi-project starter",
		Long: `tms runs several web projects against one local Tomcat installation.

Each project gets its own server base under the cache directory, with a
generated server.xml and one context descriptor per web document, and is
started through Tomcat's own launcher script.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate(version.Info() + "\n")

	flags := cmd.PersistentFlags()
	flags.String("config", "", "configuration file (default is $HOME/.tms/config.ini)")
	flags.String("log-level", "", "log level: debug, info, warn or error (default from the configuration file)")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-file", "", "also write logs to this file")
	flags.Bool("no-color", false, "disable colored output")

	bindings := map[string]string{
		"config":     "config",
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
		"no_color":   "no-color",
	}
	for key, flag := range bindings {
		_ = a.viper.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newCleanCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd(a))

	return cmd
}

// Execute runs the tms command line and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(newApp(os.Stdout, os.Stderr).execute(os.Args[1:]))
}

func (a *app) execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	a.printer.PrintError(err)
	return 1
}

// init reads the tool settings and builds the loggers.
func (a *app) init() error {
	settings, err := config.LoadSettings(a.viper, a.home)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings.ConfigFile = utils.ExpandHome(utils.PickFirstNonEmpty(settings.ConfigFile, config.DefaultPath(a.home)), a.home)

	if settings.NoColor {
		format.EnableColor(false)
		pterm.DisableColor()
	}

	logConfig := settings.Log
	logConfig.Writer = a.stderr
	root, err := log.ApplyConfig(&logConfig)
	if err != nil {
		return fmt.Errorf("invalid logging settings: %w", err)
	}

	a.settings = settings
	a.registry = log.NewRegistry(root)
	a.registry.Root().Debug("Settings loaded", log.Str("config", settings.ConfigFile))
	return nil
}

// loadConfig loads the configuration file. An invalid file has its
// problems printed and fails the command.
func (a *app) loadConfig() (*config.Configuration, error) {
	path := a.settings.ConfigFile
	cfg, err := config.Load(path,
		config.WithLogger(a.registry.Get("config")),
		config.WithLookupEnv(a.lookupEnv),
		config.WithHomeDir(a.home),
	)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.KindEnvironment, err, "no configuration file; run `tms config init` to create one")
		}
		return nil, err
	}

	if !a.settings.LevelOverridden() {
		a.registry.SetLevel(cfg.Global().LogLevel)
	}

	if !cfg.Valid() {
		a.printer.PrintProblems(path, cfg.Problems())
		return nil, types.NewConfigValueError("configuration file %s is invalid", path)
	}
	return cfg, nil
}

// cacheBase returns the resolved cache directory of cfg.
func (a *app) cacheBase(cfg *config.Configuration) string {
	return utils.ExpandHome(cfg.Global().CacheDir, a.home)
}
