package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rzbill/tms/pkg/cli/format"
	"github.com/rzbill/tms/pkg/fsutil"
	"github.com/rzbill/tms/pkg/types"
	"github.com/rzbill/tms/pkg/workspace"
	"github.com/spf13/cobra"
)

type runOptions struct {
	documents  []string
	all        bool
	httpPort   int
	serverPort int
	jpdaPort   int
	debug      bool
	newWindow  bool
	dryRun     bool
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <project>",
		Short: "Prepare a project's workspace and start Tomcat",
		Long: `Prepare the workspace of a project and start Tomcat from it.

The workspace configuration is copied from the Tomcat installation, a
server.xml is generated for the project's ports and one context descriptor
is written per deployed web document. Without --web every web document of
the project is deployed.

The command blocks until Tomcat exits and exits with Tomcat's status.`,
		Example: `  # Run every web document of the shop project
  tms run shop

  # Run two documents on another port with the debugger enabled
  tms run shop -w app -w admin --http-port 9090 -d

  # Show what would be done
  tms run shop --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProject(cmd.Context(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.documents, "web", "w", nil, "Web document to deploy (repeatable)")
	flags.BoolVar(&opts.all, "all", false, "Deploy every web document of the project")
	flags.IntVar(&opts.httpPort, "http-port", 0, "Override the HTTP connector port")
	flags.IntVar(&opts.serverPort, "server-port", 0, "Override the shutdown port")
	flags.IntVar(&opts.jpdaPort, "jpda-port", 0, "Override the debugger port")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Start with the debugger listening on the JPDA port")
	flags.BoolVarP(&opts.newWindow, "new-window", "n", false, "Start in a new window instead of the current terminal")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Validate and print the command without changing anything")
	cmd.MarkFlagsMutuallyExclusive("web", "all")

	return cmd
}

func (a *app) runProject(ctx context.Context, name string, opts *runOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	p, err := presentProject(cfg, name)
	if err != nil {
		return err
	}
	p = p.ApplyOverrides(types.PortOverrides{
		HTTPPort:   opts.httpPort,
		ServerPort: opts.serverPort,
		JPDAPort:   opts.jpdaPort,
	})

	req := workspace.Request{
		Project:   p,
		CacheBase: a.cacheBase(cfg),
		Debug:     opts.debug,
		NewWindow: opts.newWindow,
	}
	if !opts.all {
		req.Documents = opts.documents
	}

	if opts.dryRun {
		return a.dryRun(ctx, req)
	}

	fs := fsutil.NewOS(a.registry.Get("fsutil"))
	orch := workspace.New(fs, a.newLauncher(a), workspace.WithLogger(a.registry.Root()))
	code, err := orch.Run(ctx, req)
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func (a *app) dryRun(ctx context.Context, req workspace.Request) error {
	fs := fsutil.NewDryRun(a.registry.Get("fsutil"))
	orch := workspace.New(fs, nil, workspace.WithLogger(a.registry.Root()))

	plan, err := orch.Prepare(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, format.Header("Dry run of %s", plan.Project))
	fmt.Fprintln(a.stdout, format.Label("Workspace", plan.Workspace.Root))
	fmt.Fprintln(a.stdout, format.Label("Documents", strings.Join(plan.Documents.Names(), ", ")))
	fmt.Fprintln(a.stdout, format.Label("Skipped", fmt.Sprintf("%d filesystem changes", len(fs.Operations()))))
	fmt.Fprintln(a.stdout, format.Label("Command", plan.Invocation.String()))
	return nil
}
