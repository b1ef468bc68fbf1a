package cmd

import (
	"fmt"

	"github.com/rzbill/tms/pkg/cli/format"
	"github.com/rzbill/tms/pkg/fsutil"
	"github.com/rzbill/tms/pkg/workspace"
	"github.com/spf13/cobra"
)

func newCleanCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clean [project]",
		Short: "Remove cached project workspaces",
		Long: `Remove the workspace of a project, or with --all the whole cache.

The next run of a project recreates its workspace from the Tomcat
installation. Cleaning something that is not cached succeeds.`,
		Example: `  tms clean shop
  tms clean --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify either a project or --all")
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			project := ""
			if len(args) == 1 {
				project = args[0]
			}

			fs := fsutil.NewOS(a.registry.Get("fsutil"))
			orch := workspace.New(fs, nil, workspace.WithLogger(a.registry.Root()))
			if err := orch.Clean(a.cacheBase(cfg), project); err != nil {
				return fmt.Errorf("failed to clean cache: %w", err)
			}

			if project == "" {
				fmt.Fprintln(a.stdout, format.Success("Cache cleaned"))
			} else {
				fmt.Fprintf(a.stdout, "%s %s\n", format.Success("Cache cleaned:"), project)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove the workspaces of every project")
	return cmd
}
