package cmd

import (
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show the fully resolved settings of a project",
		Long: `Show a project after global defaults, project overrides and
environment references have been applied.`,
		Example: `  tms show shop
  tms show shop -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			p, err := presentProject(cfg, args[0])
			if err != nil {
				return err
			}
			return outputResource(a.stdout, outputFormat, p, func() error {
				return NewResourceTable().RenderProject(a.stdout, p)
			})
		},
	}

	addOutputFlag(cmd, &outputFormat)
	return cmd
}
