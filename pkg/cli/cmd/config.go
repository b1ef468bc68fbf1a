package cmd

import (
	"fmt"

	"github.com/rzbill/tms/internal/config"
	"github.com/rzbill/tms/pkg/cli/format"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the tms configuration file",
		Long: `Inspect and create the tms configuration file.

This command allows you to:
- Print an example configuration
- Print where the configuration file is read from
- Create the configuration file from the example`,
	}

	cmd.AddCommand(newConfigTemplateCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))

	return cmd
}

func newConfigTemplateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.stdout, config.Template())
			return nil
		},
	}
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, a.settings.ConfigFile)
			return nil
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file from the example",
		Long: `Create the configuration file from the example. An existing
file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.settings.ConfigFile
			created, err := config.WriteTemplate(path)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(a.stdout, "%s %s\n", format.Warning("Configuration already exists:"), path)
				return nil
			}
			fmt.Fprintf(a.stdout, "%s %s\n", format.Success("Created configuration:"), path)
			return nil
		},
	}
}
