package cmd

import (
	"fmt"

	"github.com/rzbill/tms/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the tms version information",
		Long:  `Display detailed version information about the tms binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputResource(a.stdout, outputFormat, version.Get(), func() error {
				fmt.Fprintln(a.stdout, version.Info())
				return nil
			})
		},
	}

	addOutputFlag(cmd, &outputFormat)
	return cmd
}
