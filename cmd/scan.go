package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCmd(a *app) *cobra.Command {
	var flags endpointFlags

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the game library and report counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, _, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			stats := service.Stats()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Found %d games (%d set up), %d libraries on the backend\n",
				stats.TotalGames, stats.SetupGames, stats.TotalLibraries)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
