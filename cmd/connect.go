package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConnectCmd(a *app) *cobra.Command {
	var flags endpointFlags

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to the PS5 and save the endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, prefs, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			if err := a.prefsRepo.Save(cmd.Context(), prefs); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}

			stats := service.Stats()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Connected to PS5 at %s (%d games)\n",
				service.Endpoint().ConsoleIP, stats.TotalGames)
			return nil
		},
	}
	flags.register(cmd)
	flags.registerFirmware(cmd)

	return cmd
}
