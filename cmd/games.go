package cmd

import (
	"fmt"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newGamesCmd(a *app) *cobra.Command {
	var flags endpointFlags

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List scanned games and their setup state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, _, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			for _, game := range service.Games() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tFW %s\t%s\n",
					game.ID, game.Title, game.RequiredFirmware, statusLabel(game))
			}

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func statusLabel(game domain.Game) string {
	if game.HasCompatLibraries {
		return "ready"
	}

	return "needs setup"
}
