package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/backpork/backpork-cli/internal/adapters/render/dashboard"
	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var flags endpointFlags
	var asJSON bool
	var recent int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the connection state, stats and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, _, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(struct {
					State  domain.ConnectionState
					Stats  domain.Stats
					Recent []domain.LogEntry
				}{
					State:  service.State(),
					Stats:  service.Stats(),
					Recent: a.activity.Recent(recent),
				})
			}

			rendered := dashboard.Render(dashboard.View{
				State:  service.State(),
				Stats:  service.Stats(),
				Recent: a.activity.Recent(recent),
			}, dashboard.RenderOptions{})

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().IntVar(&recent, "recent", 10, "Number of recent activity entries to include")

	return cmd
}
