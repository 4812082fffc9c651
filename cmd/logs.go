package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd(a *app) *cobra.Command {
	var flags endpointFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the session activity feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := establishSession(cmd, a, flags); err != nil {
				return err
			}

			entries := a.activity.Entries()
			if limit > 0 && limit < len(entries) {
				entries = entries[len(entries)-limit:]
			}

			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s\n",
					entry.Timestamp, entry.Severity, entry.Message)
			}

			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the last N entries")

	return cmd
}
