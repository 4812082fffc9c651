package cmd

import (
	"fmt"

	"github.com/backpork/backpork-cli/internal/application"
	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run one operation across many games",
	}

	cmd.AddCommand(
		newBatchRunCmd(a, application.ModeInstall, "setup", "Install compatibility libraries for several games"),
		newBatchRunCmd(a, application.ModeRemove, "remove", "Remove compatibility libraries from several games"),
	)

	return cmd
}

func newBatchRunCmd(a *app, mode application.SetupMode, use, short string) *cobra.Command {
	var flags endpointFlags
	var all bool

	cmd := &cobra.Command{
		Use:   use + " [title-id...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, prefs, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			ids := make([]domain.GameID, 0, len(args))
			for _, arg := range args {
				ids = append(ids, domain.GameID(arg))
			}
			if all {
				ids = ids[:0]
				for _, game := range service.Games() {
					ids = append(ids, game.ID)
				}
			}

			out := cmd.OutOrStdout()
			result, err := service.RunBatch(cmd.Context(), mode, ids, application.BatchOptions{
				SourceFirmware: prefs.SourceFirmware,
				TargetFirmware: prefs.TargetFirmware,
				OnItemStart: func(id domain.GameID, index, total int) {
					_, _ = fmt.Fprintf(out, "[%d/%d] %s\n", index+1, total, id)
				},
			})
			if err != nil {
				return err
			}

			for _, id := range ids {
				if reason, ok := result.Failed[id]; ok {
					_, _ = fmt.Fprintf(out, "failed\t%s: %s\n", id, reason)
				}
			}
			_, _ = fmt.Fprintf(out, "Batch complete: %d attempted, %d succeeded, %d failed, %d skipped\n",
				result.Attempted, len(result.Succeeded), len(result.Failed), len(result.Skipped))

			if len(result.Failed) > 0 {
				return fmt.Errorf("batch %s: %d of %d operations failed", mode, len(result.Failed), result.Attempted)
			}

			return nil
		},
	}
	flags.register(cmd)
	if mode == application.ModeInstall {
		flags.registerFirmware(cmd)
	}
	cmd.Flags().BoolVar(&all, "all", false, "Select every scanned game")

	return cmd
}
