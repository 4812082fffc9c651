package cmd

import (
	"context"
	"fmt"

	"github.com/backpork/backpork-cli/internal/application"
	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSetupCmd(a *app) *cobra.Command {
	var flags endpointFlags
	var plain bool

	cmd := &cobra.Command{
		Use:   "setup <title-id>",
		Short: "Install compatibility libraries for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, prefs, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			id := domain.GameID(args[0])
			run := func(ctx context.Context, onProgress func(percent int)) error {
				return service.Setup(ctx, id, application.SetupOptions{
					SourceFirmware: prefs.SourceFirmware,
					TargetFirmware: prefs.TargetFirmware,
					OnProgress:     onProgress,
				})
			}

			label := fmt.Sprintf("Setting up %s...", gameTitle(service, id))
			if err := runOperation(cmd, plain, label, run); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is ready\n", gameTitle(service, id))
			return nil
		},
	}
	flags.register(cmd)
	flags.registerFirmware(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the progress display")

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var flags endpointFlags
	var plain bool

	cmd := &cobra.Command{
		Use:   "remove <title-id>",
		Short: "Remove compatibility libraries from a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			id := domain.GameID(args[0])
			title := gameTitle(service, id)
			run := func(ctx context.Context, onProgress func(percent int)) error {
				return service.Remove(ctx, id, application.SetupOptions{
					OnProgress: onProgress,
				})
			}

			label := fmt.Sprintf("Removing libraries from %s...", title)
			if err := runOperation(cmd, plain, label, run); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Libraries removed from %s\n", title)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the progress display")

	return cmd
}

func runOperation(cmd *cobra.Command, plain bool, label string, run func(ctx context.Context, onProgress func(percent int)) error) error {
	if plain {
		return run(cmd.Context(), nil)
	}

	return runWithProgress(cmd.Context(), cmd.ErrOrStderr(), label, run)
}
