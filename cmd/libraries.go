package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLibrariesCmd(a *app) *cobra.Command {
	var flags endpointFlags

	cmd := &cobra.Command{
		Use:   "libraries",
		Short: "List compatibility libraries stored on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, _, err := establishSession(cmd, a, flags)
			if err != nil {
				return err
			}

			for _, library := range service.Libraries() {
				patched := "original"
				if library.Patched {
					patched = "patched"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", library.Name, library.Size, patched)
			}

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
