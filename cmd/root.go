package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "bpk",
		Short:         "BackPork CLI (bpk): patch PS5 game libraries for older firmware",
		Long:          "bpk (BackPork CLI) connects to a BackPork backend server, scans the console's game library, and installs or removes firmware compatibility libraries per game.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log backend requests to stderr")

	app, err := wireApp(&verbose)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConnectCmd(app),
		newScanCmd(app),
		newGamesCmd(app),
		newLibrariesCmd(app),
		newSetupCmd(app),
		newRemoveCmd(app),
		newBatchCmd(app),
		newLogsCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
