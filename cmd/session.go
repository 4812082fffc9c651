package cmd

import (
	"fmt"

	"github.com/backpork/backpork-cli/internal/application"
	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/spf13/cobra"
)

// endpointFlags let any session-opening command override the saved
// preferences for a single invocation.
type endpointFlags struct {
	backendURL     string
	consoleIP      string
	sourceFirmware string
	targetFirmware string
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backendURL, "backend", "", "Backend server URL (default: saved preference)")
	cmd.Flags().StringVar(&f.consoleIP, "console-ip", "", "PS5 IP address (default: saved preference)")
}

func (f *endpointFlags) registerFirmware(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sourceFirmware, "source-fw", "", "Firmware the libraries are taken from (default: saved preference)")
	cmd.Flags().StringVar(&f.targetFirmware, "target-fw", "", "Firmware running on the console (default: saved preference)")
}

func (f endpointFlags) apply(prefs domain.Preferences) domain.Preferences {
	if f.backendURL != "" {
		prefs.Endpoint.BackendBaseURL = f.backendURL
	}
	if f.consoleIP != "" {
		prefs.Endpoint.ConsoleIP = f.consoleIP
	}
	if f.sourceFirmware != "" {
		prefs.SourceFirmware = f.sourceFirmware
	}
	if f.targetFirmware != "" {
		prefs.TargetFirmware = f.targetFirmware
	}

	return prefs
}

// establishSession loads preferences, applies flag overrides and connects.
// Connecting runs the initial inventory scan, so on return the service
// already holds the current games and libraries.
func establishSession(cmd *cobra.Command, a *app, flags endpointFlags) (*application.Service, domain.Preferences, error) {
	prefs, err := a.prefsRepo.Load(cmd.Context())
	if err != nil {
		return nil, domain.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	prefs = flags.apply(prefs)

	service := a.newService(prefs.Endpoint.BackendBaseURL)
	if err := service.Connect(cmd.Context(), prefs.Endpoint); err != nil {
		return nil, domain.Preferences{}, err
	}

	return service, prefs, nil
}

func gameTitle(service *application.Service, id domain.GameID) string {
	for _, game := range service.Games() {
		if game.ID == id {
			return game.Title
		}
	}

	return string(id)
}
