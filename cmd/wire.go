package cmd

import (
	"fmt"
	"os"

	"github.com/backpork/backpork-cli/internal/adapters/backend/httpapi"
	tomlrepo "github.com/backpork/backpork-cli/internal/adapters/repo/toml"
	"github.com/backpork/backpork-cli/internal/application"
	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/backpork/backpork-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type app struct {
	prefsRepo ports.PreferencesRepository
	activity  *domain.ActivityLog
	verbose   *bool
}

func wireApp(verbose *bool) (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire preferences repository: %w", err)
	}

	return &app{
		prefsRepo: repo,
		activity:  domain.NewActivityLog(domain.DefaultActivityLogCapacity, ports.SystemClock{}.Now),
		verbose:   verbose,
	}, nil
}

// diagLogger resolves lazily so the persistent --verbose flag is already
// parsed by the time a command asks for it.
func (a *app) diagLogger() zerolog.Logger {
	if a.verbose != nil && *a.verbose {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
	}

	return zerolog.Nop()
}

func (a *app) newService(backendBaseURL string) *application.Service {
	logger := a.diagLogger()
	backend := httpapi.NewClient(backendBaseURL, nil, logger)
	return application.NewService(backend, a.activity, application.WithLogger(logger))
}
