package application

import (
	"context"
	"fmt"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/backpork/backpork-cli/internal/ports"
	"github.com/google/uuid"
)

type SetupMode string

const (
	ModeInstall SetupMode = "install"
	ModeRemove  SetupMode = "remove"
)

// SetupTask identifies one in-flight setup or removal. It exists only for
// the duration of the operation.
type SetupTask struct {
	Game          domain.Game
	Mode          SetupMode
	CorrelationID string
}

type SetupOptions struct {
	SourceFirmware string
	TargetFirmware string

	// OnProgress receives the synthetic progress percentage. It is purely
	// cosmetic and runs on the ticker goroutine; the final call always
	// reports 100.
	OnProgress func(percent int)
}

// Setup installs compatibility libraries for one game.
func (s *Service) Setup(ctx context.Context, id domain.GameID, opts SetupOptions) error {
	return s.runSetup(ctx, id, ModeInstall, opts)
}

// Remove strips compatibility libraries from one game.
func (s *Service) Remove(ctx context.Context, id domain.GameID, opts SetupOptions) error {
	return s.runSetup(ctx, id, ModeRemove, opts)
}

// runSetup is the single setup operation: guard checks resolve locally
// before any network call, at most one operation is in flight per game id,
// the outcome depends solely on the backend response, and a success always
// triggers a refresh so the inventory reflects backend truth. The local
// HasCompatLibraries flag is never flipped here.
func (s *Service) runSetup(ctx context.Context, id domain.GameID, mode SetupMode, opts SetupOptions) error {
	s.mu.Lock()
	if s.state != domain.StateConnected {
		s.mu.Unlock()
		s.activity.Append(guardMessage(mode, string(id), domain.ErrNotConnected.Error()), domain.SeverityError)
		return fmt.Errorf("%s %s: %w", mode, id, domain.ErrNotConnected)
	}

	var game domain.Game
	found := false
	for _, candidate := range s.games {
		if candidate.ID == id {
			game = candidate
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		s.activity.Append(guardMessage(mode, string(id), domain.ErrUnknownGame.Error()), domain.SeverityError)
		return fmt.Errorf("%s %s: %w", mode, id, domain.ErrUnknownGame)
	}
	if mode == ModeInstall && game.HasCompatLibraries {
		s.mu.Unlock()
		s.activity.Append(guardMessage(mode, game.Title, domain.ErrAlreadySetUp.Error()), domain.SeverityError)
		return fmt.Errorf("%s %s: %w", mode, id, domain.ErrAlreadySetUp)
	}
	if mode == ModeRemove && !game.HasCompatLibraries {
		s.mu.Unlock()
		s.activity.Append(guardMessage(mode, game.Title, domain.ErrNotSetUp.Error()), domain.SeverityError)
		return fmt.Errorf("%s %s: %w", mode, id, domain.ErrNotSetUp)
	}
	if _, busy := s.inFlight[id]; busy {
		s.mu.Unlock()
		s.activity.Append(guardMessage(mode, game.Title, domain.ErrOperationInProgress.Error()), domain.SeverityError)
		return fmt.Errorf("%s %s: %w", mode, id, domain.ErrOperationInProgress)
	}
	s.inFlight[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, id)
		s.mu.Unlock()
	}()

	task := SetupTask{Game: game, Mode: mode, CorrelationID: uuid.NewString()}
	s.logger.Debug().
		Str("correlation_id", task.CorrelationID).
		Str("title_id", string(game.ID)).
		Str("mode", string(mode)).
		Msg("operation dispatched")
	s.activity.Append(startMessage(task), domain.SeverityInfo)

	ticker := s.startProgress(opts.OnProgress)

	var stepLogs []ports.SetupStepLog
	var err error
	switch mode {
	case ModeInstall:
		stepLogs, err = s.backend.Setup(ctx, ports.SetupRequest{
			TitleID:        game.ID,
			GameTitle:      game.Title,
			SourceFirmware: opts.SourceFirmware,
			TargetFirmware: opts.TargetFirmware,
		})
	default:
		err = s.backend.Remove(ctx, game.ID)
	}

	ticker.stop()

	s.mu.Lock()
	stillConnected := s.state == domain.StateConnected
	s.mu.Unlock()
	if !stillConnected {
		return fmt.Errorf("%s %s: result discarded: %w", mode, id, domain.ErrNotConnected)
	}

	if err != nil {
		s.logger.Debug().
			Str("correlation_id", task.CorrelationID).
			Err(err).
			Msg("operation failed")
		s.activity.Append(failMessage(task, failureReason(err)), domain.SeverityError)
		return fmt.Errorf("%s %s: %w", mode, id, err)
	}

	s.logger.Debug().
		Str("correlation_id", task.CorrelationID).
		Msg("operation succeeded")

	for _, step := range stepLogs {
		s.activity.Append(step.Message, step.Severity)
	}
	s.activity.Append(successMessage(task), domain.SeveritySuccess)

	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("%s %s: post-operation scan: %w", mode, id, err)
	}

	return nil
}

func startMessage(task SetupTask) string {
	if task.Mode == ModeRemove {
		return fmt.Sprintf("Removing libraries from %s...", task.Game.Title)
	}

	return fmt.Sprintf("Setting up %s...", task.Game.Title)
}

func successMessage(task SetupTask) string {
	if task.Mode == ModeRemove {
		return fmt.Sprintf("Libraries removed from %s", task.Game.Title)
	}

	return fmt.Sprintf("%s is ready", task.Game.Title)
}

func failMessage(task SetupTask, reason string) string {
	if task.Mode == ModeRemove {
		return fmt.Sprintf("Failed to remove libraries from %s: %s", task.Game.Title, reason)
	}

	return fmt.Sprintf("Setup failed for %s: %s", task.Game.Title, reason)
}

func guardMessage(mode SetupMode, subject, reason string) string {
	if mode == ModeRemove {
		return fmt.Sprintf("Remove rejected for %s: %s", subject, reason)
	}

	return fmt.Sprintf("Setup rejected for %s: %s", subject, reason)
}
