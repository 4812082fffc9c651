package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/backpork/backpork-cli/internal/domain"
)

type BatchOptions struct {
	SourceFirmware string
	TargetFirmware string

	// OnItemStart fires before each attempted game, in selection order.
	OnItemStart func(id domain.GameID, index, total int)
	// OnProgress receives per-item synthetic progress.
	OnProgress func(id domain.GameID, percent int)
}

// BatchResult is the transient outcome of one batch run. Games that
// already satisfied the target state are skipped and belong to neither
// the succeeded nor the failed set, which makes re-running a batch on the
// same selection idempotent.
type BatchResult struct {
	Attempted int
	Succeeded []domain.GameID
	Skipped   []domain.GameID
	Failed    map[domain.GameID]string
}

// RunBatch applies one setup mode across a selection of games, strictly in
// selection order and one at a time. A failing game is recorded and the
// run continues; no failure aborts the remainder.
func (s *Service) RunBatch(ctx context.Context, mode SetupMode, ids []domain.GameID, opts BatchOptions) (BatchResult, error) {
	result := BatchResult{Failed: map[domain.GameID]string{}}

	if len(ids) == 0 {
		s.activity.Append("Batch rejected: "+domain.ErrEmptySelection.Error(), domain.SeverityError)
		return result, fmt.Errorf("run batch: %w", domain.ErrEmptySelection)
	}

	// Skip decisions are taken against the snapshot at batch start, so the
	// item counter reported to OnItemStart covers attempted games only.
	selection := dedupe(ids)
	pending := make([]domain.GameID, 0, len(selection))
	for _, id := range selection {
		if game, known := s.gameByID(id); known && satisfied(mode, game) {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		pending = append(pending, id)
	}

	for index, id := range pending {
		result.Attempted++
		if opts.OnItemStart != nil {
			opts.OnItemStart(id, index, len(pending))
		}

		itemOpts := SetupOptions{
			SourceFirmware: opts.SourceFirmware,
			TargetFirmware: opts.TargetFirmware,
		}
		if opts.OnProgress != nil {
			itemID := id
			itemOpts.OnProgress = func(percent int) {
				opts.OnProgress(itemID, percent)
			}
		}

		if err := s.runSetup(ctx, id, mode, itemOpts); err != nil {
			result.Failed[id] = resultReason(err)
			continue
		}

		result.Succeeded = append(result.Succeeded, id)
	}

	summary := fmt.Sprintf("Batch complete: %d attempted, %d succeeded, %d failed, %d skipped",
		result.Attempted, len(result.Succeeded), len(result.Failed), len(result.Skipped))
	severity := domain.SeveritySuccess
	if len(result.Failed) > 0 {
		severity = domain.SeverityError
	}
	s.activity.Append(summary, severity)

	return result, nil
}

// resultReason maps a per-item error to the reason recorded in the failed
// set: the backend-supplied reason, a guard violation by name, or the
// generic transport message.
func resultReason(err error) string {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Error()
	}

	guards := []error{
		domain.ErrNotConnected,
		domain.ErrUnknownGame,
		domain.ErrAlreadySetUp,
		domain.ErrNotSetUp,
		domain.ErrOperationInProgress,
	}
	for _, guard := range guards {
		if errors.Is(err, guard) {
			return guard.Error()
		}
	}

	return domain.ErrBackendUnreachable.Error()
}

func satisfied(mode SetupMode, game domain.Game) bool {
	if mode == ModeRemove {
		return !game.HasCompatLibraries
	}

	return game.HasCompatLibraries
}

func dedupe(ids []domain.GameID) []domain.GameID {
	seen := make(map[domain.GameID]struct{}, len(ids))
	deduped := make([]domain.GameID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	return deduped
}
