package ports

import (
	"context"

	"github.com/backpork/backpork-cli/internal/domain"
)

type SetupRequest struct {
	TitleID        domain.GameID
	GameTitle      string
	SourceFirmware string
	TargetFirmware string
}

// SetupStepLog is a per-step message the backend may return from a setup
// run; it is forwarded into the activity log verbatim.
type SetupStepLog struct {
	Message  string
	Severity domain.Severity
}

// Backend is the remote service that does the actual file work on the
// console. Implementations must never surface raw transport errors: a call
// that cannot reach the backend or cannot be decoded reports
// domain.ErrBackendUnreachable, and an explicit success=false reply reports
// *domain.BackendError.
type Backend interface {
	Connect(ctx context.Context, consoleIP string) error
	Scan(ctx context.Context) ([]domain.Game, error)
	Libraries(ctx context.Context) ([]domain.Library, error)
	Setup(ctx context.Context, req SetupRequest) ([]SetupStepLog, error)
	Remove(ctx context.Context, titleID domain.GameID) error
}
