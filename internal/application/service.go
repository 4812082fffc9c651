package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/backpork/backpork-cli/internal/ports"
	"github.com/rs/zerolog"
)

const defaultProgressInterval = 400 * time.Millisecond

type Option func(*Service)

// WithProgressInterval overrides the cadence of the synthetic progress
// ticker. Intended for tests.
func WithProgressInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.progressInterval = interval
		}
	}
}

// WithLogger attaches a diagnostic logger. Setup and removal runs are
// traced with their correlation token so one operation's events can be
// tied together across log output.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service owns the connection session to one console and the inventory the
// session gates. The games and libraries collections are single-writer:
// only a completed refresh replaces them, and it replaces both atomically.
type Service struct {
	backend          ports.Backend
	activity         *domain.ActivityLog
	logger           zerolog.Logger
	progressInterval time.Duration

	// refreshMu serializes refresh passes so overlapping calls queue
	// instead of racing to publish interleaved collections.
	refreshMu sync.Mutex

	mu        sync.Mutex
	state     domain.ConnectionState
	endpoint  domain.Endpoint
	games     []domain.Game
	libraries []domain.Library
	inFlight  map[domain.GameID]struct{}
}

func NewService(backend ports.Backend, activity *domain.ActivityLog, opts ...Option) *Service {
	if activity == nil {
		activity = domain.NewActivityLog(domain.DefaultActivityLogCapacity, nil)
	}

	s := &Service{
		backend:          backend,
		activity:         activity,
		logger:           zerolog.Nop(),
		progressInterval: defaultProgressInterval,
		state:            domain.StateDisconnected,
		inFlight:         map[domain.GameID]struct{}{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) State() domain.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Service) Endpoint() domain.Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.endpoint
}

// Games returns a copy of the current snapshot.
func (s *Service) Games() []domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]domain.Game, len(s.games))
	copy(games, s.games)

	return games
}

// Libraries returns a copy of the current snapshot.
func (s *Service) Libraries() []domain.Library {
	s.mu.Lock()
	defer s.mu.Unlock()

	libraries := make([]domain.Library, len(s.libraries))
	copy(libraries, s.libraries)

	return libraries
}

// Stats projects the aggregate counters from the current snapshot. It is
// recomputed on every call, never cached.
func (s *Service) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ProjectStats(s.games, s.libraries)
}

func (s *Service) Activity() *domain.ActivityLog {
	return s.activity
}

// Connect validates the endpoint, performs the backend handshake and, on
// success, runs the initial inventory refresh. A second call while a
// connect attempt is in flight is rejected without touching the backend.
func (s *Service) Connect(ctx context.Context, endpoint domain.Endpoint) error {
	endpoint = endpoint.Normalized()
	if err := endpoint.Validate(); err != nil {
		s.activity.Append("Connection failed: "+err.Error(), domain.SeverityError)
		return err
	}

	s.mu.Lock()
	if s.state == domain.StateConnecting {
		s.mu.Unlock()
		s.activity.Append("Connection failed: attempt already in progress", domain.SeverityError)
		return fmt.Errorf("connect: %w", domain.ErrOperationInProgress)
	}
	s.state = domain.StateConnecting
	s.endpoint = endpoint
	s.mu.Unlock()

	s.activity.Append(fmt.Sprintf("Connecting to PS5 at %s...", endpoint.ConsoleIP), domain.SeverityInfo)

	err := s.backend.Connect(ctx, endpoint.ConsoleIP)

	s.mu.Lock()
	if err != nil {
		s.state = domain.StateDisconnected
		s.mu.Unlock()
		s.activity.Append("Connection failed: "+failureReason(err), domain.SeverityError)
		return fmt.Errorf("connect to console: %w", err)
	}
	// Only the attempt still in Connecting may promote the session; an ack
	// arriving after Disconnect is discarded like any other stale result.
	if s.state != domain.StateConnecting {
		s.mu.Unlock()
		return fmt.Errorf("connect to console: result discarded: %w", domain.ErrNotConnected)
	}
	s.state = domain.StateConnected
	s.mu.Unlock()

	s.activity.Append("Connected to PS5", domain.SeveritySuccess)

	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("initial inventory scan: %w", err)
	}

	return nil
}

// Disconnect ends the session. Results of operations still in flight are
// discarded when they arrive.
func (s *Service) Disconnect() {
	s.mu.Lock()
	alreadyDisconnected := s.state == domain.StateDisconnected
	s.state = domain.StateDisconnected
	s.mu.Unlock()

	if !alreadyDisconnected {
		s.activity.Append("Disconnected from PS5", domain.SeverityInfo)
	}
}

// Refresh fetches the authoritative games and libraries snapshots and
// replaces the local collections with both, or with neither. A refresh
// whose result arrives after the session dropped is discarded.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.state != domain.StateConnected {
		s.mu.Unlock()
		s.activity.Append("Scan failed: "+domain.ErrNotConnected.Error(), domain.SeverityError)
		return fmt.Errorf("refresh inventory: %w", domain.ErrNotConnected)
	}
	s.mu.Unlock()

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.activity.Append("Scanning for games...", domain.SeverityInfo)

	games, err := s.backend.Scan(ctx)
	if err != nil {
		s.activity.Append("Scan failed: "+failureReason(err), domain.SeverityError)
		return fmt.Errorf("scan games: %w", err)
	}

	libraries, err := s.backend.Libraries(ctx)
	if err != nil {
		s.activity.Append("Scan failed: "+failureReason(err), domain.SeverityError)
		return fmt.Errorf("list libraries: %w", err)
	}

	s.mu.Lock()
	if s.state != domain.StateConnected {
		s.mu.Unlock()
		return fmt.Errorf("refresh inventory: result discarded: %w", domain.ErrNotConnected)
	}
	s.games = games
	s.libraries = libraries
	s.mu.Unlock()

	s.activity.Append(fmt.Sprintf("Found %d games", len(games)), domain.SeveritySuccess)

	return nil
}

func (s *Service) gameByID(id domain.GameID) (domain.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, game := range s.games {
		if game.ID == id {
			return game, true
		}
	}

	return domain.Game{}, false
}

// failureReason renders a backend failure for the activity log: the
// backend-supplied reason when there is one, a generic transport message
// otherwise.
func failureReason(err error) string {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Error()
	}

	return domain.ErrBackendUnreachable.Error()
}
