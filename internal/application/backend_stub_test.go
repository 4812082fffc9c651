package application

import (
	"context"
	"sync"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/backpork/backpork-cli/internal/ports"
)

// stubBackend is a scriptable ports.Backend that counts every invocation,
// so tests can assert that guard violations never reach the transport.
type stubBackend struct {
	mu sync.Mutex

	connectCalls   int
	scanCalls      int
	librariesCalls int
	setupCalls     []ports.SetupRequest
	removeCalls    []domain.GameID

	connectFn   func(ctx context.Context, consoleIP string) error
	scanFn      func(ctx context.Context) ([]domain.Game, error)
	librariesFn func(ctx context.Context) ([]domain.Library, error)
	setupFn     func(ctx context.Context, req ports.SetupRequest) ([]ports.SetupStepLog, error)
	removeFn    func(ctx context.Context, id domain.GameID) error
}

var _ ports.Backend = (*stubBackend)(nil)

func newStubBackend(games []domain.Game, libraries []domain.Library) *stubBackend {
	return &stubBackend{
		scanFn: func(context.Context) ([]domain.Game, error) {
			return games, nil
		},
		librariesFn: func(context.Context) ([]domain.Library, error) {
			return libraries, nil
		},
	}
}

func (b *stubBackend) Connect(ctx context.Context, consoleIP string) error {
	b.mu.Lock()
	b.connectCalls++
	fn := b.connectFn
	b.mu.Unlock()

	if fn == nil {
		return nil
	}

	return fn(ctx, consoleIP)
}

func (b *stubBackend) Scan(ctx context.Context) ([]domain.Game, error) {
	b.mu.Lock()
	b.scanCalls++
	fn := b.scanFn
	b.mu.Unlock()

	if fn == nil {
		return nil, nil
	}

	return fn(ctx)
}

func (b *stubBackend) Libraries(ctx context.Context) ([]domain.Library, error) {
	b.mu.Lock()
	b.librariesCalls++
	fn := b.librariesFn
	b.mu.Unlock()

	if fn == nil {
		return nil, nil
	}

	return fn(ctx)
}

func (b *stubBackend) Setup(ctx context.Context, req ports.SetupRequest) ([]ports.SetupStepLog, error) {
	b.mu.Lock()
	b.setupCalls = append(b.setupCalls, req)
	fn := b.setupFn
	b.mu.Unlock()

	if fn == nil {
		return nil, nil
	}

	return fn(ctx, req)
}

func (b *stubBackend) Remove(ctx context.Context, id domain.GameID) error {
	b.mu.Lock()
	b.removeCalls = append(b.removeCalls, id)
	fn := b.removeFn
	b.mu.Unlock()

	if fn == nil {
		return nil
	}

	return fn(ctx, id)
}

func (b *stubBackend) totalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.connectCalls + b.scanCalls + b.librariesCalls + len(b.setupCalls) + len(b.removeCalls)
}

func (b *stubBackend) counts() (connect, scan, libraries, setup, remove int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.connectCalls, b.scanCalls, b.librariesCalls, len(b.setupCalls), len(b.removeCalls)
}

func (b *stubBackend) setScan(fn func(ctx context.Context) ([]domain.Game, error)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scanFn = fn
}

func (b *stubBackend) setLibraries(fn func(ctx context.Context) ([]domain.Library, error)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.librariesFn = fn
}
