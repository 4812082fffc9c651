package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoint = domain.Endpoint{
	ConsoleIP:      "192.168.1.42",
	BackendBaseURL: "http://192.168.1.100:5000",
}

func testActivityLog() *domain.ActivityLog {
	return domain.NewActivityLog(domain.DefaultActivityLogCapacity, func() time.Time {
		return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	})
}

func connectedService(t *testing.T, backend *stubBackend, opts ...Option) *Service {
	t.Helper()

	svc := NewService(backend, testActivityLog(), opts...)
	require.NoError(t, svc.Connect(context.Background(), testEndpoint))

	return svc
}

func entryMessages(log *domain.ActivityLog) []string {
	entries := log.Entries()
	messages := make([]string, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, entry.Message)
	}

	return messages
}

func TestConnectEstablishesSessionAndRunsInitialScan(t *testing.T) {
	backend := newStubBackend(
		[]domain.Game{
			{ID: "CUSA00001", Title: "Astro Odyssey", Status: domain.GameStatusNeedsSetup},
			{ID: "CUSA00002", Title: "Ridge Drifter", HasCompatLibraries: true, Status: domain.GameStatusReady},
		},
		[]domain.Library{{Name: "libc.sprx", Size: "1.2 MB"}},
	)

	svc := connectedService(t, backend)

	assert.Equal(t, domain.StateConnected, svc.State())
	assert.Len(t, svc.Games(), 2)
	assert.Len(t, svc.Libraries(), 1)

	connect, scan, libraries, _, _ := backend.counts()
	assert.Equal(t, 1, connect)
	assert.Equal(t, 1, scan)
	assert.Equal(t, 1, libraries)

	messages := entryMessages(svc.Activity())
	assert.Contains(t, messages, "Connected to PS5")
	assert.Contains(t, messages, "Found 2 games")
}

func TestConnectInvalidConfigurationMakesNoNetworkCall(t *testing.T) {
	backend := newStubBackend(nil, nil)
	svc := NewService(backend, testActivityLog())

	err := svc.Connect(context.Background(), domain.Endpoint{ConsoleIP: "192.168.1.42"})

	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.Equal(t, 0, backend.totalCalls())
	assert.Equal(t, domain.StateDisconnected, svc.State())

	entries := svc.Activity().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SeverityError, entries[0].Severity)
}

func TestConnectBackendRejectionLogsReasonAndStaysDisconnected(t *testing.T) {
	backend := newStubBackend(nil, nil)
	backend.connectFn = func(context.Context, string) error {
		return &domain.BackendError{Reason: "GoldHEN FTP not running"}
	}
	svc := NewService(backend, testActivityLog())

	err := svc.Connect(context.Background(), testEndpoint)

	require.Error(t, err)
	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, domain.StateDisconnected, svc.State())

	_, scan, _, _, _ := backend.counts()
	assert.Zero(t, scan, "rejected connect must not trigger a scan")

	entries := svc.Activity().Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, domain.SeverityError, last.Severity)
	assert.Contains(t, last.Message, "GoldHEN FTP not running")
}

func TestConnectTransportFailureLogsGenericMessage(t *testing.T) {
	backend := newStubBackend(nil, nil)
	backend.connectFn = func(context.Context, string) error {
		return domain.ErrBackendUnreachable
	}
	svc := NewService(backend, testActivityLog())

	err := svc.Connect(context.Background(), testEndpoint)

	require.ErrorIs(t, err, domain.ErrBackendUnreachable)

	entries := svc.Activity().Entries()
	last := entries[len(entries)-1]
	assert.Contains(t, last.Message, "cannot reach backend server")
}

func TestConnectWhileConnectingIsRejectedWithoutNetwork(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	backend := newStubBackend(nil, nil)
	backend.connectFn = func(context.Context, string) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}
	svc := NewService(backend, testActivityLog())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.Connect(context.Background(), testEndpoint)
	}()

	<-started
	err := svc.Connect(context.Background(), testEndpoint)
	require.ErrorIs(t, err, domain.ErrOperationInProgress)

	connect, _, _, _, _ := backend.counts()
	assert.Equal(t, 1, connect)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, domain.StateConnected, svc.State())
}

func TestConnectAckDiscardedAfterDisconnect(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	backend := newStubBackend(nil, nil)
	backend.connectFn = func(context.Context, string) error {
		close(started)
		<-release
		return nil
	}
	svc := NewService(backend, testActivityLog())

	connectDone := make(chan error, 1)
	go func() {
		connectDone <- svc.Connect(context.Background(), testEndpoint)
	}()

	<-started
	svc.Disconnect()
	close(release)

	err := <-connectDone
	require.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Contains(t, err.Error(), "result discarded")
	assert.Equal(t, domain.StateDisconnected, svc.State())

	_, scan, _, _, _ := backend.counts()
	assert.Zero(t, scan, "a discarded ack must not trigger the initial scan")
}

func TestRefreshRequiresConnection(t *testing.T) {
	backend := newStubBackend(nil, nil)
	svc := NewService(backend, testActivityLog())

	err := svc.Refresh(context.Background())

	require.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Equal(t, 0, backend.totalCalls())
}

func TestRefreshReplacesSnapshotWholesale(t *testing.T) {
	backend := newStubBackend(
		[]domain.Game{{ID: "CUSA00001", Title: "Astro Odyssey"}, {ID: "CUSA00002", Title: "Ridge Drifter"}},
		nil,
	)
	svc := connectedService(t, backend)

	backend.setScan(func(context.Context) ([]domain.Game, error) {
		return []domain.Game{{ID: "CUSA00003", Title: "Neon Harbor"}}, nil
	})

	require.NoError(t, svc.Refresh(context.Background()))

	games := svc.Games()
	require.Len(t, games, 1)
	assert.Equal(t, domain.GameID("CUSA00003"), games[0].ID)
}

func TestRefreshScanFailureLeavesCollectionsUnchanged(t *testing.T) {
	backend := newStubBackend(
		[]domain.Game{{ID: "CUSA00001", Title: "Astro Odyssey"}},
		[]domain.Library{{Name: "libc.sprx"}},
	)
	svc := connectedService(t, backend)

	backend.setScan(func(context.Context) ([]domain.Game, error) {
		return nil, domain.ErrBackendUnreachable
	})

	err := svc.Refresh(context.Background())

	require.ErrorIs(t, err, domain.ErrBackendUnreachable)
	assert.Len(t, svc.Games(), 1)
	assert.Len(t, svc.Libraries(), 1)

	entries := svc.Activity().Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, domain.SeverityError, last.Severity)
}

func TestRefreshLibrariesFailureLeavesBothCollectionsUnchanged(t *testing.T) {
	backend := newStubBackend(
		[]domain.Game{{ID: "CUSA00001", Title: "Astro Odyssey"}},
		[]domain.Library{{Name: "libc.sprx"}},
	)
	svc := connectedService(t, backend)

	// The scan half succeeds with fresh data but the libraries half fails;
	// neither collection may change.
	backend.setScan(func(context.Context) ([]domain.Game, error) {
		return []domain.Game{{ID: "CUSA00009", Title: "Phantom Tide"}}, nil
	})
	backend.setLibraries(func(context.Context) ([]domain.Library, error) {
		return nil, domain.ErrBackendUnreachable
	})

	err := svc.Refresh(context.Background())

	require.ErrorIs(t, err, domain.ErrBackendUnreachable)
	games := svc.Games()
	require.Len(t, games, 1)
	assert.Equal(t, domain.GameID("CUSA00001"), games[0].ID)
	assert.Len(t, svc.Libraries(), 1)
}

func TestRefreshResultDiscardedAfterDisconnect(t *testing.T) {
	backend := newStubBackend(
		[]domain.Game{{ID: "CUSA00001", Title: "Astro Odyssey"}},
		nil,
	)
	svc := connectedService(t, backend)

	release := make(chan struct{})
	started := make(chan struct{})
	backend.setScan(func(context.Context) ([]domain.Game, error) {
		close(started)
		<-release
		return []domain.Game{{ID: "CUSA00099", Title: "Stale Result"}}, nil
	})

	refreshDone := make(chan error, 1)
	go func() {
		refreshDone <- svc.Refresh(context.Background())
	}()

	<-started
	svc.Disconnect()
	close(release)

	err := <-refreshDone
	require.ErrorIs(t, err, domain.ErrNotConnected)

	games := svc.Games()
	require.Len(t, games, 1)
	assert.Equal(t, domain.GameID("CUSA00001"), games[0].ID, "stale scan result must not be applied")
}

func TestStatsProjectCurrentSnapshot(t *testing.T) {
	backend := newStubBackend(
		[]domain.Game{
			{ID: "CUSA00001", HasCompatLibraries: true},
			{ID: "CUSA00002"},
			{ID: "CUSA00003"},
			{ID: "CUSA00004"},
		},
		[]domain.Library{{Name: "libc.sprx"}},
	)
	svc := connectedService(t, backend)

	stats := svc.Stats()

	assert.Equal(t, 4, stats.TotalGames)
	assert.Equal(t, 1, stats.SetupGames)
	assert.Equal(t, 25, stats.SuccessRate)
}
