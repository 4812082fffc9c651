package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/backpork/backpork-cli/internal/ports"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 1 << 20
)

// Client talks to the BackPork backend over HTTP+JSON. Transport errors,
// non-2xx statuses and undecodable bodies are all collapsed into
// domain.ErrBackendUnreachable; an explicit success=false reply becomes a
// *domain.BackendError. Raw transport errors never escape.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ ports.Backend = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) Connect(ctx context.Context, consoleIP string) error {
	var ack ackPayload
	if err := c.postJSON(ctx, "/api/connect", connectRequest{IP: consoleIP}, &ack); err != nil {
		return err
	}

	if !ack.Success {
		return &domain.BackendError{Reason: ack.Error}
	}

	return nil
}

func (c *Client) Scan(ctx context.Context) ([]domain.Game, error) {
	var payload scanPayload
	if err := c.getJSON(ctx, "/api/scan", &payload); err != nil {
		return nil, err
	}

	if payload.Games == nil {
		return nil, &domain.BackendError{Reason: "scan reported no games collection"}
	}

	games := make([]domain.Game, 0, len(*payload.Games))
	for _, game := range *payload.Games {
		games = append(games, gameFromPayload(game))
	}

	return games, nil
}

func (c *Client) Libraries(ctx context.Context) ([]domain.Library, error) {
	var payload librariesPayload
	if err := c.getJSON(ctx, "/api/libraries", &payload); err != nil {
		return nil, err
	}

	libraries := make([]domain.Library, 0, len(payload.Libraries))
	for _, library := range payload.Libraries {
		libraries = append(libraries, domain.Library{
			Name:    library.Name,
			Size:    library.Size,
			Patched: library.Patched,
		})
	}

	return libraries, nil
}

func (c *Client) Setup(ctx context.Context, req ports.SetupRequest) ([]ports.SetupStepLog, error) {
	var payload setupPayload
	body := setupRequest{
		TitleID:   string(req.TitleID),
		GameTitle: req.GameTitle,
		SourceFW:  req.SourceFirmware,
		TargetFW:  req.TargetFirmware,
	}
	if err := c.postJSON(ctx, "/api/setup", body, &payload); err != nil {
		return nil, err
	}

	if !payload.Success {
		return nil, &domain.BackendError{Reason: payload.Error}
	}

	steps := make([]ports.SetupStepLog, 0, len(payload.Logs))
	for _, step := range payload.Logs {
		steps = append(steps, ports.SetupStepLog{
			Message:  step.Message,
			Severity: severityFromType(step.Type),
		})
	}

	return steps, nil
}

func (c *Client) Remove(ctx context.Context, titleID domain.GameID) error {
	var ack ackPayload
	if err := c.postJSON(ctx, "/api/remove", removeRequest{TitleID: string(titleID)}, &ack); err != nil {
		return err
	}

	if !ack.Success {
		return &domain.BackendError{Reason: ack.Error}
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, domain.ErrBackendUnreachable)
	}

	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("POST %s: encode request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, domain.ErrBackendUnreachable)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	response, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", req.URL.String()).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, domain.ErrBackendUnreachable)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		c.logger.Debug().Err(err).Str("url", req.URL.String()).Msg("backend response unreadable")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, domain.ErrBackendUnreachable)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		c.logger.Debug().Int("status", response.StatusCode).Str("url", req.URL.String()).Msg("backend returned non-2xx status")
		return fmt.Errorf("%s %s: status %d: %w", req.Method, req.URL.Path, response.StatusCode, domain.ErrBackendUnreachable)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Debug().Err(err).Str("url", req.URL.String()).Msg("backend response undecodable")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, domain.ErrBackendUnreachable)
	}

	return nil
}
