// Package backend talks to the route-planning service that owns the graph
// and runs the path searches.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"routeview/config"
	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	locationsPath = "/api/locations"
	findPathPath  = "/api/findpath"

	// maxResponseBytes caps how much of a backend response is read.
	maxResponseBytes = 8 << 20
)

// Client implements service.RouteBackend over HTTP/JSON.
// It never retries: every call performs exactly one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientParams holds dependencies for Client, injected by Fx.
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New creates a backend client from the application configuration.
func New(params ClientParams) *Client {
	return NewClient(params.Config.Backend.BaseURL, params.Config.Backend.Timeout, params.Logger)
}

// NewClient creates a backend client. A zero timeout waits for the backend indefinitely.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type graphPayload struct {
	Locations *[]entity.Location `json:"locations"`
	Edges     *[]entity.Edge     `json:"edges"`
}

// FetchGraph loads the full location and edge set.
func (c *Client) FetchGraph(ctx context.Context) (*entity.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+locationsPath, nil)
	if err != nil {
		return nil, domainerrors.NewLoadError(errors.WithStack(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.NewLoadError(errors.Wrap(err, "request locations"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domainerrors.NewLoadError(errors.Wrap(err, "read locations response"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domainerrors.NewLoadError(errors.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var payload graphPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domainerrors.NewLoadError(errors.Wrap(err, "decode locations response"))
	}

	if payload.Locations == nil {
		return nil, domainerrors.NewLoadError(errors.New("response is missing the locations array"))
	}
	if payload.Edges == nil {
		return nil, domainerrors.NewLoadError(errors.New("response is missing the edges array"))
	}

	c.logger.Debug("Fetched location graph",
		slog.Int("locations", len(*payload.Locations)),
		slog.Int("edges", len(*payload.Edges)),
	)

	return &entity.Graph{
		Locations: *payload.Locations,
		Edges:     *payload.Edges,
	}, nil
}

type findPathPayload struct {
	entity.PathResult
	Error string `json:"error"`
}

// FindPath sends the query and returns the decoded result.
func (c *Client) FindPath(ctx context.Context, query entity.PathQuery) (*entity.PathResult, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, domainerrors.NewQueryError(0, domainerrors.MsgFindPathRetry, errors.WithStack(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+findPathPath, bytes.NewReader(body))
	if err != nil {
		return nil, domainerrors.NewQueryError(0, domainerrors.MsgFindPathRetry, errors.WithStack(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.NewQueryError(0, domainerrors.MsgFindPathRetry, errors.Wrap(err, "request findpath"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domainerrors.NewQueryError(0, domainerrors.MsgFindPathRetry, errors.Wrap(err, "read findpath response"))
	}

	var payload findPathPayload
	decodeErr := json.Unmarshal(raw, &payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A body that is not JSON gets the retry message whatever the status.
		message := domainerrors.MsgFindPathFailed
		switch {
		case decodeErr != nil:
			message = domainerrors.MsgFindPathRetry
		case payload.Error != "":
			message = payload.Error
		}

		c.logger.Info("Backend rejected path query",
			slog.Int("status", resp.StatusCode),
			slog.String("message", message),
		)

		return nil, domainerrors.NewQueryError(resp.StatusCode, message, nil)
	}

	if decodeErr != nil {
		return nil, domainerrors.NewQueryError(resp.StatusCode, domainerrors.MsgFindPathRetry, errors.Wrap(decodeErr, "decode findpath response"))
	}

	if len(payload.Paths) == 0 || len(payload.Paths[0]) == 0 {
		return nil, domainerrors.NewQueryError(resp.StatusCode, domainerrors.MsgNoPathsReturned, nil)
	}

	result := payload.PathResult

	return &result, nil
}
