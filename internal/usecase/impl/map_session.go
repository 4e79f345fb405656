package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"routeview/config"
	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"
	"routeview/internal/domain/service"
	"routeview/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Query outcome labels reported to the session recorder.
const (
	outcomeApplied = "applied"
	outcomeFailed  = "failed"
	outcomeInvalid = "invalid"
	outcomeStale   = "stale"
)

type mapSession struct {
	backend   service.RouteBackend
	graph     *GraphCache
	registry  *OverlayRegistry
	mapSync   *MapSync
	presenter *ResultPresenter
	validate  *validator.Validate
	logger    *slog.Logger
	recorder  service.SessionRecorder

	// mu serializes every change to the registry, the panels and the graph cache.
	mu sync.Mutex
	// seq is the token of the most recently issued query; only its response may be applied.
	seq atomic.Uint64
}

// MapSessionParams holds dependencies for the map session, injected by Fx.
type MapSessionParams struct {
	fx.In

	Backend  service.RouteBackend
	Surface  service.MapSurface
	Warnings service.TextPanel `name:"warnings"`
	Results  service.TextPanel `name:"results"`
	Config   *config.Config
	Logger   *slog.Logger
	Recorder service.SessionRecorder `optional:"true"`
}

// NewMapSession creates the map session for one page load. The graph is not
// fetched until Load is called.
func NewMapSession(params MapSessionParams) usecase.MapSessionUsecase {
	recorder := params.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	logger := orDiscard(params.Logger)

	fitPadding := config.DefaultFitPadding
	if params.Config != nil && params.Config.Map != nil && params.Config.Map.FitPadding > 0 {
		fitPadding = params.Config.Map.FitPadding
	}

	registry := NewOverlayRegistry(params.Surface, recorder)
	mapSync := NewMapSync(registry, params.Surface, params.Warnings, params.Results, fitPadding, logger, recorder)

	return &mapSession{
		backend:   params.Backend,
		graph:     NewGraphCache(params.Backend),
		registry:  registry,
		mapSync:   mapSync,
		presenter: NewResultPresenter(mapSync, params.Warnings, params.Results, logger, recorder),
		validate:  validator.New(),
		logger:    logger,
		recorder:  recorder,
	}
}

// Load fetches the location graph and draws the base network. It does nothing
// once a graph is loaded.
func (s *mapSession) Load(ctx context.Context) error {
	if s.IsLoaded() {
		return nil
	}

	return s.Reload(ctx)
}

// Reload fetches the graph outside the lock, then replaces everything on the map
// with a fresh base network. On failure the map is left tile-only. A reload
// superseded by a later query, clear or reload leaves the map alone.
func (s *mapSession) Reload(ctx context.Context) error {
	seq := s.seq.Add(1)

	fresh := NewGraphCache(s.backend)
	err := fresh.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		s.logger.Debug("Dropped stale graph load",
			slog.Uint64("sequence", seq),
			slog.Uint64("latest", s.seq.Load()),
			slog.Bool("failed", err != nil),
		)

		return err
	}

	s.mapSync.ClearResultPaths()
	s.registry.Clear()

	if err != nil {
		s.recorder.IncGraphLoad(false)
		s.graph = NewGraphCache(s.backend)
		s.logger.Error("Failed to load location graph", slog.Any("error", err))

		return err
	}
	s.recorder.IncGraphLoad(true)
	s.graph = fresh

	stats, err := s.mapSync.DrawBaseGraph(s.graph)
	if err != nil {
		s.logger.Error("Failed to draw base network", slog.Any("error", err))

		return err
	}

	s.logger.Info("Location graph loaded",
		slog.Int("locations", stats.Markers),
		slog.Int("edges", stats.Edges),
		slog.Int("skippedEdges", stats.SkippedEdges),
	)

	return nil
}

// Submit validates the query, sends exactly one request and applies the response
// if no newer query was issued in the meantime.
func (s *mapSession) Submit(ctx context.Context, query entity.PathQuery) (*usecase.QueryOutcome, error) {
	startTime := time.Now()

	algorithm, ok := entity.ParseAlgorithm(string(query.Algorithm))
	if !ok {
		s.recorder.ObservePathQuery(outcomeInvalid, time.Since(startTime))

		return &usecase.QueryOutcome{
			Status:       usecase.QueryInvalid,
			Notification: "Unknown algorithm: " + string(query.Algorithm),
		}, domainerrors.ErrValidationFailed.WithDetails("unknown algorithm " + string(query.Algorithm))
	}
	query.Algorithm = algorithm

	if err := s.validate.Struct(query); err != nil {
		s.recorder.ObservePathQuery(outcomeInvalid, time.Since(startTime))

		return &usecase.QueryOutcome{
			Status:       usecase.QueryInvalid,
			Notification: domainerrors.MsgSelectLocations,
		}, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	seq := s.seq.Add(1)
	result, err := s.backend.FindPath(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		s.recorder.ObservePathQuery(outcomeStale, time.Since(startTime))
		s.logger.Debug("Dropped stale path response",
			slog.Uint64("sequence", seq),
			slog.Uint64("latest", s.seq.Load()),
		)

		return &usecase.QueryOutcome{Sequence: seq, Status: usecase.QueryStale}, nil
	}

	if err != nil {
		s.recorder.ObservePathQuery(outcomeFailed, time.Since(startTime))
		s.logger.Warn("Path query failed",
			slog.String("start", query.Start),
			slog.String("goal", query.Goal),
			slog.String("algorithm", string(query.Algorithm)),
			slog.Any("error", err),
		)

		return &usecase.QueryOutcome{
			Sequence:     seq,
			Status:       usecase.QueryFailed,
			Notification: notificationFor(err),
		}, err
	}

	if err := s.presenter.Present(query, result); err != nil {
		s.recorder.ObservePathQuery(outcomeFailed, time.Since(startTime))
		s.logger.Error("Failed to present path result", slog.Any("error", err))

		return &usecase.QueryOutcome{
			Sequence:     seq,
			Status:       usecase.QueryFailed,
			Notification: notificationFor(err),
		}, err
	}

	s.recorder.ObservePathQuery(outcomeApplied, time.Since(startTime))

	return &usecase.QueryOutcome{
		Sequence: seq,
		Status:   usecase.QueryApplied,
		Result:   result,
	}, nil
}

// Clear removes highlighted paths and panels, then restores the base network.
// Any query still in flight is invalidated.
func (s *mapSession) Clear() error {
	s.seq.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mapSync.ClearResultPaths()
	if _, err := s.mapSync.RestoreBaseView(s.graph); err != nil {
		return errors.Wrap(err, "failed to restore base view")
	}

	return nil
}

func (s *mapSession) RestoreBaseView() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.mapSync.RestoreBaseView(s.graph); err != nil {
		return errors.Wrap(err, "failed to restore base view")
	}

	return nil
}

func (s *mapSession) IsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph.Loaded()
}

func (s *mapSession) LocationNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph.Names()
}

func (s *mapSession) OverlayCounts() map[entity.Category]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.Counts()
}

func (s *mapSession) Snapshot(read func(state usecase.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	read(usecase.SessionState{
		Loaded: s.graph.Loaded(),
		Counts: s.registry.Counts(),
	})
}

func (s *mapSession) Legend() []usecase.LegendEntry {
	return s.mapSync.Legend()
}

// notificationFor picks the blocking message shown for a failed query.
func notificationFor(err error) string {
	var queryErr *domainerrors.QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Message()
	}

	return domainerrors.MsgFindPathRetry
}
