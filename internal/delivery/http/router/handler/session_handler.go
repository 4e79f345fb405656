package handler

import (
	"log/slog"
	"net/http"

	"routeview/config"
	deliverycontext "routeview/internal/delivery/context"
	"routeview/internal/delivery/http/response"
	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"
	"routeview/internal/infra/panel"
	"routeview/internal/infra/surface"
	"routeview/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	Session  usecase.MapSessionUsecase
	Surface  *surface.GeoJSONSurface
	Warnings *panel.Memory `name:"warnings"`
	Results  *panel.Memory `name:"results"`
	Config   *config.Config
	Logger   *slog.Logger
}

// SessionHandler exposes the map session to the browser.
type SessionHandler struct {
	session  usecase.MapSessionUsecase
	surface  *surface.GeoJSONSurface
	warnings *panel.Memory
	results  *panel.Memory
	tiles    TileLayer
	logger   *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		session:  params.Session,
		surface:  params.Surface,
		warnings: params.Warnings,
		results:  params.Results,
		tiles:    newTileLayer(params.Config.Tiles),
		logger:   params.Logger,
	}
}

// TileLayer is the base map configuration handed to the browser.
type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

func newTileLayer(cfg *config.TilesConfig) TileLayer {
	if cfg == nil {
		return TileLayer{}
	}

	return TileLayer{
		URLTemplate: cfg.URLTemplate,
		Attribution: cfg.Attribution,
		MaxZoom:     cfg.MaxZoom,
	}
}

// MapView is everything needed to render the map.
type MapView struct {
	Loaded   bool                       `json:"loaded"`
	Viewport surface.Viewport           `json:"viewport"`
	Tiles    TileLayer                  `json:"tiles"`
	Overlays *geojson.FeatureCollection `json:"overlays"`
	Counts   map[entity.Category]int    `json:"counts"`
	Legend   []usecase.LegendEntry      `json:"legend"`
}

// PanelsView is the current state of the warnings and results panels.
type PanelsView struct {
	Warnings panel.State `json:"warnings"`
	Results  panel.State `json:"results"`
}

// FindPathRequest represents the request body for a path query
type FindPathRequest struct {
	Start     string `json:"start"`
	Goal      string `json:"goal"`
	Algorithm string `json:"algorithm"`
}

// FindPathResponse describes what a query did to the map
type FindPathResponse struct {
	Outcome *usecase.QueryOutcome `json:"outcome"`
	Panels  PanelsView            `json:"panels"`
}

// GetLocations returns the names for the start and goal selectors
func (h *SessionHandler) GetLocations(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"locations":  h.session.LocationNames(),
		"algorithms": entity.Algorithms(),
		"default":    entity.DefaultAlgorithm,
	}, "Locations retrieved successfully")
}

// GetMap returns overlays, camera and tile layer
func (h *SessionHandler) GetMap(c echo.Context) error {
	mapView, _ := h.view()

	return response.Success(c, http.StatusOK, mapView, "Map retrieved successfully")
}

// GetPanels returns the warnings and results panels
func (h *SessionHandler) GetPanels(c echo.Context) error {
	_, panels := h.view()

	return response.Success(c, http.StatusOK, panels, "Panels retrieved successfully")
}

// FindPath submits one path query
func (h *SessionHandler) FindPath(c echo.Context) error {
	var req FindPathRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid path query")
	}

	query := entity.PathQuery{
		Start:     req.Start,
		Goal:      req.Goal,
		Algorithm: entity.Algorithm(req.Algorithm),
	}

	ctx := c.Request().Context()
	outcome, err := h.session.Submit(ctx, query)
	_, panels := h.view()
	body := FindPathResponse{Outcome: outcome, Panels: panels}
	if err != nil {
		deliverycontext.LoggerOrDefault(ctx, h.logger).Info("Path query not applied",
			slog.String("status", string(outcome.Status)),
			slog.Any("error", err),
		)

		return h.outcomeError(c, outcome, err, body)
	}

	message := "Path query applied"
	if outcome.Status == usecase.QueryStale {
		message = "Path query superseded by a newer query"
	}

	return response.Success(c, http.StatusOK, body, message)
}

// Clear removes highlighted paths and panels and restores the base network
func (h *SessionHandler) Clear(c echo.Context) error {
	if err := h.session.Clear(); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.session.OverlayCounts(), "Map cleared")
}

// Reload refetches the location graph and redraws the map
func (h *SessionHandler) Reload(c echo.Context) error {
	if err := h.session.Reload(c.Request().Context()); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.session.OverlayCounts(), "Location graph reloaded")
}

// view reads the map and both panels in one snapshot, between two complete updates.
func (h *SessionHandler) view() (MapView, PanelsView) {
	var (
		mapView MapView
		panels  PanelsView
	)
	legend := h.session.Legend()

	h.session.Snapshot(func(state usecase.SessionState) {
		mapView = MapView{
			Loaded:   state.Loaded,
			Viewport: h.surface.Viewport(),
			Tiles:    h.tiles,
			Overlays: h.surface.FeatureCollection(),
			Counts:   state.Counts,
			Legend:   legend,
		}
		panels = PanelsView{
			Warnings: h.warnings.State(),
			Results:  h.results.State(),
		}
	})

	return mapView, panels
}

// outcomeError answers a failed or invalid query with the notification the user must see.
func (h *SessionHandler) outcomeError(c echo.Context, outcome *usecase.QueryOutcome, err error, body FindPathResponse) error {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return errors.WithStack(err)
	}

	message := appErr.Message()
	if outcome != nil && outcome.Notification != "" {
		message = outcome.Notification
	}

	return response.ErrorWithData(c, appErr.HTTPCode(), appErr.ErrorCode(), message, appErr.Details(), body)
}

// handleAppError handles application errors
func handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
