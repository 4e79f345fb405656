package main

import (
	"context"
	"log/slog"
	"os"

	"routeview/config"
	"routeview/internal/delivery"
	"routeview/internal/delivery/http"
	"routeview/internal/delivery/http/middleware"
	"routeview/internal/delivery/http/router/handler"
	"routeview/internal/domain/service"
	"routeview/internal/infra/backend"
	logs "routeview/internal/infra/log"
	"routeview/internal/infra/metrics"
	"routeview/internal/infra/panel"
	"routeview/internal/infra/surface"
	"routeview/internal/infra/tiles"
	"routeview/internal/usecase"
	"routeview/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

// panels provides the warnings and results panels both as ports for the
// session and as readable panels for the HTTP handlers.
type panels struct {
	fx.Out

	WarningsPanel *panel.Memory      `name:"warnings"`
	ResultsPanel  *panel.Memory      `name:"results"`
	Warnings      service.TextPanel `name:"warnings"`
	Results       service.TextPanel `name:"results"`
}

func newPanels() panels {
	warnings, results := panel.NewMemory(), panel.NewMemory()

	return panels{
		WarningsPanel: warnings,
		ResultsPanel:  results,
		Warnings:      warnings,
		Results:       results,
	}
}

type mapSurface struct {
	fx.Out

	GeoJSON *surface.GeoJSONSurface
	Surface service.MapSurface
}

func newMapSurface(cfg *config.Config) mapSurface {
	s := surface.NewFromConfig(cfg)

	return mapSurface{GeoJSON: s, Surface: s}
}

func main() {
	fx.New(
		injectInfra(),
		injectAdapter(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			loadSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		fx.Annotate(
			metrics.New,
			fx.As(fx.Self()),
			fx.As(new(service.SessionRecorder)),
		),
	)
}

func injectAdapter() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				backend.New,
				fx.As(new(service.RouteBackend)),
			),
			newMapSurface,
			newPanels,
			tiles.NewSource,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMapSession,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewTileHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// loadSession performs the page-load graph fetch. A failure leaves the map tile-only
// and is reported; the server still starts.
func loadSession(ctx context.Context, session usecase.MapSessionUsecase, logger *slog.Logger) {
	if err := session.Load(ctx); err != nil {
		logger.Warn("Starting without location graph", slog.Any("error", err))
	}
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
