// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"routeview/internal/delivery/http/router/handler"
	"routeview/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler *handler.SessionHandler
	TileHandler    *handler.TileHandler
	HealthHandler  *handler.HealthHandler
	Metrics        *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler *handler.SessionHandler
	tileHandler    *handler.TileHandler
	healthHandler  *handler.HealthHandler
	metrics        *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler: params.SessionHandler,
		tileHandler:    params.TileHandler,
		healthHandler:  params.HealthHandler,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)
	if r.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	sessionGroup := e.Group("/session")
	{
		sessionGroup.GET("/locations", r.sessionHandler.GetLocations)
		sessionGroup.GET("/map", r.sessionHandler.GetMap)
		sessionGroup.GET("/panels", r.sessionHandler.GetPanels)
		sessionGroup.POST("/findpath", r.sessionHandler.FindPath)
		sessionGroup.POST("/clear", r.sessionHandler.Clear)
		sessionGroup.POST("/reload", r.sessionHandler.Reload)
	}

	e.GET("/tiles/:tileset/:z/:x/:y", r.tileHandler.GetTile)
}
