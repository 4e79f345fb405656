package handler

import (
	"net/http"

	"routeview/internal/delivery/http/response"
	"routeview/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and whether the location graph is available.
type HealthHandler struct {
	session usecase.MapSessionUsecase
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(session usecase.MapSessionUsecase) *HealthHandler {
	return &HealthHandler{session: session}
}

// HealthCheck always answers 200; a missing graph only degrades the map.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	status := "ok"
	if !h.session.IsLoaded() {
		status = "degraded"
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"status":      status,
		"graphLoaded": h.session.IsLoaded(),
	}, "Service is healthy")
}
