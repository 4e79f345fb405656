package middleware

import (
	"context"
	"log/slog"
	"time"

	"routeview/config"
	deliverycontext "routeview/internal/delivery/context"
	"routeview/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LoggerMiddleware records request metrics and, in debug mode, logs every request
type LoggerMiddleware struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	debug   bool
}

// LoggerMiddlewareParams holds dependencies for LoggerMiddleware, injected by Fx.
type LoggerMiddlewareParams struct {
	fx.In

	Logger  *slog.Logger
	Config  *config.Config
	Metrics *metrics.Metrics `optional:"true"`
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(params LoggerMiddlewareParams) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:  params.Logger,
		metrics: params.Metrics,
		debug:   params.Config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		// The error handler has not run yet; let it decide the status.
		if err != nil {
			c.Error(err)
		}

		m.metrics.ObserveHTTPRequest(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
		if m.debug {
			m.logRequest(c, start, err)
		}

		return nil
	}
}

// logRequest logs request details
func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()
	latency := time.Since(start)

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	logLevel := slog.LevelInfo
	if res.Status >= 400 {
		logLevel = slog.LevelWarn
	}
	if res.Status >= 500 {
		logLevel = slog.LevelError
	}

	m.logger.LogAttrs(context.Background(), logLevel, "HTTP Request", fields...)
}
