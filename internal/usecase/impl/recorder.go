package impl

import (
	"io"
	"log/slog"
	"time"

	"routeview/internal/domain/entity"
)

type nopRecorder struct{}

func (nopRecorder) SetOverlayCount(entity.Category, int) {}
func (nopRecorder) ObservePathQuery(string, time.Duration) {}
func (nopRecorder) IncGraphLoad(bool) {}
func (nopRecorder) IncIntegrityWarning(string) {}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return logger
}
