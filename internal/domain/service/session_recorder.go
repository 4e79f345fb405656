package service

import (
	"time"

	"routeview/internal/domain/entity"
)

// SessionRecorder receives map session telemetry.
type SessionRecorder interface {
	SetOverlayCount(category entity.Category, count int)
	ObservePathQuery(outcome string, duration time.Duration)
	IncGraphLoad(ok bool)
	IncIntegrityWarning(kind string)
}
