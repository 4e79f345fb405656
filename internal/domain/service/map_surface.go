package service

import (
	"routeview/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// MapSurface is the rendering surface for overlays.
// It displays overlays but never owns their lifecycle: every layer it shows was
// added by, and will be removed by, the overlay registry.
type MapSurface interface {
	// AddLayer makes the overlay visible
	AddLayer(overlay *entity.Overlay) error

	// RemoveLayer hides the overlay with the given handle; unknown handles are ignored
	RemoveLayer(id uuid.UUID)

	// FitBounds moves the camera so the bound is visible with padding pixels on each side
	FitBounds(bound orb.Bound, padding int)
}

// TextPanel is a place to render lines of text, such as the warnings or results panel.
type TextPanel interface {
	// Show replaces the panel content and makes it visible
	Show(lines []string)

	// Hide clears the panel and makes it invisible
	Hide()
}
