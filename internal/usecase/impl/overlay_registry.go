package impl

import (
	"routeview/internal/domain/entity"
	"routeview/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// OverlayRegistry tracks every overlay drawn on the map surface so each one can
// be removed by handle. Clear is the only way an overlay leaves the surface.
//
// OverlayRegistry is not safe for concurrent use; MapSession serializes access.
type OverlayRegistry struct {
	surface    service.MapSurface
	recorder   service.SessionRecorder
	byCategory map[entity.Category][]*entity.Overlay
}

// NewOverlayRegistry creates an empty registry drawing onto surface.
func NewOverlayRegistry(surface service.MapSurface, recorder service.SessionRecorder) *OverlayRegistry {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &OverlayRegistry{
		surface:    surface,
		recorder:   recorder,
		byCategory: make(map[entity.Category][]*entity.Overlay),
	}
}

// Add registers the overlay under category and makes it visible.
// The registry assigns the handle and keeps its own copy of the overlay.
func (r *OverlayRegistry) Add(overlay entity.Overlay, category entity.Category) (uuid.UUID, error) {
	if overlay.Geometry == nil {
		return uuid.Nil, errors.New("overlay has no geometry")
	}

	overlay.ID = uuid.New()
	overlay.Category = category

	if err := r.surface.AddLayer(&overlay); err != nil {
		return uuid.Nil, errors.Wrapf(err, "add %s overlay", category)
	}

	r.byCategory[category] = append(r.byCategory[category], &overlay)
	r.recorder.SetOverlayCount(category, len(r.byCategory[category]))

	return overlay.ID, nil
}

// Clear removes every overlay of the given categories, or of all categories when
// none are given, and returns how many were removed. Clearing an empty category is a no-op.
func (r *OverlayRegistry) Clear(categories ...entity.Category) int {
	if len(categories) == 0 {
		categories = entity.Categories()
	}

	removed := 0
	for _, category := range categories {
		for _, overlay := range r.byCategory[category] {
			r.surface.RemoveLayer(overlay.ID)
			removed++
		}

		delete(r.byCategory, category)
		r.recorder.SetOverlayCount(category, 0)
	}

	return removed
}

// Count returns the number of overlays registered under category.
func (r *OverlayRegistry) Count(category entity.Category) int {
	return len(r.byCategory[category])
}

// Counts returns the number of overlays for every category.
func (r *OverlayRegistry) Counts() map[entity.Category]int {
	counts := make(map[entity.Category]int, len(entity.Categories()))
	for _, category := range entity.Categories() {
		counts[category] = len(r.byCategory[category])
	}

	return counts
}

// Overlays returns copies of the overlays registered under category, in drawing order.
func (r *OverlayRegistry) Overlays(category entity.Category) []entity.Overlay {
	registered := r.byCategory[category]
	overlays := make([]entity.Overlay, 0, len(registered))
	for _, overlay := range registered {
		overlays = append(overlays, *overlay)
	}

	return overlays
}
