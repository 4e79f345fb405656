// Package surface holds map surfaces that render overlays for a browser client.
package surface

import (
	"sync"

	"routeview/config"
	"routeview/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// GeoJSONSurface keeps the visible overlays as GeoJSON features and tracks the camera.
// A browser polls FeatureCollection and Viewport and draws them with its map widget.
type GeoJSONSurface struct {
	mu       sync.RWMutex
	layers   map[uuid.UUID]*entity.Overlay
	order    []uuid.UUID
	viewport Viewport
	fitter   Fitter
}

// NewGeoJSONSurface creates a surface showing the initial camera.
func NewGeoJSONSurface(initial Viewport, fitter Fitter) *GeoJSONSurface {
	return &GeoJSONSurface{
		layers:   make(map[uuid.UUID]*entity.Overlay),
		viewport: initial,
		fitter:   fitter,
	}
}

// NewFromConfig creates a surface centered on the configured initial view.
func NewFromConfig(cfg *config.Config) *GeoJSONSurface {
	initial := Viewport{}
	fitter := Fitter{}
	if cfg.Map != nil {
		initial = Viewport{CenterLat: cfg.Map.CenterLat, CenterLng: cfg.Map.CenterLng, Zoom: cfg.Map.Zoom}
		fitter.Width = cfg.Map.ViewportWidth
		fitter.Height = cfg.Map.ViewportHeight
	}
	if cfg.Tiles != nil {
		fitter.MaxZoom = cfg.Tiles.MaxZoom
	}

	return NewGeoJSONSurface(initial, fitter)
}

// AddLayer makes the overlay visible. The overlay must carry a handle and a geometry.
func (s *GeoJSONSurface) AddLayer(overlay *entity.Overlay) error {
	if overlay == nil || overlay.Geometry == nil {
		return errors.New("overlay has no geometry")
	}
	if overlay.ID == uuid.Nil {
		return errors.New("overlay has no handle")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layers[overlay.ID]; exists {
		return errors.Errorf("overlay %s already on surface", overlay.ID)
	}

	s.layers[overlay.ID] = overlay
	s.order = append(s.order, overlay.ID)

	return nil
}

// RemoveLayer hides an overlay. Unknown handles are ignored.
func (s *GeoJSONSurface) RemoveLayer(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layers[id]; !exists {
		return
	}

	delete(s.layers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

// FitBounds moves the camera to frame bound.
func (s *GeoJSONSurface) FitBounds(bound orb.Bound, padding int) {
	viewport := s.fitter.Fit(bound, padding)

	s.mu.Lock()
	s.viewport = viewport
	s.mu.Unlock()
}

// Viewport returns the current camera.
func (s *GeoJSONSurface) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.viewport
}

// LayerCount returns the number of visible overlays.
func (s *GeoJSONSurface) LayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.layers)
}

// FeatureCollection renders the visible overlays in drawing order.
func (s *GeoJSONSurface) FeatureCollection() *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fc := geojson.NewFeatureCollection()
	for _, id := range s.order {
		fc.Append(toFeature(s.layers[id]))
	}

	return fc
}

func toFeature(overlay *entity.Overlay) *geojson.Feature {
	feature := geojson.NewFeature(overlay.Geometry)
	feature.ID = overlay.ID.String()
	feature.Properties["category"] = string(overlay.Category)
	feature.Properties["color"] = overlay.Style.Color
	feature.Properties["weight"] = overlay.Style.Weight
	feature.Properties["opacity"] = overlay.Style.Opacity

	if overlay.Label != "" {
		feature.Properties["label"] = overlay.Label
	}
	if overlay.Category == entity.CategoryResultPath {
		feature.Properties["pathIndex"] = overlay.PathIndex
	}

	return feature
}
