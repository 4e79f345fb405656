package surface

import (
	"encoding/json"
	"testing"

	"routeview/config"
	"routeview/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface() *GeoJSONSurface {
	return NewGeoJSONSurface(
		Viewport{CenterLat: 9.0107, CenterLng: 38.7613, Zoom: 12},
		Fitter{Width: 1280, Height: 720, MaxZoom: 19},
	)
}

func marker(name string, lat, lng float64) *entity.Overlay {
	return &entity.Overlay{
		ID:        uuid.New(),
		Category:  entity.CategoryBaseMarker,
		Geometry:  orb.Point{lng, lat},
		Style:     entity.Style{Color: "#3498db", Weight: 2, Opacity: 1},
		Label:     name,
		PathIndex: -1,
	}
}

func TestGeoJSONSurface_AddRemove(t *testing.T) {
	s := newTestSurface()
	a := marker("Bole", 8.995, 38.79)
	b := marker("Piazza", 9.033, 38.7469)

	require.NoError(t, s.AddLayer(a))
	require.NoError(t, s.AddLayer(b))
	assert.Equal(t, 2, s.LayerCount())

	s.RemoveLayer(a.ID)
	assert.Equal(t, 1, s.LayerCount())

	fc := s.FeatureCollection()
	require.Len(t, fc.Features, 1)
	assert.Equal(t, b.ID.String(), fc.Features[0].ID)

	// Unknown handles are ignored.
	s.RemoveLayer(uuid.New())
	s.RemoveLayer(a.ID)
	assert.Equal(t, 1, s.LayerCount())
}

func TestGeoJSONSurface_AddLayerRejectsInvalid(t *testing.T) {
	s := newTestSurface()

	require.Error(t, s.AddLayer(nil))
	require.Error(t, s.AddLayer(&entity.Overlay{ID: uuid.New()}))
	require.Error(t, s.AddLayer(&entity.Overlay{Geometry: orb.Point{1, 1}}))

	m := marker("Bole", 8.995, 38.79)
	require.NoError(t, s.AddLayer(m))
	require.Error(t, s.AddLayer(m))
	assert.Equal(t, 1, s.LayerCount())
}

func TestGeoJSONSurface_FeatureProperties(t *testing.T) {
	s := newTestSurface()
	line := &entity.Overlay{
		ID:        uuid.New(),
		Category:  entity.CategoryResultPath,
		Geometry:  orb.LineString{{38.7469, 9.033}, {38.72, 9.03}},
		Style:     entity.Style{Color: "#e74c3c", Weight: 4, Opacity: 1},
		PathIndex: 1,
	}
	require.NoError(t, s.AddLayer(line))

	raw, err := json.Marshal(s.FeatureCollection())
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string         `json:"id"`
			Geometry   map[string]any `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 1)
	feature := decoded.Features[0]
	assert.Equal(t, line.ID.String(), feature.ID)
	assert.Equal(t, "LineString", feature.Geometry["type"])
	assert.Equal(t, "result-path", feature.Properties["category"])
	assert.Equal(t, "#e74c3c", feature.Properties["color"])
	assert.EqualValues(t, 4, feature.Properties["weight"])
	assert.EqualValues(t, 1, feature.Properties["pathIndex"])
	assert.NotContains(t, feature.Properties, "label")
}

func TestGeoJSONSurface_FitBoundsUpdatesViewport(t *testing.T) {
	s := newTestSurface()
	assert.Equal(t, 12, s.Viewport().Zoom)
	assert.Nil(t, s.Viewport().Bounds)

	s.FitBounds(orb.Bound{Min: orb.Point{38.72, 9.03}, Max: orb.Point{38.7469, 9.038}}, 50)

	viewport := s.Viewport()
	require.NotNil(t, viewport.Bounds)
	assert.Equal(t, 50, viewport.Padding)
	assert.InDelta(t, 38.73345, viewport.CenterLng, 1e-6)
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	s := NewFromConfig(cfg)

	vp := s.Viewport()
	assert.InDelta(t, 9.0107, vp.CenterLat, 1e-9)
	assert.InDelta(t, 38.7613, vp.CenterLng, 1e-9)
	assert.Equal(t, 12, vp.Zoom)
	assert.Nil(t, vp.Bounds)
	assert.Equal(t, Fitter{Width: 1280, Height: 720, MaxZoom: 19}, s.fitter)
}
