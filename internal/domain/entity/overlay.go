package entity

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Category tags an overlay with the layer it belongs to.
type Category string

const (
	CategoryBaseMarker Category = "base-marker"
	CategoryBaseEdge   Category = "base-edge"
	CategoryResultPath Category = "result-path"
)

// Categories returns every overlay category in drawing order.
func Categories() []Category {
	return []Category{CategoryBaseMarker, CategoryBaseEdge, CategoryResultPath}
}

// Style describes how a line or marker is painted.
type Style struct {
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

// Overlay is a drawn visual object: a marker (orb.Point) or a line (orb.LineString).
// The overlay registry owns its lifecycle; the map surface only renders it.
type Overlay struct {
	ID        uuid.UUID    // Handle assigned on registration.
	Category  Category     // Layer the overlay belongs to.
	Geometry  orb.Geometry // orb.Point for markers, orb.LineString for lines.
	Style     Style
	Label     string // Marker caption or path summary.
	PathIndex int    // Index into the result set for result-path overlays, -1 otherwise.
}
