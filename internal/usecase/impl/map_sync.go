package impl

import (
	"context"
	"log/slog"
	"strconv"

	"routeview/config"
	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"
	"routeview/internal/domain/service"
	"routeview/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// resultPalette colors simultaneous result paths; path i uses resultPalette[i % len].
var resultPalette = [...]string{"#3498db", "#e74c3c", "#2ecc71", "#f39c12", "#9b59b6"}

var (
	markerStyle    = entity.Style{Color: "#3498db", Weight: 2, Opacity: 1.0}
	baseEdgeStyle  = entity.Style{Color: "#cccccc", Weight: 2, Opacity: 0.5}
	resultWeight   = 4
	resultOpacity  = 1.0
	baseCategories = []entity.Category{entity.CategoryBaseMarker, entity.CategoryBaseEdge}
)

// PaletteColor returns the color of the result path at index.
func PaletteColor(index int) string {
	n := len(resultPalette)

	return resultPalette[((index%n)+n)%n]
}

// BaseDrawStats summarizes one base graph draw.
type BaseDrawStats struct {
	Markers      int
	Edges        int
	SkippedEdges int
}

// MapSync reconciles the overlay registry with the cached graph and with path results.
// It is not safe for concurrent use; MapSession serializes access.
type MapSync struct {
	registry   *OverlayRegistry
	warnings   service.TextPanel
	results    service.TextPanel
	surface    service.MapSurface
	fitPadding int
	logger     *slog.Logger
	recorder   service.SessionRecorder
}

// NewMapSync creates a MapSync drawing through registry onto surface.
func NewMapSync(
	registry *OverlayRegistry,
	surface service.MapSurface,
	warnings, results service.TextPanel,
	fitPadding int,
	logger *slog.Logger,
	recorder service.SessionRecorder,
) *MapSync {
	if fitPadding <= 0 {
		fitPadding = config.DefaultFitPadding
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &MapSync{
		registry:   registry,
		warnings:   warnings,
		results:    results,
		surface:    surface,
		fitPadding: fitPadding,
		logger:     orDiscard(logger),
		recorder:   recorder,
	}
}

// DrawBaseGraph adds one labelled marker per location and one low-emphasis line per edge.
// Edges with an endpoint missing from the graph are skipped. If the surface rejects an
// overlay, everything drawn by this call is removed again.
func (m *MapSync) DrawBaseGraph(graph *GraphCache) (BaseDrawStats, error) {
	var stats BaseDrawStats
	if graph == nil {
		return stats, nil
	}

	for _, location := range graph.Locations() {
		overlay := entity.Overlay{
			Geometry:  location.Point(),
			Style:     markerStyle,
			Label:     location.Name,
			PathIndex: -1,
		}
		if _, err := m.registry.Add(overlay, entity.CategoryBaseMarker); err != nil {
			m.registry.Clear(baseCategories...)

			return BaseDrawStats{}, errors.Wrapf(err, "draw marker %q", location.Name)
		}
		stats.Markers++
	}

	for _, edge := range graph.Edges() {
		from, fromOK := graph.FindLocation(edge.From)
		to, toOK := graph.FindLocation(edge.To)
		if !fromOK || !toOK {
			stats.SkippedEdges++
			m.integrityWarning(domainerrors.DataIntegrityWarning{
				Kind:   domainerrors.IntegrityUnknownEndpoint,
				Detail: edge.From + " - " + edge.To,
			}, slog.LevelDebug)

			continue
		}

		overlay := entity.Overlay{
			Geometry:  orb.LineString{from.Point(), to.Point()},
			Style:     baseEdgeStyle,
			PathIndex: -1,
		}
		if _, err := m.registry.Add(overlay, entity.CategoryBaseEdge); err != nil {
			m.registry.Clear(baseCategories...)

			return BaseDrawStats{}, errors.Wrapf(err, "draw edge %q - %q", edge.From, edge.To)
		}
		stats.Edges++
	}

	return stats, nil
}

// ClearResultPaths removes every highlighted path and hides both text panels.
// It does not touch the base network.
func (m *MapSync) ClearResultPaths() int {
	removed := m.registry.Clear(entity.CategoryResultPath)
	m.warnings.Hide()
	m.results.Hide()

	return removed
}

// RestoreBaseView replaces the base network overlays with a fresh draw of graph.
// Repeating it leaves the same overlays in place.
func (m *MapSync) RestoreBaseView(graph *GraphCache) (BaseDrawStats, error) {
	m.registry.Clear(baseCategories...)

	return m.DrawBaseGraph(graph)
}

// DrawResultPaths adds one highlighted line per path, colored by palette index, then
// fits the camera to the first path only. If the surface rejects an overlay, every
// result path is removed again.
func (m *MapSync) DrawResultPaths(paths [][]entity.Location) error {
	for i, path := range paths {
		geometry, ok := pathGeometry(path)
		if !ok {
			m.integrityWarning(domainerrors.DataIntegrityWarning{
				Kind:   domainerrors.IntegrityDegeneratePath,
				Detail: "result path has no locations",
			}, slog.LevelWarn)

			continue
		}

		overlay := entity.Overlay{
			Geometry:  geometry,
			Style:     entity.Style{Color: PaletteColor(i), Weight: resultWeight, Opacity: resultOpacity},
			Label:     FormatRoute(path),
			PathIndex: i,
		}
		if _, err := m.registry.Add(overlay, entity.CategoryResultPath); err != nil {
			m.registry.Clear(entity.CategoryResultPath)

			return errors.Wrapf(err, "draw result path %d", i+1)
		}
	}

	// Only the first path frames the camera, even when several paths tie.
	if len(paths) > 0 && len(paths[0]) > 0 {
		m.surface.FitBounds(pathBound(paths[0]), m.fitPadding)
	}

	return nil
}

// Legend describes the styles used for base and result overlays.
func (m *MapSync) Legend() []usecase.LegendEntry {
	legend := []usecase.LegendEntry{
		{Label: "Location", Style: markerStyle},
		{Label: "Road network", Style: baseEdgeStyle},
	}
	for i := range resultPalette {
		legend = append(legend, usecase.LegendEntry{
			Label: "Optimal path " + strconv.Itoa(i+1),
			Style: entity.Style{Color: resultPalette[i], Weight: resultWeight, Opacity: resultOpacity},
		})
	}

	return legend
}

func (m *MapSync) integrityWarning(warning domainerrors.DataIntegrityWarning, level slog.Level) {
	m.recorder.IncIntegrityWarning(string(warning.Kind))
	m.logger.Log(context.Background(), level, "Skipped inconsistent map data",
		slog.String("kind", string(warning.Kind)),
		slog.String("detail", warning.Detail),
	)
}

// pathGeometry returns a line for paths of two or more locations and a point for a single one.
func pathGeometry(path []entity.Location) (orb.Geometry, bool) {
	switch len(path) {
	case 0:
		return nil, false
	case 1:
		return path[0].Point(), true
	}

	line := make(orb.LineString, 0, len(path))
	for _, location := range path {
		line = append(line, location.Point())
	}

	return line, true
}

func pathBound(path []entity.Location) orb.Bound {
	points := make(orb.MultiPoint, 0, len(path))
	for _, location := range path {
		points = append(points, location.Point())
	}

	return points.Bound()
}
