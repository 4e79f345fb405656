package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"
	"routeview/internal/domain/service"
)

// RouteSeparator joins location names in a route line.
const RouteSeparator = " → "

// ResultPresenter turns a path result into highlighted overlays and panel text.
type ResultPresenter struct {
	mapSync  *MapSync
	warnings service.TextPanel
	results  service.TextPanel
	logger   *slog.Logger
	recorder service.SessionRecorder
}

// NewResultPresenter creates a presenter rendering through mapSync and the two panels.
func NewResultPresenter(
	mapSync *MapSync,
	warnings, results service.TextPanel,
	logger *slog.Logger,
	recorder service.SessionRecorder,
) *ResultPresenter {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &ResultPresenter{
		mapSync:  mapSync,
		warnings: warnings,
		results:  results,
		logger:   orDiscard(logger),
		recorder: recorder,
	}
}

// Present replaces whatever result is currently shown with result:
// clear highlighted paths and panels, render warnings, render the summary, draw the paths.
func (p *ResultPresenter) Present(query entity.PathQuery, result *entity.PathResult) error {
	if result == nil || len(result.Paths) == 0 {
		return domainerrors.NewQueryError(0, domainerrors.MsgNoPathsReturned, nil)
	}

	if !result.CountMatches() {
		warning := domainerrors.DataIntegrityWarning{
			Kind:   domainerrors.IntegrityPathCount,
			Detail: fmt.Sprintf("numPaths=%d, paths=%d", result.NumPaths, len(result.Paths)),
		}
		p.recorder.IncIntegrityWarning(string(warning.Kind))
		p.logger.LogAttrs(context.Background(), slog.LevelWarn, "Path count mismatch",
			slog.String("start", query.Start),
			slog.String("goal", query.Goal),
			slog.String("detail", warning.Detail),
		)
	}

	p.mapSync.ClearResultPaths()

	if len(result.Warnings) > 0 {
		p.warnings.Show(result.Warnings)
	} else {
		p.warnings.Hide()
	}

	p.results.Show(SummaryLines(result))

	if err := p.mapSync.DrawResultPaths(result.Paths); err != nil {
		p.mapSync.ClearResultPaths()

		return err
	}

	return nil
}

// SummaryLines renders the results panel text for result.
// The path list follows the paths actually returned, not the reported count.
func SummaryLines(result *entity.PathResult) []string {
	lines := []string{"Path Found"}
	if result.Algorithm != "" {
		lines = append(lines, "Algorithm: "+result.Algorithm)
	}
	lines = append(lines, "Total Distance: "+strconv.FormatFloat(result.Cost, 'f', -1, 64)+" km")

	if len(result.Paths) == 1 {
		return append(lines, "Route: "+FormatRoute(result.Paths[0]))
	}

	lines = append(lines, "Number of optimal paths: "+strconv.Itoa(len(result.Paths)))
	for i, path := range result.Paths {
		lines = append(lines, fmt.Sprintf("Path %d: %s", i+1, FormatRoute(path)))
	}

	return lines
}

// FormatRoute joins the location names of path with RouteSeparator.
func FormatRoute(path []entity.Location) string {
	names := make([]string, 0, len(path))
	for _, location := range path {
		names = append(names, location.Name)
	}

	return strings.Join(names, RouteSeparator)
}
