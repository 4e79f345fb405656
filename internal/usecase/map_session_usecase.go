package usecase

import (
	"context"

	"routeview/internal/domain/entity"
)

// QueryStatus describes what a submitted query did to the map.
type QueryStatus string

const (
	// QueryApplied means the result replaced the highlighted paths and panels.
	QueryApplied QueryStatus = "applied"
	// QueryFailed means the backend refused or could not be reached; nothing changed.
	QueryFailed QueryStatus = "failed"
	// QueryInvalid means the query was rejected before any request was sent.
	QueryInvalid QueryStatus = "invalid"
	// QueryStale means a newer query was issued before this one answered; its response was dropped.
	QueryStale QueryStatus = "stale"
)

// QueryOutcome is the description of the state change caused by one submitted query.
type QueryOutcome struct {
	Sequence     uint64             `json:"sequence"`
	Status       QueryStatus        `json:"status"`
	Notification string             `json:"notification,omitempty"` // Blocking user-facing message for failed or invalid queries.
	Result       *entity.PathResult `json:"result,omitempty"`
}

// LegendEntry describes one line style shown in the map legend.
type LegendEntry struct {
	Label string       `json:"label"`
	Style entity.Style `json:"style"`
}

// SessionState is read under the session lock together with whatever the
// Snapshot callback inspects.
type SessionState struct {
	Loaded bool
	Counts map[entity.Category]int
}

// MapSessionUsecase owns the map state of one page load: the graph cache,
// the overlay registry and the text panels.
type MapSessionUsecase interface {
	// Load fetches the location graph and draws the base network.
	// On failure the map stays tile-only and the error is returned for surfacing.
	Load(ctx context.Context) error

	// Reload refetches the graph and redraws the map from scratch, as a page reload would.
	// Queries still in flight are dropped.
	Reload(ctx context.Context) error

	// Submit runs one find-path query and applies its result.
	// The outcome is always returned; err carries the failure for failed or invalid queries.
	Submit(ctx context.Context, query entity.PathQuery) (*QueryOutcome, error)

	// Clear removes highlighted paths and panels and restores the base network.
	Clear() error

	// RestoreBaseView redraws the base network from the cached graph.
	RestoreBaseView() error

	// IsLoaded reports whether the location graph is available.
	IsLoaded() bool

	// LocationNames returns the names used to populate the start and goal selectors.
	LocationNames() []string

	// OverlayCounts returns the number of registered overlays per category.
	OverlayCounts() map[entity.Category]int

	// Legend describes the styles used on the map.
	Legend() []LegendEntry

	// Snapshot calls read while no update can run, so the surface and panels it
	// inspects are never seen half cleared or half drawn.
	// read must not call back into the session.
	Snapshot(read func(state SessionState))
}
