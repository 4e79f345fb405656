package service

import (
	"context"

	"routeview/internal/domain/entity"
)

// GraphSource fetches the static location network.
type GraphSource interface {
	// FetchGraph returns the full location and edge set.
	// Failures are reported as *errors.LoadError.
	FetchGraph(ctx context.Context) (*entity.Graph, error)
}

// PathFinder issues find-path requests to the route-planning backend.
type PathFinder interface {
	// FindPath performs exactly one request for the query.
	// Failures are reported as *errors.QueryError.
	FindPath(ctx context.Context, query entity.PathQuery) (*entity.PathResult, error)
}

// RouteBackend is the complete backend surface the map session depends on.
type RouteBackend interface {
	GraphSource
	PathFinder
}
