package impl

import (
	"context"
	"slices"

	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"
	"routeview/internal/domain/service"

	"github.com/pkg/errors"
)

// GraphCache holds the location network fetched at page load.
// It is filled once by Load and read-only afterwards.
type GraphCache struct {
	source    service.GraphSource
	loaded    bool
	locations []entity.Location
	edges     []entity.Edge
	index     map[string]int
}

// NewGraphCache creates an empty cache backed by source.
func NewGraphCache(source service.GraphSource) *GraphCache {
	return &GraphCache{source: source}
}

// NewGraphCacheFrom creates a cache that is already populated with graph.
func NewGraphCacheFrom(graph *entity.Graph) *GraphCache {
	c := &GraphCache{}
	c.fill(graph)

	return c
}

// Load fetches the graph. Calling Load on a loaded cache does nothing.
// Failures are returned as *errors.LoadError and leave the cache empty.
func (c *GraphCache) Load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	if c.source == nil {
		return domainerrors.NewLoadError(errors.New("no graph source configured"))
	}

	graph, err := c.source.FetchGraph(ctx)
	if err != nil {
		var loadErr *domainerrors.LoadError
		if errors.As(err, &loadErr) {
			return err
		}

		return domainerrors.NewLoadError(err)
	}
	if graph == nil {
		return domainerrors.NewLoadError(errors.New("graph source returned nothing"))
	}

	c.fill(graph)

	return nil
}

func (c *GraphCache) fill(graph *entity.Graph) {
	c.locations = slices.Clone(graph.Locations)
	c.edges = slices.Clone(graph.Edges)
	c.index = make(map[string]int, len(c.locations))

	for i, location := range c.locations {
		// Names are unique keys; the first arrival wins if the backend repeats one.
		if _, exists := c.index[location.Name]; !exists {
			c.index[location.Name] = i
		}
	}

	c.loaded = true
}

// Loaded reports whether the graph is available.
func (c *GraphCache) Loaded() bool {
	return c.loaded
}

// FindLocation looks a location up by name.
func (c *GraphCache) FindLocation(name string) (entity.Location, bool) {
	idx, ok := c.index[name]
	if !ok {
		return entity.Location{}, false
	}

	return c.locations[idx], true
}

// Locations returns the locations in arrival order.
func (c *GraphCache) Locations() []entity.Location {
	return slices.Clone(c.locations)
}

// Edges returns the edges in arrival order.
func (c *GraphCache) Edges() []entity.Edge {
	return slices.Clone(c.edges)
}

// Names returns the location names in arrival order.
func (c *GraphCache) Names() []string {
	names := make([]string, 0, len(c.locations))
	for _, location := range c.locations {
		names = append(names, location.Name)
	}

	return names
}
