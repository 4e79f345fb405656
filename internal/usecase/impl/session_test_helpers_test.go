package impl

import (
	"io"
	"log/slog"

	"routeview/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSurface records what the registry draws.
type fakeSurface struct {
	layers   map[uuid.UUID]*entity.Overlay
	fits     []orb.Bound
	paddings []int
	added    int
	removed  int
	failOn   entity.Category
	failFrom int // number of successful adds of failOn before failing
	seen     int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{layers: make(map[uuid.UUID]*entity.Overlay)}
}

func (s *fakeSurface) AddLayer(overlay *entity.Overlay) error {
	if s.failOn != "" && overlay.Category == s.failOn {
		if s.seen >= s.failFrom {
			return errors.New("surface rejected overlay")
		}
		s.seen++
	}

	s.layers[overlay.ID] = overlay
	s.added++

	return nil
}

func (s *fakeSurface) RemoveLayer(id uuid.UUID) {
	if _, ok := s.layers[id]; ok {
		delete(s.layers, id)
		s.removed++
	}
}

func (s *fakeSurface) FitBounds(bound orb.Bound, padding int) {
	s.fits = append(s.fits, bound)
	s.paddings = append(s.paddings, padding)
}

func (s *fakeSurface) count(category entity.Category) int {
	n := 0
	for _, overlay := range s.layers {
		if overlay.Category == category {
			n++
		}
	}

	return n
}

// fakePanel is a TextPanel that remembers its last state.
type fakePanel struct {
	visible bool
	lines   []string
	shows   int
	hides   int
}

func (p *fakePanel) Show(lines []string) {
	p.visible = true
	p.lines = append([]string(nil), lines...)
	p.shows++
}

func (p *fakePanel) Hide() {
	p.visible = false
	p.lines = nil
	p.hides++
}

// testGraph has three locations on a line and one edge pointing at a missing location.
func testGraph() *entity.Graph {
	return &entity.Graph{
		Locations: []entity.Location{
			{Name: "Meskel Square", Lat: 9.0107, Lng: 38.7613},
			{Name: "Piassa", Lat: 9.0350, Lng: 38.7500},
			{Name: "Bole", Lat: 8.9950, Lng: 38.7900},
		},
		Edges: []entity.Edge{
			{From: "Meskel Square", To: "Piassa", Distance: 3.2},
			{From: "Meskel Square", To: "Bole", Distance: 4.1},
			{From: "Bole", To: "Nowhere", Distance: 1.0},
		},
	}
}

func mustLocation(graph *entity.Graph, name string) entity.Location {
	for _, l := range graph.Locations {
		if l.Name == name {
			return l
		}
	}

	panic("unknown test location " + name)
}

type syncFixture struct {
	surface  *fakeSurface
	warnings *fakePanel
	results  *fakePanel
	registry *OverlayRegistry
	mapSync  *MapSync
	graph    *GraphCache
}

func newSyncFixture() *syncFixture {
	surface := newFakeSurface()
	warnings := &fakePanel{}
	results := &fakePanel{}
	registry := NewOverlayRegistry(surface, nil)

	return &syncFixture{
		surface:  surface,
		warnings: warnings,
		results:  results,
		registry: registry,
		mapSync:  NewMapSync(registry, surface, warnings, results, 0, newDiscardLogger(), nil),
		graph:    NewGraphCacheFrom(testGraph()),
	}
}
