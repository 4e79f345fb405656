// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/paulmach/orb"
)

// Location is a named vertex of the route network.
// Locations are immutable once fetched and are keyed by Name.
type Location struct {
	Name string  `json:"name"` // Unique key within a graph.
	Lat  float64 `json:"lat"`  // The geographic latitude.
	Lng  float64 `json:"lng"`  // The geographic longitude.
}

// Point returns the location as an orb point (lng, lat order).
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// Edge is an undirected link between two locations, referenced by name.
type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance,omitempty"` // Edge cost in kilometers, if the backend supplies it.
}

// Graph is the static location network as delivered by the backend.
type Graph struct {
	Locations []Location `json:"locations"`
	Edges     []Edge     `json:"edges"`
}
