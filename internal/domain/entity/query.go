package entity

import (
	"strings"
)

// Algorithm names a server-side search strategy.
type Algorithm string

const (
	AlgorithmUCS   Algorithm = "ucs"
	AlgorithmDFS   Algorithm = "dfs"
	AlgorithmAStar Algorithm = "astar"

	// DefaultAlgorithm is what the backend runs when none is given.
	DefaultAlgorithm = AlgorithmUCS
)

// Algorithms lists the supported strategies in selector order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmUCS, AlgorithmDFS, AlgorithmAStar}
}

// ParseAlgorithm normalizes a user supplied algorithm name.
// An empty name maps to DefaultAlgorithm.
func ParseAlgorithm(raw string) (Algorithm, bool) {
	name := Algorithm(strings.ToLower(strings.TrimSpace(raw)))
	if name == "" {
		return DefaultAlgorithm, true
	}

	for _, a := range Algorithms() {
		if a == name {
			return a, true
		}
	}

	return name, false
}

// PathQuery is a single find-path request. It exists only for the duration of one request.
type PathQuery struct {
	Start     string    `json:"start" validate:"required"`
	Goal      string    `json:"goal" validate:"required"`
	Algorithm Algorithm `json:"algorithm" validate:"omitempty,oneof=ucs dfs astar"`
}

// PathResult is the backend answer to a PathQuery.
// Paths holds more than one entry when several optimal routes tie.
type PathResult struct {
	Paths     [][]Location `json:"paths"`
	Cost      float64      `json:"cost"`
	NumPaths  int          `json:"numPaths"`
	Algorithm string       `json:"algorithm"`
	Warnings  []string     `json:"warnings"`
}

// CountMatches reports whether NumPaths agrees with the number of paths returned.
func (r *PathResult) CountMatches() bool {
	return r.NumPaths == len(r.Paths)
}
