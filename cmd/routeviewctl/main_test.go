package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graphJSON = `{
	"locations": [
		{"name": "Meskel Square", "lat": 9.0107, "lng": 38.7613},
		{"name": "Piassa", "lat": 9.0350, "lng": 38.7500},
		{"name": "Bole", "lat": 8.9950, "lng": 38.7900}
	],
	"edges": [
		{"from": "Meskel Square", "to": "Piassa", "distance": 3.2},
		{"from": "Meskel Square", "to": "Bole", "distance": 4.1}
	]
}`

func newBackend(t *testing.T, findPath http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(graphJSON))
	})
	mux.HandleFunc("/api/findpath", findPath)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out, _, err := runSplit(t, args...)

	return out, err
}

func runSplit(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestLocationsCommand(t *testing.T) {
	backend := newBackend(t, http.NotFound)

	out, err := run(t, "--backend", backend.URL, "locations")
	require.NoError(t, err)

	assert.Contains(t, out, "3 locations, 2 edges")
	assert.Contains(t, out, "Meskel Square")
	assert.Contains(t, out, "9.0350, 38.7500")
}

func TestFindCommand(t *testing.T) {
	var received map[string]string
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"paths": [[
				{"name": "Piassa", "lat": 9.0350, "lng": 38.7500},
				{"name": "Meskel Square", "lat": 9.0107, "lng": 38.7613},
				{"name": "Bole", "lat": 8.9950, "lng": 38.7900}
			]],
			"cost": 7.3,
			"numPaths": 1,
			"algorithm": "ASTAR",
			"warnings": ["Heuristic may overestimate"]
		}`))
	})

	out, err := run(t, "--backend", backend.URL, "find", "Piassa", "Bole", "-a", "astar")
	require.NoError(t, err)

	assert.Equal(t, "astar", received["algorithm"])
	assert.Contains(t, out, "Heuristic may overestimate")
	assert.Contains(t, out, "Algorithm: ASTAR")
	assert.Contains(t, out, "Total Distance: 7.3 km")
	assert.Contains(t, out, "Route: Piassa → Meskel Square → Bole")
	assert.Contains(t, out, "3 markers, 2 edges, 1 highlighted paths")
}

func TestFindCommandGeoJSON(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paths": [[{"name": "Piassa", "lat": 9.035, "lng": 38.75}, {"name": "Bole", "lat": 8.995, "lng": 38.79}]], "cost": 5, "numPaths": 1}`))
	})

	out, errOut, err := runSplit(t, "--backend", backend.URL, "find", "Piassa", "Bole", "--geojson")
	require.NoError(t, err)

	var collection struct {
		Type     string `json:"type"`
		Features []any  `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &collection))
	assert.Equal(t, "FeatureCollection", collection.Type)
	assert.Len(t, collection.Features, 6)
	assert.Contains(t, errOut, "Route: Piassa → Bole")
}

func TestFindCommandBackendError(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "no path exists"}`))
	})

	_, err := run(t, "--backend", backend.URL, "find", "Piassa", "Bole")
	require.Error(t, err)
	assert.Equal(t, "no path exists", err.Error())
}

func TestFindCommandRequiresTwoLocations(t *testing.T) {
	_, err := run(t, "find", "Piassa")
	require.Error(t, err)
}
