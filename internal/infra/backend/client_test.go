package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"routeview/internal/domain/entity"
	domainerrors "routeview/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, 0, nil)
}

func requireQueryError(t *testing.T, err error) *domainerrors.QueryError {
	t.Helper()

	var queryErr *domainerrors.QueryError
	require.True(t, errors.As(err, &queryErr), "expected QueryError, got %T", err)

	return queryErr
}

func TestClient_FetchGraph_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, locationsPath, r.URL.Path)
		_, _ = w.Write([]byte(`{
			"locations": [
				{"name": "Meskel Square", "lat": 9.0107, "lng": 38.7613},
				{"name": "Bole", "lat": 8.995, "lng": 38.79}
			],
			"edges": [{"from": "Meskel Square", "to": "Bole", "distance": 5}]
		}`))
	})

	graph, err := client.FetchGraph(context.Background())
	require.NoError(t, err)
	require.Len(t, graph.Locations, 2)
	assert.Equal(t, "Meskel Square", graph.Locations[0].Name)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, entity.Edge{From: "Meskel Square", To: "Bole", Distance: 5}, graph.Edges[0])
}

func TestClient_FetchGraph_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "missing edges", body: `{"locations": []}`, code: http.StatusOK},
		{name: "missing locations", body: `{"edges": []}`, code: http.StatusOK},
		{name: "not json", body: `<html></html>`, code: http.StatusOK},
		{name: "server error", body: `{"locations": [], "edges": []}`, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})

			graph, err := client.FetchGraph(context.Background())
			require.Error(t, err)
			assert.Nil(t, graph)

			var loadErr *domainerrors.LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestClient_FetchGraph_EmptyArraysAreValid(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"locations": [], "edges": []}`))
	})

	graph, err := client.FetchGraph(context.Background())
	require.NoError(t, err)
	assert.Empty(t, graph.Locations)
	assert.Empty(t, graph.Edges)
}

func TestClient_FetchGraph_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, 0, nil).FetchGraph(context.Background())

	var loadErr *domainerrors.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "GRAPH_LOAD_FAILED", loadErr.ErrorCode())
}

func TestClient_FindPath_Success(t *testing.T) {
	query := entity.PathQuery{Start: "Piazza", Goal: "Merkato", Algorithm: entity.AlgorithmAStar}

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, findPathPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got entity.PathQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, query, got)

		_, _ = w.Write([]byte(`{
			"paths": [[{"name": "Piazza", "lat": 9.033, "lng": 38.7469}, {"name": "Merkato", "lat": 9.03, "lng": 38.72}]],
			"cost": 3,
			"numPaths": 1,
			"algorithm": "ASTAR",
			"warnings": ["High traffic expected at Piazza"]
		}`))
	})

	result, err := client.FindPath(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result.Paths, 1)
	assert.Equal(t, "Merkato", result.Paths[0][1].Name)
	assert.InDelta(t, 3.0, result.Cost, 0)
	assert.Equal(t, 1, result.NumPaths)
	assert.Equal(t, "ASTAR", result.Algorithm)
	assert.Equal(t, []string{"High traffic expected at Piazza"}, result.Warnings)
}

func TestClient_FindPath_ServerErrorMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "no path exists"}`))
	})

	result, err := client.FindPath(context.Background(), entity.PathQuery{Start: "A", Goal: "B"})
	assert.Nil(t, result)

	queryErr := requireQueryError(t, err)
	assert.Equal(t, "no path exists", queryErr.Message())
	assert.Equal(t, http.StatusNotFound, queryErr.Status())
	assert.Equal(t, http.StatusNotFound, queryErr.HTTPCode())
}

func TestClient_FindPath_ServerErrorWithoutMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "empty object", status: http.StatusInternalServerError, body: `{}`, message: domainerrors.MsgFindPathFailed},
		{name: "empty error", status: http.StatusNotFound, body: `{"error": ""}`, message: domainerrors.MsgFindPathFailed},
		{name: "plain text", status: http.StatusInternalServerError, body: `internal failure`, message: domainerrors.MsgFindPathRetry},
		{name: "proxy html", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, message: domainerrors.MsgFindPathRetry},
		{name: "empty body", status: http.StatusServiceUnavailable, body: ``, message: domainerrors.MsgFindPathRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FindPath(context.Background(), entity.PathQuery{Start: "A", Goal: "B"})
			queryErr := requireQueryError(t, err)
			assert.Equal(t, tt.message, queryErr.Message())
			assert.Equal(t, tt.status, queryErr.Status())
		})
	}
}

func TestClient_FindPath_MalformedSuccessBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"paths": [`))
	})

	_, err := client.FindPath(context.Background(), entity.PathQuery{Start: "A", Goal: "B"})
	queryErr := requireQueryError(t, err)
	assert.Equal(t, domainerrors.MsgFindPathRetry, queryErr.Message())
}

func TestClient_FindPath_EmptyPaths(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no paths", body: `{"paths": [], "cost": 0, "numPaths": 0}`},
		{name: "missing paths", body: `{"cost": 0}`},
		{name: "empty first path", body: `{"paths": [[]], "cost": 0, "numPaths": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := client.FindPath(context.Background(), entity.PathQuery{Start: "A", Goal: "B"})
			assert.Nil(t, result)

			queryErr := requireQueryError(t, err)
			assert.Equal(t, domainerrors.MsgNoPathsReturned, queryErr.Message())
		})
	}
}

func TestClient_FindPath_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, 0, nil).FindPath(context.Background(), entity.PathQuery{Start: "A", Goal: "B"})
	queryErr := requireQueryError(t, err)
	assert.Equal(t, domainerrors.MsgFindPathRetry, queryErr.Message())
	assert.Equal(t, 0, queryErr.Status())
	assert.Equal(t, http.StatusBadGateway, queryErr.HTTPCode())
}

func TestClient_FindPath_SingleAttempt(t *testing.T) {
	calls := 0
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FindPath(context.Background(), entity.PathQuery{Start: "A", Goal: "B"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
