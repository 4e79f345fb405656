package metrics

import (
	"net/http"
	"strconv"
	"time"

	"routeview/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "routeview"

// Metrics exposes map session and HTTP metrics that are safe to scrape via Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	overlays            *prometheus.GaugeVec
	pathQueries         *prometheus.CounterVec
	pathQueryDuration   prometheus.Histogram
	graphLoads          *prometheus.CounterVec
	integrityWarnings   *prometheus.CounterVec
}

// New creates a fresh registry with all routeview metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests served",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	overlays := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "overlays",
		Help:      "Overlays currently registered on the map surface",
	}, []string{"category"})

	pathQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "path_queries_total",
		Help:      "Find-path queries by outcome",
	}, []string{"outcome"})

	pathQueryDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "path_query_duration_seconds",
		Help:      "Round trip time of find-path requests to the backend",
		Buckets:   prometheus.DefBuckets,
	})

	graphLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_loads_total",
		Help:      "Location graph loads by result",
	}, []string{"result"})

	integrityWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "integrity_warnings_total",
		Help:      "Data integrity warnings raised while rendering",
	}, []string{"kind"})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		overlays,
		pathQueries,
		pathQueryDuration,
		graphLoads,
		integrityWarnings,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		overlays:            overlays,
		pathQueries:         pathQueries,
		pathQueryDuration:   pathQueryDuration,
		graphLoads:          graphLoads,
		integrityWarnings:   integrityWarnings,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// SetOverlayCount publishes the current number of overlays in a category.
func (m *Metrics) SetOverlayCount(category entity.Category, count int) {
	if m == nil {
		return
	}
	m.overlays.WithLabelValues(string(category)).Set(float64(count))
}

// ObservePathQuery records a finished query and its backend round trip.
func (m *Metrics) ObservePathQuery(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.pathQueries.WithLabelValues(outcome).Inc()
	if duration > 0 {
		m.pathQueryDuration.Observe(duration.Seconds())
	}
}

// IncGraphLoad counts a graph load attempt.
func (m *Metrics) IncGraphLoad(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.graphLoads.WithLabelValues(result).Inc()
}

// IncIntegrityWarning counts a skipped inconsistency.
func (m *Metrics) IncIntegrityWarning(kind string) {
	if m == nil {
		return
	}
	m.integrityWarnings.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
