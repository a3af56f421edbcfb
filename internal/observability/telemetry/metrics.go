package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_http_requests_total",
		Help: "HTTP requests handled, by route and status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assistant_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Pipeline
	CatalogLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_catalog_lookups_total",
		Help: "Catalog lookups by outcome (found, empty, failed)",
	}, []string{"status"})

	CatalogCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_catalog_cache_total",
		Help: "Catalog search cache lookups by result (hit, miss)",
	}, []string{"result"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assistant_upstream_latency_seconds",
		Help:    "Latency of calls to external APIs",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 40},
	}, []string{"stage", "status"})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "assistant_circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	}, []string{"name"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_events_published_total",
		Help: "Domain events published, by subject and status",
	}, []string{"subject", "status"})
)

// Status labels an outcome for the counters above.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
