// Package metrics defines the Prometheus collectors for the blog engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the server and search router report into.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SearchQueriesTotal  *prometheus.CounterVec
	SearchLatency       prometheus.Histogram
	SearchCacheHits     prometheus.Counter
	SearchCacheMisses   prometheus.Counter
}

// New creates the collectors and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amiablog_http_requests_total",
				Help: "HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "amiablog_http_request_duration_seconds",
				Help:    "HTTP request latency by path.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amiablog_search_queries_total",
				Help: "Search queries by outcome (ok, rejected, empty).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "amiablog_search_latency_seconds",
				Help:    "Search query evaluation latency.",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
			},
		),
		SearchCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "amiablog_search_cache_hits_total",
				Help: "Query result cache hits.",
			},
		),
		SearchCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "amiablog_search_cache_misses_total",
				Help: "Query result cache misses.",
			},
		),
	}
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchCacheHits,
		m.SearchCacheMisses,
	)
	return m
}
