package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the dispatch core.
type Metrics struct {
	registry *prometheus.Registry

	// Dispatch metrics
	ToolExecutionsTotal      *prometheus.CounterVec
	ToolExecutionDuration    *prometheus.HistogramVec
	AuthorizationDeniedTotal *prometheus.CounterVec

	// Status cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Gateway metrics
	RequestsTotal *prometheus.CounterVec
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ToolExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"tool_name", "status"},
		),
		ToolExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool_name"},
		),
		AuthorizationDeniedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authorization_denied_total",
				Help: "Total number of tool calls denied by the access gate",
			},
			[]string{"tool_name"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "status_cache_hits_total",
				Help: "Total number of provider status cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "status_cache_misses_total",
				Help: "Total number of provider status cache misses",
			},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total number of gateway HTTP requests",
			},
			[]string{"endpoint", "status"},
		),
	}

	registry.MustRegister(
		m.ToolExecutionsTotal,
		m.ToolExecutionDuration,
		m.AuthorizationDeniedTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.RequestsTotal,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
