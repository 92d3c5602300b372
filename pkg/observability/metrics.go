package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global collector instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Thread context metrics
	ContextBuilds *prometheus.CounterVec
	AxisDuration  *prometheus.HistogramVec
	AxisFallbacks *prometheus.CounterVec

	// Business metrics
	SnippetsCaptured prometheus.Counter
	SnippetsLinked   prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	contextBuilds := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thread_context_builds_total",
			Help:      "Total number of thread context builds by outcome",
		},
		[]string{"status"},
	)

	axisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "thread_axis_resolve_duration_seconds",
			Help:      "Per-axis relation resolution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"axis"},
	)

	axisFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thread_axis_fallbacks_total",
			Help:      "Times an axis fell back to its heuristic strategy",
		},
		[]string{"axis"},
	)

	snippetsCaptured := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snippets_captured_total",
			Help:      "Total number of snippets captured",
		},
	)

	snippetsLinked := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snippets_linked_total",
			Help:      "Total number of edges created between snippets",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		contextBuilds,
		axisDuration,
		axisFallbacks,
		snippetsCaptured,
		snippetsLinked,
	)

	globalCollector = &Collector{
		registry:         registry,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		ContextBuilds:    contextBuilds,
		AxisDuration:     axisDuration,
		AxisFallbacks:    axisFallbacks,
		SnippetsCaptured: snippetsCaptured,
		SnippetsLinked:   snippetsLinked,
	}
	return globalCollector
}

// Registry exposes the collector's registry for the /metrics handler
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Nil-safe recording helpers so call sites don't have to guard against a
// disabled collector.

// RecordBuild records a thread context build outcome
func (c *Collector) RecordBuild(status string) {
	if c == nil {
		return
	}
	c.ContextBuilds.WithLabelValues(status).Inc()
}

// RecordAxis records one axis resolution
func (c *Collector) RecordAxis(axis string, duration time.Duration, fellBack bool) {
	if c == nil {
		return
	}
	c.AxisDuration.WithLabelValues(axis).Observe(duration.Seconds())
	if fellBack {
		c.AxisFallbacks.WithLabelValues(axis).Inc()
	}
}

// RecordSnippetCaptured records a snippet capture
func (c *Collector) RecordSnippetCaptured() {
	if c == nil {
		return
	}
	c.SnippetsCaptured.Inc()
}

// RecordSnippetsLinked records an edge creation
func (c *Collector) RecordSnippetsLinked() {
	if c == nil {
		return
	}
	c.SnippetsLinked.Inc()
}

// RecordHTTPRequest records an HTTP request
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
