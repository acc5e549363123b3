// Package metrics exposes Prometheus instrumentation for the volume overlay
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the overlay engine
type Registry struct {
	// Volume evaluation
	VolumePassesTotal       prometheus.Counter
	VolumePassDuration      prometheus.Histogram
	EdgesEvaluatedTotal     *prometheus.CounterVec
	PositiveVolumes         prometheus.Gauge
	HeatmapCenter           prometheus.Gauge
	CacheInvalidationsTotal prometheus.Counter

	// Rendering
	RenderPassesTotal  prometheus.Counter
	EdgesShadedTotal   prometheus.Counter
	ElementsCulled     *prometheus.CounterVec
	RenderPassDuration prometheus.Histogram

	// Interaction
	InteractionsTotal *prometheus.CounterVec
	PendingRequests   prometheus.Gauge

	// Symbol resolver
	ExpressionCacheHits   prometheus.Counter
	ExpressionCacheMisses prometheus.Counter
	ResolverErrorsTotal   *prometheus.CounterVec

	// System
	UptimeSeconds prometheus.Gauge
	GoRoutines    prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
	mu        sync.Mutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
	}

	r.initVolumeMetrics()
	r.initRenderMetrics()
	r.initInteractionMetrics()
	r.initResolverMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
