package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initResolverMetrics() {
	r.ExpressionCacheHits = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdfv_volume_expression_cache_hits_total",
			Help: "Parsed expression cache hits",
		},
	)

	r.ExpressionCacheMisses = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdfv_volume_expression_cache_misses_total",
			Help: "Parsed expression cache misses",
		},
	)

	r.ResolverErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdfv_volume_resolver_errors_total",
			Help: "Expression evaluation failures, by kind",
		},
		[]string{"kind"},
	)
}
