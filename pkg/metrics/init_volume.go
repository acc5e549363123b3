package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initVolumeMetrics() {
	r.VolumePassesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdfv_volume_passes_total",
			Help: "Total number of full volume recomputations",
		},
	)

	r.VolumePassDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sdfv_volume_pass_duration_seconds",
			Help:    "Duration of a full volume recomputation in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.EdgesEvaluatedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdfv_volume_edges_evaluated_total",
			Help: "Edges evaluated, by outcome (positive, non_positive, unresolved, missing)",
		},
		[]string{"outcome"},
	)

	r.PositiveVolumes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdfv_volume_positive_values",
			Help: "Number of positive volumes collected by the last pass",
		},
	)

	r.HeatmapCenter = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdfv_volume_heatmap_center",
			Help: "Center value of the current heatmap scale",
		},
	)

	r.CacheInvalidationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdfv_volume_cache_invalidations_total",
			Help: "Number of times all cached volumes were cleared",
		},
	)
}
