package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRenderMetrics() {
	r.RenderPassesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdfv_volume_render_passes_total",
			Help: "Total number of overlay draw passes",
		},
	)

	r.EdgesShadedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sdfv_volume_edges_shaded_total",
			Help: "Total number of edges painted by the overlay",
		},
	)

	r.ElementsCulled = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdfv_volume_elements_culled_total",
			Help: "Elements skipped during rendering, by reason",
		},
		[]string{"reason"},
	)

	r.RenderPassDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sdfv_volume_render_duration_seconds",
			Help:    "Duration of an overlay draw pass in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.016, 0.05, 0.1},
		},
	)
}
