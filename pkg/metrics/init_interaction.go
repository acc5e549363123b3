package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInteractionMetrics() {
	r.InteractionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdfv_volume_interactions_total",
			Help: "Edge clicks and resolution events, by outcome",
		},
		[]string{"outcome"},
	)

	r.PendingRequests = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sdfv_volume_pending_requests",
			Help: "1 while the overlay awaits user-supplied symbol values",
		},
	)
}
