package metrics

import (
	"runtime"
	"time"
)

// Edge evaluation outcomes
const (
	OutcomePositive    = "positive"
	OutcomeNonPositive = "non_positive"
	OutcomeUnresolved  = "unresolved"
	OutcomeMissing     = "missing"
)

// RecordVolumePass records one full recomputation
func (r *Registry) RecordVolumePass(duration time.Duration, positive int, center float64) {
	r.VolumePassesTotal.Inc()
	r.VolumePassDuration.Observe(duration.Seconds())
	r.PositiveVolumes.Set(float64(positive))
	r.HeatmapCenter.Set(center)
}

// RecordEdgeEvaluation counts one edge evaluation outcome
func (r *Registry) RecordEdgeEvaluation(outcome string) {
	r.EdgesEvaluatedTotal.WithLabelValues(outcome).Inc()
}

// RecordRenderPass records one draw pass with its culling breakdown
func (r *Registry) RecordRenderPass(duration time.Duration, shaded int, culled map[string]int) {
	r.RenderPassesTotal.Inc()
	r.RenderPassDuration.Observe(duration.Seconds())
	r.EdgesShadedTotal.Add(float64(shaded))
	for reason, n := range culled {
		r.ElementsCulled.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordInteraction counts a click or resolution event outcome
func (r *Registry) RecordInteraction(outcome string) {
	r.InteractionsTotal.WithLabelValues(outcome).Inc()
}

// SetPending reports whether a resolution request is outstanding
func (r *Registry) SetPending(pending bool) {
	if pending {
		r.PendingRequests.Set(1)
	} else {
		r.PendingRequests.Set(0)
	}
}

// RecordCacheLookup counts an expression cache hit or miss
func (r *Registry) RecordCacheLookup(hit bool) {
	if hit {
		r.ExpressionCacheHits.Inc()
	} else {
		r.ExpressionCacheMisses.Inc()
	}
}

// RecordResolverError counts an evaluation failure
func (r *Registry) RecordResolverError(kind string) {
	r.ResolverErrorsTotal.WithLabelValues(kind).Inc()
}

// UpdateSystemMetrics refreshes uptime and goroutine gauges
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
}
