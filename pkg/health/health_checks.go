package health

import (
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
	"github.com/dd0wney/sdfv-volume/pkg/volume"
)

// GraphCheck is unhealthy while no graph is loaded
func GraphCheck(graph func() *sdfg.Graph) CheckFunc {
	return func() Check {
		check := Check{Name: "graph", Details: make(map[string]any)}

		g := graph()
		if g == nil {
			check.Status = StatusUnhealthy
			check.Message = "No graph loaded"
			return check
		}

		stats := sdfg.Stats(g)
		check.Details["states"] = stats.States
		check.Details["edges"] = stats.Edges
		check.Details["max_depth"] = stats.MaxDepth
		check.Status = StatusHealthy
		check.Message = "Graph loaded"
		return check
	}
}

// VolumeCheck reports the last recomputation. It is degraded while edges
// with a volume expression cannot be evaluated.
func VolumeCheck(lastPass func() volume.Pass) CheckFunc {
	return func() Check {
		check := Check{Name: "volumes", Details: make(map[string]any)}

		pass := lastPass()
		check.Details["evaluated"] = pass.Evaluated
		check.Details["unresolved"] = pass.Unresolved
		check.Details["non_positive"] = pass.NonPositive
		check.Details["without_volume"] = pass.Missing

		if pass.Unresolved > 0 {
			check.Status = StatusDegraded
			check.Message = "Some edge volumes need symbol values"
		} else {
			check.Status = StatusHealthy
			check.Message = "All edge volumes resolved"
		}
		return check
	}
}

// PromptCheck is degraded while a symbol prompt is outstanding
func PromptCheck(pending func() (requestID string, ok bool)) CheckFunc {
	return func() Check {
		check := Check{Name: "prompt", Details: make(map[string]any)}

		if id, ok := pending(); ok {
			check.Details["request_id"] = id
			check.Status = StatusDegraded
			check.Message = "Waiting for symbol values"
			return check
		}
		check.Status = StatusHealthy
		check.Message = "Idle"
		return check
	}
}

// MemoryCheck is degraded when the heap uses more than 90% of memory
// obtained from the OS
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{Name: "memory", Details: make(map[string]any)}

		alloc, sys := getUsage()
		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys > 0 && float64(alloc)/float64(sys)*100 > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}
		return check
	}
}
