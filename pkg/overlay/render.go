package overlay

import (
	"time"

	"github.com/dd0wney/sdfv-volume/pkg/heatmap"
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
)

// Default level-of-detail thresholds
const (
	DefaultStateLOD = 5.0
	DefaultNodeLOD  = 5.0
)

// LOD holds the zoom thresholds below which contents are not drawn.
// They must match the host renderer's so the overlay never paints
// elements the renderer skipped.
type LOD struct {
	// StateLOD culls a state when PointsPerPixel reaches it, or when the
	// state is narrower than this many pixels on screen
	StateLOD float64 `yaml:"state" validate:"gt=0"`
	// NodeLOD stops descending into node contents when PointsPerPixel
	// reaches it
	NodeLOD float64 `yaml:"node" validate:"gt=0"`
}

// DefaultLOD returns the default thresholds
func DefaultLOD() LOD {
	return LOD{StateLOD: DefaultStateLOD, NodeLOD: DefaultNodeLOD}
}

// Reasons an element was skipped during a render pass
const (
	CullStateLOD       = "state_lod"
	CullStateOffscreen = "state_offscreen"
	CullCollapsed      = "collapsed"
	CullNodeOffscreen  = "node_offscreen"
	CullNodeLOD        = "node_lod"
	CullEdgeOffscreen  = "edge_offscreen"
)

// RenderStats summarises one render pass
type RenderStats struct {
	Shaded int
	Culled map[string]int
}

func (s *RenderStats) cull(reason string) {
	s.Culled[reason]++
}

// CulledTotal returns the number of skipped elements
func (s RenderStats) CulledTotal() int {
	total := 0
	for _, n := range s.Culled {
		total += n
	}
	return total
}

// Render shades g with the same visibility culling the host renderer
// applies. ppp is graph units per screen pixel; visible is the viewport in
// graph coordinates.
func (o *VolumeOverlay) Render(g *sdfg.Graph, ctx sdfg.DrawContext, ppp float64, visible sdfg.Rect) RenderStats {
	start := time.Now()
	stats := RenderStats{Culled: make(map[string]int)}

	o.renderGraph(g, ctx, ppp, visible, &stats)

	elapsed := time.Since(start)
	o.metrics.RecordRenderPass(elapsed, stats.Shaded, stats.Culled)
	o.logger.Debug("overlay drawn",
		logging.Int("shaded", stats.Shaded),
		logging.Int("culled", stats.CulledTotal()),
		logging.Float64("ppp", ppp),
		logging.Latency(elapsed))
	return stats
}

func (o *VolumeOverlay) renderGraph(g *sdfg.Graph, ctx sdfg.DrawContext, ppp float64, visible sdfg.Rect, stats *RenderStats) {
	if g == nil {
		return
	}
	lod := ctx.LOD()

	for _, state := range g.States {
		if lod && (ppp >= o.lod.StateLOD || state.Bounds.W/ppp < o.lod.StateLOD) {
			stats.cull(CullStateLOD)
			continue
		}
		if lod && !state.Intersects(visible) {
			stats.cull(CullStateOffscreen)
			continue
		}
		if state.Graph == nil {
			continue
		}
		if state.Collapsed {
			stats.cull(CullCollapsed)
			continue
		}

		for _, node := range state.Graph.Nodes {
			if lod && !node.Intersects(visible) {
				stats.cull(CullNodeOffscreen)
				continue
			}
			if node.Header().Collapsed {
				stats.cull(CullCollapsed)
				continue
			}
			if lod && ppp >= o.lod.NodeLOD {
				stats.cull(CullNodeLOD)
				continue
			}
			if nested, ok := node.(*sdfg.NestedSDFG); ok {
				o.renderGraph(nested.SDFG, ctx, ppp, visible, stats)
			}
		}

		for _, edge := range state.Graph.Edges {
			if lod && !edge.Intersects(visible) {
				stats.cull(CullEdgeOffscreen)
				continue
			}
			if o.ShadeEdge(edge, ctx) {
				stats.Shaded++
			}
		}
	}
}

// ShadeEdge paints edge in its severity colour. Edges without a known
// positive volume are left alone; the return value reports whether the
// edge was painted.
func (o *VolumeOverlay) ShadeEdge(edge *sdfg.Edge, ctx sdfg.DrawContext) bool {
	v, ok := o.evaluator.Volume(edge.ID)
	if !ok || v <= 0 {
		return false
	}
	edge.Shade(ctx, heatmap.TemperatureColor(o.scale.Severity(v)).HSL())
	return true
}
