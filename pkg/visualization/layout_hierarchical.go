package visualization

import (
	"math"

	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
)

// HierarchicalLayout arranges the nodes of each state in levels by
// dataflow depth. States are stacked top to bottom and a nested SDFG node
// is sized to contain its laid out inner graph.
type HierarchicalLayout struct {
	config LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout. Zero sizes are
// replaced by their defaults.
func NewHierarchicalLayout(config LayoutConfig) *HierarchicalLayout {
	def := DefaultLayoutConfig()
	if config.NodeWidth <= 0 {
		config.NodeWidth = def.NodeWidth
	}
	if config.NodeHeight <= 0 {
		config.NodeHeight = def.NodeHeight
	}
	if config.NodeGap <= 0 {
		config.NodeGap = def.NodeGap
	}
	if config.LevelGap <= 0 {
		config.LevelGap = def.LevelGap
	}
	if config.Padding <= 0 {
		config.Padding = def.Padding
	}
	if config.StateGap <= 0 {
		config.StateGap = def.StateGap
	}
	return &HierarchicalLayout{config: config}
}

// Apply lays out g with its top-left corner at the origin
func (hl *HierarchicalLayout) Apply(g *sdfg.Graph) sdfg.Rect {
	return hl.layoutGraph(g, sdfg.Point{})
}

func (hl *HierarchicalLayout) layoutGraph(g *sdfg.Graph, origin sdfg.Point) sdfg.Rect {
	if g == nil || len(g.States) == 0 {
		return sdfg.Rect{X: origin.X, Y: origin.Y}
	}

	y := origin.Y
	var bounds sdfg.Rect
	for i, state := range g.States {
		r := hl.layoutState(state, sdfg.Point{X: origin.X, Y: y})
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
		y = r.Y + r.H + hl.config.StateGap
	}
	return bounds
}

func (hl *HierarchicalLayout) layoutState(state *sdfg.State, origin sdfg.Point) sdfg.Rect {
	pad := hl.config.Padding
	state.Bounds = sdfg.Rect{
		X: origin.X,
		Y: origin.Y,
		W: hl.config.NodeWidth + 2*pad,
		H: hl.config.NodeHeight + 2*pad,
	}
	if state.Graph == nil || len(state.Graph.Nodes) == 0 {
		return state.Bounds
	}

	content := sdfg.Rect{X: origin.X + pad, Y: origin.Y + pad}
	y := content.Y
	for i, level := range buildLevels(state.Graph) {
		x := content.X
		rowHeight := 0.0
		for j, node := range level {
			r := hl.placeNode(node, sdfg.Point{X: x, Y: y})
			if i == 0 && j == 0 {
				content = r
			} else {
				content = content.Union(r)
			}
			x += r.W + hl.config.NodeGap
			rowHeight = math.Max(rowHeight, r.H)
		}
		y += rowHeight + hl.config.LevelGap
	}

	routeEdges(state.Graph, hl.config.NodeGap/2)

	state.Bounds = sdfg.Rect{
		X: origin.X,
		Y: origin.Y,
		W: content.X + content.W + pad - origin.X,
		H: content.Y + content.H + pad - origin.Y,
	}
	return state.Bounds
}

func (hl *HierarchicalLayout) placeNode(node sdfg.Node, at sdfg.Point) sdfg.Rect {
	r := sdfg.Rect{X: at.X, Y: at.Y, W: hl.config.NodeWidth, H: hl.config.NodeHeight}

	if nested, ok := node.(*sdfg.NestedSDFG); ok && nested.SDFG != nil && len(nested.SDFG.States) > 0 {
		pad := hl.config.Padding
		inner := hl.layoutGraph(nested.SDFG, sdfg.Point{X: at.X + pad, Y: at.Y + pad})
		r.W = math.Max(r.W, inner.W+2*pad)
		r.H = math.Max(r.H, inner.H+2*pad)
	}

	node.Header().Bounds = r
	return r
}

// buildLevels groups nodes by BFS depth from the nodes without incoming
// edges. Nodes unreachable from any root go to the last level.
func buildLevels(sg *sdfg.StateGraph) [][]sdfg.Node {
	byID := make(map[sdfg.ElementID]sdfg.Node, len(sg.Nodes))
	incoming := make(map[sdfg.ElementID]int, len(sg.Nodes))
	outgoing := make(map[sdfg.ElementID][]sdfg.ElementID, len(sg.Nodes))
	for _, n := range sg.Nodes {
		byID[n.ElementID()] = n
	}
	for _, e := range sg.Edges {
		if e.Src == e.Dst {
			continue
		}
		incoming[e.Dst]++
		outgoing[e.Src] = append(outgoing[e.Src], e.Dst)
	}

	roots := make([]sdfg.Node, 0)
	for _, n := range sg.Nodes {
		if incoming[n.ElementID()] == 0 {
			roots = append(roots, n)
		}
	}
	if len(roots) == 0 {
		// No clear root, use first node
		roots = []sdfg.Node{sg.Nodes[0]}
	}

	levels := make([][]sdfg.Node, 0)
	visited := make(map[sdfg.ElementID]bool, len(sg.Nodes))
	for _, r := range roots {
		visited[r.ElementID()] = true
	}
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]sdfg.Node, 0)

		for _, n := range currentLevel {
			for _, dst := range outgoing[n.ElementID()] {
				next, ok := byID[dst]
				if !ok || visited[dst] {
					continue
				}
				visited[dst] = true
				nextLevel = append(nextLevel, next)
			}
		}

		currentLevel = nextLevel
	}

	for _, n := range sg.Nodes {
		if !visited[n.ElementID()] {
			levels[len(levels)-1] = append(levels[len(levels)-1], n)
		}
	}

	return levels
}
