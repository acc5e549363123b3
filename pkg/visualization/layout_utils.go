package visualization

import "github.com/dd0wney/sdfv-volume/pkg/sdfg"

// routeEdges gives each edge a polyline from the bottom of its source to
// the top of its destination. Self loops bulge out to the right by loop.
func routeEdges(sg *sdfg.StateGraph, loop float64) {
	bounds := make(map[sdfg.ElementID]sdfg.Rect, len(sg.Nodes))
	for _, n := range sg.Nodes {
		bounds[n.ElementID()] = n.Header().Bounds
	}

	for _, e := range sg.Edges {
		src, okSrc := bounds[e.Src]
		dst, okDst := bounds[e.Dst]
		if !okSrc || !okDst {
			e.Points = nil
			e.Bounds = sdfg.Rect{}
			continue
		}

		if e.Src == e.Dst {
			right := src.X + src.W
			e.Points = []sdfg.Point{
				{X: right, Y: src.Y + src.H/3},
				{X: right + loop, Y: src.Y + src.H/2},
				{X: right, Y: src.Y + 2*src.H/3},
			}
		} else {
			e.Points = []sdfg.Point{
				{X: src.X + src.W/2, Y: src.Y + src.H},
				{X: dst.X + dst.W/2, Y: dst.Y},
			}
		}
		e.Bounds = sdfg.BoundsOf(e.Points)
	}
}
