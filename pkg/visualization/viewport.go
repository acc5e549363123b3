package visualization

import (
	"math"

	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
)

// edgeHitTolerance is how far from an edge's path a click still selects it
const edgeHitTolerance = 4.0

// Viewport is a pan/zoom view over a graph drawn on a Canvas. It provides
// everything an overlay needs from its host renderer.
type Viewport struct {
	graph     *sdfg.Graph
	canvas    *Canvas
	ppp       float64
	visible   sdfg.Rect
	hasView   bool
	repaints  int
	onRepaint func()
}

// NewViewport creates a viewport with no zoom set
func NewViewport(g *sdfg.Graph, canvas *Canvas) *Viewport {
	return &Viewport{graph: g, canvas: canvas}
}

// Graph returns the displayed graph
func (v *Viewport) Graph() *sdfg.Graph { return v.graph }

// SetGraph replaces the displayed graph
func (v *Viewport) SetGraph(g *sdfg.Graph) { v.graph = g }

// PointsPerPixel returns the zoom factor, if one is set
func (v *Viewport) PointsPerPixel() (float64, bool) {
	return v.ppp, v.hasView
}

// DrawContext returns the canvas
func (v *Viewport) DrawContext() sdfg.DrawContext {
	if v.canvas == nil {
		return nil
	}
	return v.canvas
}

// VisibleRect returns the part of the graph on screen, if a view is set
func (v *Viewport) VisibleRect() (sdfg.Rect, bool) {
	return v.visible, v.hasView
}

// RequestRepaint counts the request and runs the repaint hook
func (v *Viewport) RequestRepaint() {
	v.repaints++
	if v.onRepaint != nil {
		v.onRepaint()
	}
}

// Repaints returns how many repaints were requested
func (v *Viewport) Repaints() int { return v.repaints }

// OnRepaint sets a hook run on every repaint request
func (v *Viewport) OnRepaint(fn func()) { v.onRepaint = fn }

// SetView sets the zoom and the visible area directly
func (v *Viewport) SetView(ppp float64, visible sdfg.Rect) {
	v.ppp = ppp
	v.visible = visible
	v.hasView = true
}

// Fit zooms so that bounds fills a screen of the given pixel size
func (v *Viewport) Fit(bounds sdfg.Rect, screenW, screenH float64) {
	ppp := 1.0
	if screenW > 0 && screenH > 0 {
		ppp = math.Max(bounds.W/screenW, bounds.H/screenH)
	}
	if ppp <= 0 {
		ppp = 1
	}
	v.SetView(ppp, sdfg.Rect{X: bounds.X, Y: bounds.Y, W: screenW * ppp, H: screenH * ppp})
}

// Zoom multiplies points-per-pixel by factor around the visible center
func (v *Viewport) Zoom(factor float64) {
	if !v.hasView || factor <= 0 {
		return
	}
	c := v.visible.Center()
	w, h := v.visible.W*factor, v.visible.H*factor
	v.SetView(v.ppp*factor, sdfg.Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h})
}

// Pan moves the visible area by dx, dy graph units
func (v *Viewport) Pan(dx, dy float64) {
	if !v.hasView {
		return
	}
	v.visible.X += dx
	v.visible.Y += dy
}

// HitTest returns every element under p in walk order and the foreground
// element. An edge near p wins over nodes and states; otherwise the most
// deeply nested node or state containing p is the foreground.
func (v *Viewport) HitTest(p sdfg.Point) ([]sdfg.Element, sdfg.Element) {
	hits := make([]sdfg.Element, 0)
	var edgeHit, areaHit sdfg.Element

	sdfg.Walk(v.graph, sdfg.Funcs{
		State: func(s *sdfg.State) {
			if s.Bounds.Contains(p) {
				hits = append(hits, s)
				areaHit = s
			}
		},
		Node: func(n *sdfg.Basic) {
			if n.Bounds.Contains(p) {
				hits = append(hits, n)
				areaHit = n
			}
		},
		NestedSDFG: func(n *sdfg.NestedSDFG) {
			if n.Bounds.Contains(p) {
				hits = append(hits, n)
				areaHit = n
			}
		},
		Edge: func(e *sdfg.Edge) {
			if e.Bounds.Inset(edgeHitTolerance).Contains(p) && nearPolyline(e.Points, p, edgeHitTolerance) {
				hits = append(hits, e)
				edgeHit = e
			}
		},
	})

	if edgeHit != nil {
		return hits, edgeHit
	}
	return hits, areaHit
}

func nearPolyline(points []sdfg.Point, p sdfg.Point, tolerance float64) bool {
	for i := 1; i < len(points); i++ {
		if segmentDistance(points[i-1], points[i], p) <= tolerance {
			return true
		}
	}
	return false
}

func segmentDistance(a, b, p sdfg.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := a.X+t*dx, a.Y+t*dy
	return math.Hypot(p.X-cx, p.Y-cy)
}
