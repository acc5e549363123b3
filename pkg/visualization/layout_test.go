package visualization

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
)

func contains(outer, inner sdfg.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X+inner.W <= outer.X+outer.W && inner.Y+inner.H <= outer.Y+outer.H
}

func overlaps(a, b sdfg.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

type sample struct {
	graph   *sdfg.Graph
	states  []*sdfg.State
	a, b, t *sdfg.Basic
	nested  *sdfg.NestedSDFG
	edges   []*sdfg.Edge
	inner   *sdfg.Edge
}

// buildSample creates A -> T -> B plus A -> nested in the first state, a
// second empty state, and one edge inside the nested graph
func buildSample() sample {
	bld := sdfg.NewBuilder()
	g := bld.Graph("main")
	s0 := bld.State(g, "s0")
	s1 := bld.State(g, "s1")

	a := bld.Access(s0, "A")
	task := bld.Tasklet(s0, "T")
	b := bld.Access(s0, "B")
	nested := bld.Nested(s0, "inner", map[string]string{"K": "N"})

	edges := []*sdfg.Edge{
		bld.Edge(s0, a, task, sdfg.Memlet{Volume: "N"}),
		bld.Edge(s0, task, b, sdfg.Memlet{Volume: "N"}),
		bld.Edge(s0, a, nested, sdfg.Memlet{Volume: "N"}),
	}

	ns := bld.State(nested.SDFG, "inner_s0")
	x := bld.Access(ns, "X")
	y := bld.Access(ns, "Y")
	inner := bld.Edge(ns, x, y, sdfg.Memlet{Volume: "K"})

	return sample{
		graph:  g,
		states: []*sdfg.State{s0, s1},
		a:      a, b: b, t: task,
		nested: nested,
		edges:  edges,
		inner:  inner,
	}
}

func TestHierarchicalLayout_Levels(t *testing.T) {
	s := buildSample()
	layout := NewHierarchicalLayout(DefaultLayoutConfig())
	layout.Apply(s.graph)

	// A is the only root; T and the nested node are one level below
	if !(s.a.Bounds.Y < s.t.Bounds.Y) {
		t.Errorf("A (%v) should be above T (%v)", s.a.Bounds, s.t.Bounds)
	}
	if s.t.Bounds.Y != s.nested.Bounds.Y {
		t.Errorf("T and nested node should share a level: %v vs %v", s.t.Bounds, s.nested.Bounds)
	}
	if !(s.t.Bounds.Y < s.b.Bounds.Y) {
		t.Errorf("T (%v) should be above B (%v)", s.t.Bounds, s.b.Bounds)
	}
	if overlaps(s.t.Bounds, s.nested.Bounds) {
		t.Errorf("nodes of one level overlap: %v %v", s.t.Bounds, s.nested.Bounds)
	}
}

func TestHierarchicalLayout_Containment(t *testing.T) {
	s := buildSample()
	total := NewHierarchicalLayout(LayoutConfig{}).Apply(s.graph)

	s0 := s.states[0]
	for _, n := range s0.Graph.Nodes {
		if !contains(s0.Bounds, n.Header().Bounds) {
			t.Errorf("node %s %v outside state %v", n.Header().Label, n.Header().Bounds, s0.Bounds)
		}
	}

	innerState := s.nested.SDFG.States[0]
	if !contains(s.nested.Bounds, innerState.Bounds) {
		t.Errorf("nested state %v outside nested node %v", innerState.Bounds, s.nested.Bounds)
	}

	for _, st := range s.states {
		if !contains(total, st.Bounds) {
			t.Errorf("state %v outside total bounds %v", st.Bounds, total)
		}
	}
	if overlaps(s.states[0].Bounds, s.states[1].Bounds) {
		t.Error("states overlap")
	}
	if s.states[1].Bounds.W <= 0 || s.states[1].Bounds.H <= 0 {
		t.Errorf("empty state should still have a size, got %v", s.states[1].Bounds)
	}
}

func TestHierarchicalLayout_EdgeRouting(t *testing.T) {
	s := buildSample()
	NewHierarchicalLayout(DefaultLayoutConfig()).Apply(s.graph)

	for _, e := range append(s.edges, s.inner) {
		if len(e.Points) != 2 {
			t.Fatalf("edge %d: expected 2 points, got %d", e.ID, len(e.Points))
		}
		if e.Bounds != sdfg.BoundsOf(e.Points) {
			t.Errorf("edge %d bounds %v do not match its path", e.ID, e.Bounds)
		}
	}

	first := s.edges[0]
	if first.Points[0].Y != s.a.Bounds.Y+s.a.Bounds.H {
		t.Errorf("edge should leave the bottom of its source, got %v", first.Points[0])
	}
	if first.Points[1].Y != s.t.Bounds.Y {
		t.Errorf("edge should enter the top of its destination, got %v", first.Points[1])
	}
}

func TestHierarchicalLayout_SelfLoopAndCycle(t *testing.T) {
	bld := sdfg.NewBuilder()
	g := bld.Graph("cycle")
	st := bld.State(g, "s0")
	a := bld.Access(st, "A")
	b := bld.Access(st, "B")
	loop := bld.Edge(st, a, a, sdfg.Memlet{})
	bld.Edge(st, a, b, sdfg.Memlet{})
	bld.Edge(st, b, a, sdfg.Memlet{})

	NewHierarchicalLayout(DefaultLayoutConfig()).Apply(g)

	if len(loop.Points) != 3 {
		t.Fatalf("self loop should have 3 points, got %d", len(loop.Points))
	}
	if loop.Points[1].X <= a.Bounds.X+a.Bounds.W {
		t.Errorf("self loop should bulge to the right of its node")
	}
	if a.Bounds == b.Bounds {
		t.Error("nodes in a cycle must still get distinct positions")
	}
}

func TestHierarchicalLayout_EmptyGraph(t *testing.T) {
	r := NewHierarchicalLayout(DefaultLayoutConfig()).Apply(&sdfg.Graph{})
	if r.W != 0 || r.H != 0 {
		t.Errorf("expected empty bounds, got %v", r)
	}
	r = NewHierarchicalLayout(DefaultLayoutConfig()).Apply(nil)
	if r.W != 0 || r.H != 0 {
		t.Errorf("expected empty bounds for nil graph, got %v", r)
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(true)
	if !c.LOD() {
		t.Error("expected LOD enabled")
	}

	pts := []sdfg.Point{{X: 0, Y: 0}, {X: 1, Y: 2}}
	c.StrokePolyline(pts, "hsl(0,100%,50%)", 3)
	pts[0].X = 99

	strokes := c.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(strokes))
	}
	if strokes[0].Points[0].X != 0 {
		t.Error("canvas must copy stroke points")
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if !strings.Contains(buf.String(), "hsl(0,100%,50%)") {
		t.Errorf("unexpected output %q", buf.String())
	}

	c.Clear()
	if len(c.Strokes()) != 0 {
		t.Error("expected no strokes after Clear")
	}
}
