// Package sdfg models a hierarchical dataflow graph: a graph of states, each
// state owning a graph of nodes connected by data-movement edges. Nested
// SDFG nodes own a complete inner graph with its own symbol scope.
package sdfg

// ElementID identifies a state, node or edge. IDs are unique across the
// whole tree, nested graphs included.
type ElementID uint64

// EdgeID identifies an edge
type EdgeID = ElementID

// Element is implemented by every graph element. The set of
// implementations is closed: *State, *Basic, *NestedSDFG and *Edge.
type Element interface {
	ElementID() ElementID
	Intersects(r Rect) bool
	Accept(v Visitor)
	element()
}

// Node is a node of a state graph. Implemented by *Basic and *NestedSDFG.
type Node interface {
	Element
	Header() *NodeHeader
}

// Graph is a (possibly nested) SDFG: an ordered list of states
type Graph struct {
	Name   string
	States []*State
}

// State is a node of the top-level graph, optionally owning a state graph
type State struct {
	ID        ElementID
	Label     string
	Bounds    Rect
	Collapsed bool
	Graph     *StateGraph
}

// StateGraph holds the dataflow contents of a state
type StateGraph struct {
	Nodes []Node
	Edges []*Edge
}

// NodeHeader carries the fields shared by every node variant
type NodeHeader struct {
	ID        ElementID
	Label     string
	Bounds    Rect
	Collapsed bool
}

// Basic is any node that does not own a nested graph (access node,
// tasklet, map entry/exit, ...)
type Basic struct {
	NodeHeader
	Kind string
}

// NestedSDFG is a node owning an inner graph. SymbolMapping maps each inner
// symbol to an expression over the enclosing scope.
type NestedSDFG struct {
	NodeHeader
	SymbolMapping map[string]string
	SDFG          *Graph
}

// Memlet describes the data moved along an edge
type Memlet struct {
	Data    string
	Subset  string
	Volume  string // symbolic expression, empty when unknown
	Dynamic bool
}

// Edge is a data-movement edge inside a state graph
type Edge struct {
	ID     EdgeID
	Src    ElementID
	Dst    ElementID
	Memlet Memlet
	Points []Point
	Bounds Rect
}

// DrawContext is the canvas the overlay paints on
type DrawContext interface {
	// LOD reports whether level-of-detail culling is active
	LOD() bool
	StrokePolyline(points []Point, color string, lineWidth float64)
}

// EdgeShadeWidth is the stroke width used when shading an edge
const EdgeShadeWidth = 3.0

func (s *State) ElementID() ElementID   { return s.ID }
func (s *State) Intersects(r Rect) bool { return s.Bounds.Intersects(r) }
func (s *State) Accept(v Visitor)       { v.VisitState(s) }
func (*State) element()                 {}

func (h *NodeHeader) Header() *NodeHeader     { return h }
func (h *NodeHeader) ElementID() ElementID    { return h.ID }
func (h *NodeHeader) Intersects(r Rect) bool  { return h.Bounds.Intersects(r) }
func (*NodeHeader) element()                  {}
func (n *Basic) Accept(v Visitor)             { v.VisitNode(n) }
func (n *NestedSDFG) Accept(v Visitor)        { v.VisitNestedSDFG(n) }

func (e *Edge) ElementID() ElementID   { return e.ID }
func (e *Edge) Intersects(r Rect) bool { return e.Bounds.Intersects(r) }
func (e *Edge) Accept(v Visitor)       { v.VisitEdge(e) }
func (*Edge) element()                 {}

// Shade paints the edge's path with the given colour
func (e *Edge) Shade(ctx DrawContext, color string) {
	if len(e.Points) == 0 {
		return
	}
	ctx.StrokePolyline(e.Points, color, EdgeShadeWidth)
}

// HasVolume reports whether the edge carries a volume expression
func (e *Edge) HasVolume() bool {
	return e.Memlet.Volume != ""
}
