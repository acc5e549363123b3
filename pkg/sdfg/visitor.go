package sdfg

// Visitor has one method per element variant
type Visitor interface {
	VisitState(s *State)
	VisitNode(n *Basic)
	VisitNestedSDFG(n *NestedSDFG)
	VisitEdge(e *Edge)
}

// Funcs adapts optional callbacks to the Visitor interface. Nil callbacks
// are skipped.
type Funcs struct {
	State      func(s *State)
	Node       func(n *Basic)
	NestedSDFG func(n *NestedSDFG)
	Edge       func(e *Edge)
}

func (f Funcs) VisitState(s *State) {
	if f.State != nil {
		f.State(s)
	}
}

func (f Funcs) VisitNode(n *Basic) {
	if f.Node != nil {
		f.Node(n)
	}
}

func (f Funcs) VisitNestedSDFG(n *NestedSDFG) {
	if f.NestedSDFG != nil {
		f.NestedSDFG(n)
	}
}

func (f Funcs) VisitEdge(e *Edge) {
	if f.Edge != nil {
		f.Edge(e)
	}
}

// Walk visits every element of g depth-first in native order: each state,
// then its edges, then its nodes. A nested graph is walked right after its
// owning node is visited.
func Walk(g *Graph, v Visitor) {
	if g == nil {
		return
	}

	for _, state := range g.States {
		state.Accept(v)
		if state.Graph == nil {
			continue
		}

		for _, edge := range state.Graph.Edges {
			edge.Accept(v)
		}

		for _, node := range state.Graph.Nodes {
			node.Accept(v)
			if nested, ok := node.(*NestedSDFG); ok {
				Walk(nested.SDFG, v)
			}
		}
	}
}

// Edges returns every edge of the tree in Walk order
func Edges(g *Graph) []*Edge {
	edges := make([]*Edge, 0)
	Walk(g, Funcs{Edge: func(e *Edge) {
		edges = append(edges, e)
	}})
	return edges
}

// FindEdge returns the edge with the given ID, or nil
func FindEdge(g *Graph, id EdgeID) *Edge {
	for _, e := range Edges(g) {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Statistics summarises the size of a graph tree
type Statistics struct {
	States      int
	Nodes       int
	NestedSDFGs int
	Edges       int
	MaxDepth    int
}

// Stats counts the elements of the whole tree
func Stats(g *Graph) Statistics {
	var stats Statistics
	collectStats(g, 1, &stats)
	return stats
}

func collectStats(g *Graph, depth int, stats *Statistics) {
	if g == nil {
		return
	}
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, state := range g.States {
		stats.States++
		if state.Graph == nil {
			continue
		}
		stats.Edges += len(state.Graph.Edges)
		for _, node := range state.Graph.Nodes {
			stats.Nodes++
			if nested, ok := node.(*NestedSDFG); ok {
				stats.NestedSDFGs++
				collectStats(nested.SDFG, depth+1, stats)
			}
		}
	}
}
