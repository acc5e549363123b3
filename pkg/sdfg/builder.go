package sdfg

// Node kinds used by Basic nodes
const (
	KindAccessNode = "AccessNode"
	KindTasklet    = "Tasklet"
	KindMapEntry   = "MapEntry"
	KindMapExit    = "MapExit"
)

// Builder constructs graph trees with IDs that are unique across all
// nesting levels. The zero value is not usable; call NewBuilder.
type Builder struct {
	nextID ElementID
}

// NewBuilder creates a builder whose first ID is 1
func NewBuilder() *Builder {
	return &Builder{nextID: 1}
}

func (b *Builder) id() ElementID {
	id := b.nextID
	b.nextID++
	return id
}

// Graph creates an empty graph
func (b *Builder) Graph(name string) *Graph {
	return &Graph{Name: name, States: make([]*State, 0)}
}

// State appends a state with an empty state graph to g
func (b *Builder) State(g *Graph, label string) *State {
	state := &State{
		ID:    b.id(),
		Label: label,
		Graph: &StateGraph{
			Nodes: make([]Node, 0),
			Edges: make([]*Edge, 0),
		},
	}
	g.States = append(g.States, state)
	return state
}

// Node appends a basic node of the given kind to the state
func (b *Builder) Node(s *State, kind, label string) *Basic {
	node := &Basic{
		NodeHeader: NodeHeader{ID: b.id(), Label: label},
		Kind:       kind,
	}
	s.Graph.Nodes = append(s.Graph.Nodes, node)
	return node
}

// Access appends an access node
func (b *Builder) Access(s *State, data string) *Basic {
	return b.Node(s, KindAccessNode, data)
}

// Tasklet appends a tasklet node
func (b *Builder) Tasklet(s *State, label string) *Basic {
	return b.Node(s, KindTasklet, label)
}

// Nested appends a nested SDFG node owning a fresh, empty graph
func (b *Builder) Nested(s *State, label string, mapping map[string]string) *NestedSDFG {
	if mapping == nil {
		mapping = make(map[string]string)
	}
	node := &NestedSDFG{
		NodeHeader:    NodeHeader{ID: b.id(), Label: label},
		SymbolMapping: mapping,
		SDFG:          b.Graph(label),
	}
	s.Graph.Nodes = append(s.Graph.Nodes, node)
	return node
}

// Edge appends an edge between two nodes of the state
func (b *Builder) Edge(s *State, src, dst Node, memlet Memlet) *Edge {
	edge := &Edge{
		ID:     b.id(),
		Src:    src.ElementID(),
		Dst:    dst.ElementID(),
		Memlet: memlet,
	}
	s.Graph.Edges = append(s.Graph.Edges, edge)
	return edge
}
