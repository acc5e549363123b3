// Package volume derives the data-movement volume of every edge in a
// nested SDFG from its symbolic memlet expression.
//
// Symbols flow downwards: each nested graph sees the values produced by
// its node's symbol mapping, with every symbol of the enclosing scope that
// the mapping does not name inherited unchanged.
package volume

import (
	"sort"
	"strings"

	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/metrics"
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
)

// Resolver evaluates an expression without user interaction
type Resolver interface {
	Resolve(expr string, scope symbolic.SymbolMap) (float64, bool)
}

// Normalize rewrites the Python spellings the resolver grammar does not
// accept: "**" becomes "^" and "ceiling" becomes "ceil". Replacement is
// literal, so any identifier containing "ceiling" is rewritten as well.
func Normalize(expr string) string {
	expr = strings.ReplaceAll(expr, "**", "^")
	return strings.ReplaceAll(expr, "ceiling", "ceil")
}

// Pass summarises one full recomputation
type Pass struct {
	// Values holds the positive volumes in visitation order; never empty
	// after Recalculate.
	Values      []float64
	Evaluated   int
	Unresolved  int
	Missing     int
	NonPositive int
}

// Evaluator computes and caches edge volumes
type Evaluator struct {
	resolver Resolver
	table    *Table
	logger   logging.Logger
	metrics  *metrics.Registry
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithMetrics sets the metrics registry
func WithMetrics(m *metrics.Registry) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// NewEvaluator creates an evaluator with an empty volume table
func NewEvaluator(resolver Resolver, opts ...Option) *Evaluator {
	e := &Evaluator{
		resolver: resolver,
		table:    NewTable(),
		logger:   logging.NewNopLogger(),
		metrics:  metrics.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logging.Component("volume"))
	return e
}

// Table exposes the volume side table
func (e *Evaluator) Table() *Table {
	return e.table
}

// Volume returns the cached volume of an edge
func (e *Evaluator) Volume(id sdfg.EdgeID) (float64, bool) {
	return e.table.Lookup(id)
}

// ClearCachedVolumes forgets the volume of every edge in g, at any depth
func (e *Evaluator) ClearCachedVolumes(g *sdfg.Graph) {
	cleared := 0
	sdfg.Walk(g, sdfg.Funcs{Edge: func(edge *sdfg.Edge) {
		if e.table.Forget(edge.ID) {
			cleared++
		}
	}})

	e.metrics.CacheInvalidationsTotal.Inc()
	e.logger.Debug("cached volumes cleared", logging.Count(cleared))
}

// ComputeEdgeVolume evaluates the edge's volume expression in scope and
// caches the result. ok is false when the edge has no expression or the
// expression cannot be evaluated; the edge is then left without a volume.
func (e *Evaluator) ComputeEdgeVolume(edge *sdfg.Edge, scope symbolic.SymbolMap) (float64, bool) {
	v, ok, _ := e.computeEdge(edge, scope)
	return v, ok
}

func (e *Evaluator) computeEdge(edge *sdfg.Edge, scope symbolic.SymbolMap) (float64, bool, string) {
	if !edge.HasVolume() {
		e.table.Forget(edge.ID)
		e.metrics.RecordEdgeEvaluation(metrics.OutcomeMissing)
		return 0, false, metrics.OutcomeMissing
	}

	expr := Normalize(edge.Memlet.Volume)
	v, ok := e.resolver.Resolve(expr, scope)
	if !ok {
		e.table.Forget(edge.ID)
		e.metrics.RecordEdgeEvaluation(metrics.OutcomeUnresolved)
		e.logger.Debug("edge volume unresolved",
			logging.EdgeID(uint64(edge.ID)),
			logging.Expression(expr))
		return 0, false, metrics.OutcomeUnresolved
	}

	e.table.Store(edge.ID, v)
	outcome := metrics.OutcomePositive
	if v <= 0 {
		outcome = metrics.OutcomeNonPositive
	}
	e.metrics.RecordEdgeEvaluation(outcome)
	return v, true, outcome
}

// ComputeGraphVolumes evaluates every edge of g and of all nested graphs
// below it, and returns the positive volumes in visitation order.
func (e *Evaluator) ComputeGraphVolumes(g *sdfg.Graph, scope symbolic.SymbolMap) []float64 {
	pass := &Pass{Values: make([]float64, 0)}
	e.computeGraph(g, scope, pass)
	return pass.Values
}

func (e *Evaluator) computeGraph(g *sdfg.Graph, scope symbolic.SymbolMap, pass *Pass) {
	if g == nil {
		return
	}

	for _, state := range g.States {
		if state.Graph == nil {
			continue
		}

		for _, edge := range state.Graph.Edges {
			v, _, outcome := e.computeEdge(edge, scope)
			pass.record(v, outcome)
		}

		for _, node := range state.Graph.Nodes {
			nested, ok := node.(*sdfg.NestedSDFG)
			if !ok {
				continue
			}
			e.computeGraph(nested.SDFG, e.NestedScope(nested, scope), pass)
		}
	}
}

func (p *Pass) record(v float64, outcome string) {
	switch outcome {
	case metrics.OutcomePositive:
		p.Evaluated++
		p.Values = append(p.Values, v)
	case metrics.OutcomeNonPositive:
		p.Evaluated++
		p.NonPositive++
	case metrics.OutcomeUnresolved:
		p.Unresolved++
	case metrics.OutcomeMissing:
		p.Missing++
	}
}

// NestedScope builds the scope seen inside a nested graph. Each mapping
// entry is evaluated against scope; an entry that cannot be evaluated is
// declared Undefined and still hides the outer value of that symbol.
func (e *Evaluator) NestedScope(node *sdfg.NestedSDFG, scope symbolic.SymbolMap) symbolic.SymbolMap {
	names := make([]string, 0, len(node.SymbolMapping))
	for name := range node.SymbolMapping {
		names = append(names, name)
	}
	sort.Strings(names)

	child := make(symbolic.SymbolMap, len(names)+len(scope))
	for _, name := range names {
		expr := Normalize(node.SymbolMapping[name])
		if v, ok := e.resolver.Resolve(expr, scope); ok {
			child[name] = v
			continue
		}
		child[name] = symbolic.Undefined
		e.logger.Debug("symbol mapping unresolved",
			logging.Symbol(name),
			logging.Expression(expr),
			logging.Uint64("node_id", uint64(node.ID)))
	}

	return child.Merge(scope)
}

// Recalculate recomputes every volume of g from scratch. The returned
// Values hold a single 0 when no edge has a positive volume.
func (e *Evaluator) Recalculate(g *sdfg.Graph, scope symbolic.SymbolMap) Pass {
	timer := logging.StartTimer(e.logger, "volume pass", logging.String("graph", graphName(g)))

	e.ClearCachedVolumes(g)
	pass := Pass{Values: make([]float64, 0)}
	e.computeGraph(g, scope, &pass)

	positive := len(pass.Values)
	if positive == 0 {
		pass.Values = append(pass.Values, 0)
	}

	timer.End(
		logging.Int("evaluated", pass.Evaluated),
		logging.Int("positive", positive),
		logging.Int("unresolved", pass.Unresolved),
		logging.Int("missing", pass.Missing))
	return pass
}

func graphName(g *sdfg.Graph) string {
	if g == nil {
		return ""
	}
	return g.Name
}
