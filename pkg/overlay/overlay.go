// Package overlay paints per-edge data-movement volumes over a rendered
// SDFG as a green-to-red heatmap.
//
// The overlay does not own the graph, the canvas or the viewport; it reads
// them from a Renderer every time it refreshes or draws. Volumes are kept
// in a side table keyed by edge ID and recomputed from scratch on every
// Refresh.
package overlay

import (
	"time"

	"github.com/dd0wney/sdfv-volume/pkg/heatmap"
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/metrics"
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
	"github.com/dd0wney/sdfv-volume/pkg/volume"
)

// Type tells the host which element kinds an overlay decorates
type Type int

const (
	TypeNode Type = iota
	TypeEdge
	TypeBoth
)

func (t Type) String() string {
	switch t {
	case TypeNode:
		return "node"
	case TypeEdge:
		return "edge"
	case TypeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Layer is the lifecycle every overlay implements
type Layer interface {
	Refresh()
	Draw()
	OnMouseEvent(ev MouseEvent) bool
	Type() Type
}

// Renderer is the host view the overlay is attached to. Any accessor may
// report that its value is not available yet.
type Renderer interface {
	Graph() *sdfg.Graph
	// PointsPerPixel is the zoom factor: graph units per screen pixel
	PointsPerPixel() (float64, bool)
	DrawContext() sdfg.DrawContext
	VisibleRect() (sdfg.Rect, bool)
	RequestRepaint()
}

// SymbolResolver evaluates volume expressions and stores user-provided
// symbol values
type SymbolResolver interface {
	volume.Resolver
	ResolveInteractive(expr string, scope symbolic.SymbolMap) symbolic.Resolution
	CurrentScope() symbolic.SymbolMap
	Define(name string, value float64) error
}

// VolumeOverlay shades every edge with a known positive volume
type VolumeOverlay struct {
	renderer  Renderer
	resolver  SymbolResolver
	evaluator *volume.Evaluator
	prompter  Prompter

	lod        LOD
	heatmapCfg heatmap.Config
	scale      *heatmap.Scale
	values     []float64
	pass       volume.Pass

	state   InteractionState
	pending *ResolutionRequest

	logger  logging.Logger
	metrics *metrics.Registry
}

var _ Layer = (*VolumeOverlay)(nil)

// Option configures a VolumeOverlay
type Option func(*VolumeOverlay)

// WithPrompter sets the UI used to ask the user for missing symbols
func WithPrompter(p Prompter) Option {
	return func(o *VolumeOverlay) { o.prompter = p }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(o *VolumeOverlay) { o.logger = l }
}

// WithMetrics sets the metrics registry
func WithMetrics(m *metrics.Registry) Option {
	return func(o *VolumeOverlay) { o.metrics = m }
}

// WithLOD sets the level-of-detail thresholds
func WithLOD(lod LOD) Option {
	return func(o *VolumeOverlay) { o.lod = lod }
}

// WithHeatmap sets the severity scaling configuration
func WithHeatmap(cfg heatmap.Config) Option {
	return func(o *VolumeOverlay) { o.heatmapCfg = cfg }
}

// New attaches an overlay to renderer and computes the initial volumes
func New(renderer Renderer, resolver SymbolResolver, opts ...Option) *VolumeOverlay {
	o := &VolumeOverlay{
		renderer:   renderer,
		resolver:   resolver,
		lod:        DefaultLOD(),
		heatmapCfg: heatmap.DefaultConfig(),
		state:      Idle,
		logger:     logging.NewNopLogger(),
		metrics:    metrics.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.logger = o.logger.With(logging.Component("volume_overlay"))
	o.evaluator = volume.NewEvaluator(resolver,
		volume.WithLogger(o.logger),
		volume.WithMetrics(o.metrics))
	o.scale = heatmap.NewScale(o.heatmapCfg)
	o.values = []float64{0}

	o.Refresh()
	return o
}

// Type reports that this overlay decorates edges
func (o *VolumeOverlay) Type() Type { return TypeEdge }

// Refresh drops every cached volume, recomputes them against the
// resolver's current symbols and asks the renderer to repaint
func (o *VolumeOverlay) Refresh() {
	o.scale = heatmap.NewScale(o.heatmapCfg)

	g := o.renderer.Graph()
	if g != nil {
		o.recalculate(g)
	} else {
		o.evaluator.Table().Reset()
		o.values = []float64{0}
		o.pass = volume.Pass{Values: o.values}
	}

	o.renderer.RequestRepaint()
}

func (o *VolumeOverlay) recalculate(g *sdfg.Graph) {
	start := time.Now()

	pass := o.evaluator.Recalculate(g, o.resolver.CurrentScope())
	o.values = pass.Values
	o.pass = pass
	o.scale = heatmap.BuildScale(pass.Values, o.heatmapCfg)

	o.metrics.RecordVolumePass(time.Since(start), pass.Evaluated-pass.NonPositive, o.scale.Center())
	o.logger.Debug("heatmap scale rebuilt",
		logging.String("method", string(o.scale.Method())),
		logging.Float64("center", o.scale.Center()),
		logging.Count(len(o.values)))
}

// Draw shades the renderer's graph if the renderer can provide
// everything a draw pass needs
func (o *VolumeOverlay) Draw() {
	g := o.renderer.Graph()
	ppp, hasPPP := o.renderer.PointsPerPixel()
	ctx := o.renderer.DrawContext()
	visible, hasVisible := o.renderer.VisibleRect()
	if g == nil || !hasPPP || ctx == nil || !hasVisible {
		return
	}
	o.Render(g, ctx, ppp, visible)
}

// Volume returns the cached volume of an edge
func (o *VolumeOverlay) Volume(id sdfg.EdgeID) (float64, bool) {
	return o.evaluator.Volume(id)
}

// Severity maps a volume onto the current scale
func (o *VolumeOverlay) Severity(v float64) float64 {
	return o.scale.Severity(v)
}

// Scale returns the current severity scale
func (o *VolumeOverlay) Scale() *heatmap.Scale {
	return o.scale
}

// Values returns the volumes the current scale was built from
func (o *VolumeOverlay) Values() []float64 {
	out := make([]float64, len(o.values))
	copy(out, o.values)
	return out
}

// LastPass returns the edge counts of the most recent recomputation
func (o *VolumeOverlay) LastPass() volume.Pass {
	p := o.pass
	p.Values = o.Values()
	return p
}
