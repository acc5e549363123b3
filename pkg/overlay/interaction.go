package overlay

import (
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
	"github.com/dd0wney/sdfv-volume/pkg/volume"
	"github.com/google/uuid"
)

// EventType is the kind of pointer event
type EventType string

const (
	EventClick       EventType = "click"
	EventDoubleClick EventType = "dblclick"
	EventMouseMove   EventType = "mousemove"
	EventMouseDown   EventType = "mousedown"
	EventMouseUp     EventType = "mouseup"
)

// MouseEvent is a pointer event already hit-tested by the renderer
type MouseEvent struct {
	Type     EventType
	Position sdfg.Point
	// Elements under the pointer, topmost last
	Elements []sdfg.Element
	// Foreground is the topmost element, or nil
	Foreground sdfg.Element
	// EndsDrag is set on the click that finishes a pan or drag
	EndsDrag bool
}

// InteractionState is the overlay's interactive resolution state
type InteractionState int

const (
	// Idle means no symbol prompt is outstanding
	Idle InteractionState = iota
	// AwaitingResolution means the user has been asked for symbol values
	AwaitingResolution
)

func (s InteractionState) String() string {
	if s == AwaitingResolution {
		return "awaiting_resolution"
	}
	return "idle"
}

// ResolutionRequest asks the user for the values of Missing
type ResolutionRequest struct {
	ID         uuid.UUID
	EdgeID     sdfg.EdgeID
	Expression string
	Missing    []string
}

// Prompter shows a symbol prompt. It answers later by calling Deliver on
// the overlay; it may also answer before RequestSymbols returns.
type Prompter interface {
	RequestSymbols(req ResolutionRequest)
}

// PrompterFunc adapts a function to the Prompter interface
type PrompterFunc func(req ResolutionRequest)

func (f PrompterFunc) RequestSymbols(req ResolutionRequest) { f(req) }

// ResolutionEvent is the answer to a ResolutionRequest. Implemented by
// SymbolsResolved and ResolutionCancelled.
type ResolutionEvent interface {
	requestID() uuid.UUID
}

// SymbolsResolved carries the values the user entered
type SymbolsResolved struct {
	RequestID uuid.UUID
	Values    symbolic.SymbolMap
}

// ResolutionCancelled reports that the user dismissed the prompt
type ResolutionCancelled struct {
	RequestID uuid.UUID
}

func (e SymbolsResolved) requestID() uuid.UUID     { return e.RequestID }
func (e ResolutionCancelled) requestID() uuid.UUID { return e.RequestID }

// Interaction outcomes recorded in metrics
const (
	outcomeIgnored    = "ignored"
	outcomeBusy       = "busy"
	outcomeRefreshed  = "refreshed"
	outcomePrompted   = "prompted"
	outcomeFailed     = "failed"
	outcomeNoPrompter = "no_prompter"
	outcomeResolved   = "resolved"
	outcomeCancelled  = "cancelled"
	outcomeStale      = "stale"
)

// OnMouseEvent starts interactive resolution when the user clicks an edge
// whose volume could not be computed. It never consumes the event.
func (o *VolumeOverlay) OnMouseEvent(ev MouseEvent) bool {
	if ev.Type != EventClick || ev.EndsDrag {
		return false
	}
	edge, ok := ev.Foreground.(*sdfg.Edge)
	if !ok {
		return false
	}
	if _, known := o.evaluator.Volume(edge.ID); known || !edge.HasVolume() {
		o.metrics.RecordInteraction(outcomeIgnored)
		return false
	}

	if o.state == AwaitingResolution {
		o.metrics.RecordInteraction(outcomeBusy)
		o.logger.Info("click ignored while awaiting symbol values",
			logging.EdgeID(uint64(edge.ID)),
			logging.RequestID(o.pending.ID.String()))
		return false
	}

	expr := volume.Normalize(edge.Memlet.Volume)
	res := o.resolver.ResolveInteractive(expr, o.resolver.CurrentScope())

	switch {
	case res.Ok:
		o.metrics.RecordInteraction(outcomeRefreshed)
		o.logger.Info("edge volume resolved without input",
			logging.EdgeID(uint64(edge.ID)),
			logging.Volume(res.Value))
		o.Refresh()

	case res.NeedsInput():
		if o.prompter == nil {
			o.metrics.RecordInteraction(outcomeNoPrompter)
			o.logger.Warn("symbol values needed but no prompter configured",
				logging.EdgeID(uint64(edge.ID)),
				logging.Symbols(res.Missing))
			return false
		}
		o.prompt(ResolutionRequest{
			ID:         uuid.New(),
			EdgeID:     edge.ID,
			Expression: expr,
			Missing:    res.Missing,
		})

	default:
		o.metrics.RecordInteraction(outcomeFailed)
		o.logger.Debug("edge volume cannot be resolved",
			logging.EdgeID(uint64(edge.ID)),
			logging.Expression(expr),
			logging.Error(res.Err))
	}

	return false
}

func (o *VolumeOverlay) prompt(req ResolutionRequest) {
	o.pending = &req
	o.state = AwaitingResolution
	o.metrics.SetPending(true)
	o.metrics.RecordInteraction(outcomePrompted)
	o.logger.Info("requesting symbol values",
		logging.RequestID(req.ID.String()),
		logging.EdgeID(uint64(req.EdgeID)),
		logging.Symbols(req.Missing))

	o.prompter.RequestSymbols(req)
}

// Deliver completes the outstanding resolution request. Events for any
// other request are dropped.
func (o *VolumeOverlay) Deliver(ev ResolutionEvent) {
	if o.pending == nil || ev.requestID() != o.pending.ID {
		o.metrics.RecordInteraction(outcomeStale)
		o.logger.Debug("stale resolution event dropped",
			logging.RequestID(ev.requestID().String()))
		return
	}

	switch e := ev.(type) {
	case SymbolsResolved:
		for _, name := range e.Values.Names() {
			if err := o.resolver.Define(name, e.Values[name]); err != nil {
				o.logger.Warn("rejected symbol value",
					logging.Symbol(name),
					logging.Error(err))
			}
		}
		o.finish()
		o.metrics.RecordInteraction(outcomeResolved)
		o.logger.Info("symbol values received",
			logging.RequestID(e.RequestID.String()),
			logging.Symbols(e.Values.Names()))
		o.Refresh()

	case ResolutionCancelled:
		o.finish()
		o.metrics.RecordInteraction(outcomeCancelled)
		o.logger.Info("symbol prompt cancelled", logging.RequestID(e.RequestID.String()))
	}
}

func (o *VolumeOverlay) finish() {
	o.pending = nil
	o.state = Idle
	o.metrics.SetPending(false)
}

// State returns the interactive resolution state
func (o *VolumeOverlay) State() InteractionState {
	return o.state
}

// Pending returns the outstanding request, if any
func (o *VolumeOverlay) Pending() (ResolutionRequest, bool) {
	if o.pending == nil {
		return ResolutionRequest{}, false
	}
	return *o.pending, true
}
