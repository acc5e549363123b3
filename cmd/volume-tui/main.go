package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/sdfv-volume/pkg/config"
	"github.com/dd0wney/sdfv-volume/pkg/heatmap"
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/metrics"
	"github.com/dd0wney/sdfv-volume/pkg/overlay"
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
	"github.com/dd0wney/sdfv-volume/pkg/visualization"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2)

	promptBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(0, 1).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Click   key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Click: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "resolve edge / submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel prompt"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Cancel, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.Cancel, k.Refresh},
		{k.Up, k.Down, k.ZoomIn, k.ZoomOut},
		{k.Quit},
	}
}

// symbolPrompt collects values for one resolution request, one symbol at
// a time. It is shared by pointer so that the overlay can open it from
// inside Update.
type symbolPrompt struct {
	req    overlay.ResolutionRequest
	active bool
	next   int
	values symbolic.SymbolMap
}

func (p *symbolPrompt) RequestSymbols(req overlay.ResolutionRequest) {
	p.req = req
	p.active = true
	p.next = 0
	p.values = make(symbolic.SymbolMap, len(req.Missing))
}

func (p *symbolPrompt) current() string {
	return p.req.Missing[p.next]
}

func (p *symbolPrompt) done() bool {
	return p.next >= len(p.req.Missing)
}

type model struct {
	graph    *sdfg.Graph
	edges    map[sdfg.EdgeID]*sdfg.Edge
	overlay  *overlay.VolumeOverlay
	viewport *visualization.Viewport
	canvas   *visualization.Canvas
	prompt   *symbolPrompt

	edgeTable  table.Model
	input      textinput.Model
	help       help.Model
	keys       keyMap
	message    string
	messageErr bool
}

func initialModel(g *sdfg.Graph, ov *overlay.VolumeOverlay, vp *visualization.Viewport, canvas *visualization.Canvas, prompt *symbolPrompt) model {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 32
	ti.Width = 20

	columns := []table.Column{
		{Title: "Edge", Width: 6},
		{Title: "Data", Width: 8},
		{Title: "Volume", Width: 16},
		{Title: "Value", Width: 12},
		{Title: "Severity", Width: 9},
		{Title: "Color", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	edges := make(map[sdfg.EdgeID]*sdfg.Edge)
	sdfg.Walk(g, sdfg.Funcs{Edge: func(e *sdfg.Edge) { edges[e.ID] = e }})

	m := model{
		graph:     g,
		edges:     edges,
		overlay:   ov,
		viewport:  vp,
		canvas:    canvas,
		prompt:    prompt,
		edgeTable: t,
		input:     ti,
		help:      help.New(),
		keys:      keys,
	}
	m.updateEdgeTable()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.prompt.active {
			return m.updatePrompt(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Click):
			m.clickSelected()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.overlay.Refresh()
			m.setMessage("Volumes recomputed", false)
			m.updateEdgeTable()
			return m, nil

		case key.Matches(msg, m.keys.ZoomIn):
			m.viewport.Zoom(0.5)
			m.redraw()
			return m, nil

		case key.Matches(msg, m.keys.ZoomOut):
			m.viewport.Zoom(2)
			m.redraw()
			return m, nil
		}
	}

	m.edgeTable, cmd = m.edgeTable.Update(msg)
	return m, cmd
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompt.active = false
		m.input.Blur()
		m.overlay.Deliver(overlay.ResolutionCancelled{RequestID: m.prompt.req.ID})
		m.setMessage("Prompt cancelled", false)
		return m, nil

	case key.Matches(msg, m.keys.Click):
		raw := strings.TrimSpace(m.input.Value())
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			m.setMessage(fmt.Sprintf("%q is not a number", raw), true)
			return m, nil
		}
		m.prompt.values[m.prompt.current()] = value
		m.prompt.next++
		m.input.SetValue("")

		if m.prompt.done() {
			m.prompt.active = false
			m.input.Blur()
			m.overlay.Deliver(overlay.SymbolsResolved{
				RequestID: m.prompt.req.ID,
				Values:    m.prompt.values,
			})
			m.setMessage(fmt.Sprintf("Defined %s", strings.Join(m.prompt.values.Names(), ", ")), false)
			m.updateEdgeTable()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// clickSelected sends a click on the selected edge to the overlay
func (m *model) clickSelected() {
	row := m.edgeTable.SelectedRow()
	if row == nil {
		return
	}
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return
	}
	edge, ok := m.edges[sdfg.EdgeID(id)]
	if !ok {
		return
	}

	pos := edge.Bounds.Center()
	if len(edge.Points) > 1 {
		a, b := edge.Points[0], edge.Points[1]
		pos = sdfg.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	}
	hits, _ := m.viewport.HitTest(pos)

	m.overlay.OnMouseEvent(overlay.MouseEvent{
		Type:       overlay.EventClick,
		Position:   pos,
		Elements:   hits,
		Foreground: edge,
	})

	switch {
	case m.prompt.active:
		m.input.SetValue("")
		m.input.Focus()
		m.setMessage(fmt.Sprintf("Edge %d needs %s", edge.ID, strings.Join(m.prompt.req.Missing, ", ")), false)
	default:
		if _, known := m.overlay.Volume(edge.ID); known {
			m.setMessage(fmt.Sprintf("Edge %d has a volume", edge.ID), false)
		} else {
			m.setMessage(fmt.Sprintf("Edge %d cannot be resolved", edge.ID), true)
		}
	}
	m.updateEdgeTable()
}

func (m *model) redraw() {
	m.canvas.Clear()
	m.overlay.Draw()
}

func (m *model) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

func (m *model) updateEdgeTable() {
	rows := make([]table.Row, 0, len(m.edges))

	sdfg.Walk(m.graph, sdfg.Funcs{Edge: func(e *sdfg.Edge) {
		expr := e.Memlet.Volume
		if expr == "" {
			expr = "-"
		}
		row := table.Row{strconv.FormatUint(uint64(e.ID), 10), e.Memlet.Data, expr, "?", "-", ""}
		if v, ok := m.overlay.Volume(e.ID); ok {
			sev := m.overlay.Severity(v)
			row[3] = strconv.FormatFloat(v, 'g', 6, 64)
			row[4] = strconv.FormatFloat(sev, 'f', 3, 64)
			row[5] = heatmap.TemperatureColor(sev).HSL()
		}
		rows = append(rows, row)
	}})

	m.edgeTable.SetRows(rows)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Memory volume overlay: " + m.graph.Name))
	b.WriteString("\n")

	scale := m.overlay.Scale()
	ppp, _ := m.viewport.PointsPerPixel()
	b.WriteString(statsStyle.Render(fmt.Sprintf("method %s  center %.4g  values %d  ppp %.3g  shaded %d  state %s",
		scale.Method(), scale.Center(), len(m.overlay.Values()), ppp, len(m.canvas.Strokes()), m.overlay.State())))
	b.WriteString("\n\n")
	b.WriteString(m.edgeTable.View())
	b.WriteString("\n")

	if m.prompt.active && !m.prompt.done() {
		label := fmt.Sprintf("%s = (%d of %d, %s)", m.prompt.current(), m.prompt.next+1, len(m.prompt.req.Missing), m.prompt.req.Expression)
		b.WriteString(promptBoxStyle.Render(label + "\n" + m.input.View()))
		b.WriteString("\n")
	}

	if m.message != "" {
		if m.messageErr {
			b.WriteString("  " + errorStyle.Render(m.message))
		} else {
			b.WriteString("  " + successStyle.Render(m.message))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	logPath := flag.String("log", "", "Write logs to this file (discarded by default)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	logger := logging.NewNopLogger()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = logging.NewJSONLogger(f, cfg.LogLevel())
	}
	reg := metrics.DefaultRegistry()

	resolver, err := symbolic.NewResolver(
		symbolic.WithCacheSize(cfg.Resolver.CacheSize),
		symbolic.WithLogger(logger),
		symbolic.WithMetrics(reg),
		symbolic.WithSymbols(cfg.SymbolMap()),
	)
	if err != nil {
		log.Fatalf("Failed to create resolver: %v", err)
	}

	g := sdfg.DemoGraph()
	bounds := visualization.NewHierarchicalLayout(visualization.DefaultLayoutConfig()).Apply(g)
	canvas := visualization.NewCanvas(true)
	viewport := visualization.NewViewport(g, canvas)
	viewport.Fit(bounds, 1200, 800)

	prompt := &symbolPrompt{}
	var ov *overlay.VolumeOverlay
	viewport.OnRepaint(func() {
		if ov != nil {
			canvas.Clear()
			ov.Draw()
		}
	})
	ov = overlay.New(viewport, resolver,
		overlay.WithPrompter(prompt),
		overlay.WithLogger(logger),
		overlay.WithMetrics(reg),
		overlay.WithLOD(cfg.LOD),
		overlay.WithHeatmap(cfg.Heatmap),
	)
	ov.Draw()

	p := tea.NewProgram(initialModel(g, ov, viewport, canvas, prompt), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
