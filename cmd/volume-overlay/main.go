package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/sdfv-volume/pkg/config"
	"github.com/dd0wney/sdfv-volume/pkg/health"
	"github.com/dd0wney/sdfv-volume/pkg/heatmap"
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/metrics"
	"github.com/dd0wney/sdfv-volume/pkg/overlay"
	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
	"github.com/dd0wney/sdfv-volume/pkg/visualization"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	symbols := flag.String("symbols", "", "Symbol values, e.g. N=64,M=8")
	width := flag.Float64("width", 1200, "Screen width in pixels")
	height := flag.Float64("height", 800, "Screen height in pixels")
	zoom := flag.Float64("zoom", 1, "Zoom factor applied after fitting (>1 zooms out)")
	strokes := flag.Bool("strokes", false, "Print the draw commands")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *symbols != "" {
		extra, err := config.ParseSymbols(*symbols)
		if err != nil {
			log.Fatalf("Invalid -symbols: %v", err)
		}
		for name, value := range extra {
			cfg.Symbols[name] = value
		}
	}

	logger := logging.NewStderrLogger(cfg.LogLevel())
	logging.SetDefaultLogger(logger)
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
	viewport.Fit(bounds, *width, *height)
	viewport.Zoom(*zoom)

	ov := overlay.New(viewport, resolver,
		overlay.WithLogger(logger),
		overlay.WithMetrics(reg),
		overlay.WithLOD(cfg.LOD),
		overlay.WithHeatmap(cfg.Heatmap),
	)
	ov.Draw()

	printReport(os.Stdout, g, ov, viewport, canvas)
	if *strokes {
		if _, err := canvas.WriteTo(os.Stdout); err != nil {
			log.Fatalf("Failed to write strokes: %v", err)
		}
	}

	if cfg.Metrics.Addr != "" {
		serve(cfg.Metrics.Addr, reg, newChecker(viewport, ov), logger)
	}
}

func newChecker(vp *visualization.Viewport, ov *overlay.VolumeOverlay) *health.Checker {
	checker := health.NewChecker()
	checker.Register("graph", health.GraphCheck(vp.Graph))
	checker.Register("volumes", health.VolumeCheck(ov.LastPass))
	checker.Register("memory", health.MemoryCheck(func() (uint64, uint64) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, m.Sys
	}))
	checker.RegisterReadiness("graph", health.GraphCheck(vp.Graph))
	checker.RegisterReadiness("prompt", health.PromptCheck(func() (string, bool) {
		req, ok := ov.Pending()
		return req.ID.String(), ok
	}))
	return checker
}

func printReport(w io.Writer, g *sdfg.Graph, ov *overlay.VolumeOverlay, vp *visualization.Viewport, canvas *visualization.Canvas) {
	stats := sdfg.Stats(g)
	ppp, _ := vp.PointsPerPixel()
	scale := ov.Scale()

	fmt.Fprintln(w, titleStyle.Render("Memory volume overlay: "+g.Name))
	fmt.Fprintf(w, "%s states=%d nodes=%d nested=%d edges=%d depth=%d\n",
		dimStyle.Render("graph "), stats.States, stats.Nodes, stats.NestedSDFGs, stats.Edges, stats.MaxDepth)
	fmt.Fprintf(w, "%s method=%s center=%.4g values=%d ppp=%.3g shaded=%d\n\n",
		dimStyle.Render("scale "), scale.Method(), scale.Center(), len(ov.Values()), ppp, len(canvas.Strokes()))

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-6s %-8s %-16s %12s %8s  %s", "EDGE", "DATA", "VOLUME", "VALUE", "SEVERITY", "COLOR")))

	sdfg.Walk(g, sdfg.Funcs{Edge: func(e *sdfg.Edge) {
		expr := e.Memlet.Volume
		if expr == "" {
			expr = "-"
		}

		value, ok := ov.Volume(e.ID)
		if !ok {
			fmt.Fprintf(w, "%-6d %-8s %-16s %12s %8s  %s\n", e.ID, e.Memlet.Data, expr, "?", "-", dimStyle.Render("unshaded"))
			return
		}

		severity := ov.Severity(value)
		color := heatmap.TemperatureColor(severity)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex())).Render(strings.Repeat("█", 4))
		fmt.Fprintf(w, "%-6d %-8s %-16s %12.6g %8.3f  %s %s\n", e.ID, e.Memlet.Data, expr, value, severity, swatch, color.HSL())
	}})
}

func serve(addr string, reg *metrics.Registry, checker *health.Checker, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	mux.HandleFunc("/health", checker.HTTPHandler())
	mux.HandleFunc("/ready", checker.ReadinessHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics and health", logging.String("addr", addr))
		reg.UpdateSystemMetrics()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Metrics server failed: %v", err)
		}
	}()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			reg.UpdateSystemMetrics()
		case <-quit:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Error(err))
			}
			return
		}
	}
}
