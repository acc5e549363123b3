// Package visualization places SDFG elements in graph space and provides a
// recording canvas and viewport the overlay can draw through.
package visualization

import "github.com/dd0wney/sdfv-volume/pkg/sdfg"

// LayoutConfig configures layout parameters. All sizes are in graph units.
type LayoutConfig struct {
	NodeWidth  float64 // Width of a basic node
	NodeHeight float64 // Height of a basic node
	NodeGap    float64 // Horizontal gap between nodes of one level
	LevelGap   float64 // Vertical gap between levels
	Padding    float64 // Inner padding of states and nested graphs
	StateGap   float64 // Vertical gap between states
}

// DefaultLayoutConfig returns the sizes used by the CLIs
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		NodeWidth:  80,
		NodeHeight: 30,
		NodeGap:    20,
		LevelGap:   40,
		Padding:    15,
		StateGap:   30,
	}
}

// Layout assigns bounds to every state and node and a path to every edge
// of a graph tree, returning the bounds of the whole tree
type Layout interface {
	Apply(g *sdfg.Graph) sdfg.Rect
}
