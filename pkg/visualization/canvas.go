package visualization

import (
	"fmt"
	"io"

	"github.com/dd0wney/sdfv-volume/pkg/sdfg"
)

// Stroke is one recorded polyline
type Stroke struct {
	Points []sdfg.Point `json:"points"`
	Color  string       `json:"color"`
	Width  float64      `json:"width"`
}

// Canvas is a draw context that records strokes instead of rasterizing
// them
type Canvas struct {
	lod     bool
	strokes []Stroke
}

// NewCanvas creates an empty canvas. lod enables level-of-detail culling
// for whoever draws on it.
func NewCanvas(lod bool) *Canvas {
	return &Canvas{lod: lod, strokes: make([]Stroke, 0)}
}

// LOD reports whether level-of-detail culling is enabled
func (c *Canvas) LOD() bool { return c.lod }

// SetLOD toggles level-of-detail culling
func (c *Canvas) SetLOD(lod bool) { c.lod = lod }

// StrokePolyline records a polyline
func (c *Canvas) StrokePolyline(points []sdfg.Point, color string, lineWidth float64) {
	pts := make([]sdfg.Point, len(points))
	copy(pts, points)
	c.strokes = append(c.strokes, Stroke{Points: pts, Color: color, Width: lineWidth})
}

// Strokes returns the recorded strokes in drawing order
func (c *Canvas) Strokes() []Stroke {
	return c.strokes
}

// Clear drops every recorded stroke
func (c *Canvas) Clear() {
	c.strokes = c.strokes[:0]
}

// WriteTo prints one line per stroke
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, s := range c.strokes {
		n, err := fmt.Fprintf(w, "%3d %-20s w=%g %v\n", i, s.Color, s.Width, s.Points)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
