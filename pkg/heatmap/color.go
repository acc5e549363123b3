package heatmap

import (
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a point on the temperature ramp
type Color struct {
	hue float64
	c   colorful.Color
}

// TemperatureColor maps severity 0 to green, 0.5 to yellow and 1 to red
// at full saturation and half lightness
func TemperatureColor(severity float64) Color {
	hue := (1 - clamp(severity)) * 120
	return Color{hue: hue, c: colorful.Hsl(hue, 1, 0.5)}
}

// Hue returns the hue in degrees
func (c Color) Hue() float64 { return c.hue }

// HSL returns the colour as a CSS hsl() string
func (c Color) HSL() string {
	return "hsl(" + strconv.FormatFloat(c.hue, 'f', -1, 64) + ",100%,50%)"
}

// Hex returns the colour as #rrggbb
func (c Color) Hex() string {
	return c.c.Clamped().Hex()
}

// RGB255 returns the 8-bit channels
func (c Color) RGB255() (r, g, b uint8) {
	return c.c.Clamped().RGB255()
}
