package quartz

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Gray creates a gray color with the given alpha.
func Gray(v, a float64) RGBA {
	return RGBA{R: v, G: v, B: v, A: a}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// Premultiplied returns the color premultiplied by its alpha as 8-bit
// components.
func (c RGBA) Premultiplied() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: unit8(clamp01(c.R) * a),
		G: unit8(clamp01(c.G) * a),
		B: unit8(clamp01(c.B) * a),
		A: unit8(a),
	}
}

// Luminance returns the gray value of the color using Rec. 601 weights.
// Gray colors map to their own level exactly.
func (c RGBA) Luminance() float64 {
	if c.R == c.G && c.G == c.B {
		return clamp01(c.R)
	}
	return 0.299*clamp01(c.R) + 0.587*clamp01(c.G) + 0.114*clamp01(c.B)
}

// clamp01 restricts a value to the [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	if x != x { // NaN
		return 0
	}
	return x
}

// unit8 converts a value in [0, 1] to 0..255, rounding to nearest.
func unit8(x float64) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)
