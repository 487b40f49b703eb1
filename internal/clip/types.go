// Package clip composes device-space clip regions.
//
// A Region reports 8-bit coverage per device pixel. Stack intersects
// regions by multiplying their coverage, so pushing a region can only
// shrink what is visible.
package clip

import (
	"image"
	"math"

	"github.com/gogpu/quartz/internal/raster"
)

// Region is an immutable device-space clip region.
type Region interface {
	// Bounds returns the pixels outside of which coverage is zero.
	Bounds() image.Rectangle

	// Coverage returns the coverage (0-255) of pixel (x, y).
	Coverage(x, y int) uint8
}

// RectRegion is an axis-aligned rectangle with exact area coverage.
// Edges are in device units and need not be pixel aligned.
type RectRegion struct {
	X0, Y0 float64 // Top-left corner
	X1, Y1 float64 // Bottom-right corner
}

// NewRectRegion returns the rectangle spanned by two opposite corners.
func NewRectRegion(x0, y0, x1, y1 float64) RectRegion {
	return RectRegion{
		X0: math.Min(x0, x1), Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1), Y1: math.Max(y0, y1),
	}
}

// IsEmpty returns true if the rectangle has zero area.
func (r RectRegion) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Bounds returns the pixels touched by the rectangle.
func (r RectRegion) Bounds() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		clampInt(math.Floor(r.X0)), clampInt(math.Floor(r.Y0)),
		clampInt(math.Ceil(r.X1)), clampInt(math.Ceil(r.Y1)),
	)
}

// Coverage returns the fraction of pixel (x, y) inside the rectangle.
func (r RectRegion) Coverage(x, y int) uint8 {
	cx := raster.Overlap(float64(x), float64(x+1), r.X0, r.X1)
	if cx == 0 {
		return 0
	}
	cy := raster.Overlap(float64(y), float64(y+1), r.Y0, r.Y1)
	return raster.ToByte(cx * cy)
}

// clampInt converts a device coordinate to int, saturating far outside
// any canvas instead of overflowing.
func clampInt(v float64) int {
	const limit = 1 << 30
	switch {
	case v < -limit:
		return -limit
	case v > limit:
		return limit
	default:
		return int(v)
	}
}
