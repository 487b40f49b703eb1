// Package raster turns device-space polygons into 8-bit coverage.
//
// Coverage is computed with the nonzero winding rule by the accumulation
// rasteriser from golang.org/x/image/vector. Even-odd regions must be
// converted to an equivalent winding region first (see internal/fillrule).
package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/quartz/internal/path"
)

// Rasterizer accumulates anti-aliased coverage for polygon sets.
// A Rasterizer reuses its accumulation buffer between calls and is not
// safe for concurrent use.
type Rasterizer struct {
	z *vector.Rasterizer
}

// NewRasterizer creates a rasterizer. The accumulation buffer is sized on
// first use.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{z: vector.NewRasterizer(0, 0)}
}

// FillNonZero writes the coverage of polys into dst, replacing its previous
// contents. Polygons are in the coordinate space of dst: a vertex at
// dst.Rect.Min lands on the top-left corner of dst's first pixel.
func (r *Rasterizer) FillNonZero(dst *image.Alpha, polys []path.Polygon) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}

	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Src

	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		r.z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			r.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		r.z.ClosePath()
	}

	r.z.Draw(dst, b, image.Opaque, b.Min)
}

// FillRect writes the exact area coverage of the axis-aligned rectangle
// [x0, x1) x [y0, y1) into dst, replacing its previous contents.
func FillRect(dst *image.Alpha, x0, y0, x1, y1 float64) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		cy := Overlap(float64(y), float64(y+1), y0, y1)
		row := dst.Pix[dst.PixOffset(b.Min.X, y):]
		for x := b.Min.X; x < b.Max.X; x++ {
			cx := Overlap(float64(x), float64(x+1), x0, x1)
			row[x-b.Min.X] = ToByte(cx * cy)
		}
	}
}

// Overlap returns the length of the intersection of [a0, a1) and [b0, b1).
func Overlap(a0, a1, b0, b1 float64) float64 {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// ToByte converts a coverage fraction in [0, 1] to 0..255, rounding to
// nearest.
func ToByte(c float64) uint8 {
	switch {
	case c <= 0:
		return 0
	case c >= 1:
		return 255
	default:
		return uint8(c*255 + 0.5)
	}
}
