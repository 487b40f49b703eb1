package quartz

import (
	"image"
	"math"
)

// Rect is an origin and a size. A standardized rectangle has non-negative
// width and height; operations that depend on orientation standardize
// their input first.
type Rect struct {
	X, Y float64 // Origin
	W, H float64 // Width and height
}

// RectFromEdges builds the rectangle between a left/top and a right/bottom
// edge: the width is right-left and the height bottom-top.
func RectFromEdges(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// RectFromImage converts an integer pixel rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return RectFromEdges(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

// CenteredOn returns the rectangle of the given size centered on c.
func CenteredOn(size Size, c Point) Rect {
	return Rect{X: c.X - size.W/2, Y: c.Y - size.H/2, W: size.W, H: size.H}
}

// Standardize returns r with a non-negative width and height covering the
// same area.
func (r Rect) Standardize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Edges returns the left, top, right and bottom edges of the standardized
// rectangle.
func (r Rect) Edges() (left, top, right, bottom float64) {
	s := r.Standardize()
	return s.X, s.Y, s.X + s.W, s.Y + s.H
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return math.Min(r.X, r.X+r.W) }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return math.Min(r.Y, r.Y+r.H) }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return math.Max(r.X, r.X+r.W) }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return math.Max(r.Y, r.Y+r.H) }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.W == 0 || r.H == 0 || math.IsNaN(r.W) || math.IsNaN(r.H)
}

// Contains reports whether p lies inside the rectangle. The left and top
// edges are inside, the right and bottom edges are not.
func (r Rect) Contains(p Point) bool {
	l, t, rt, b := r.Edges()
	return p.X >= l && p.X < rt && p.Y >= t && p.Y < b
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rectangle if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	l0, t0, r0, b0 := r.Edges()
	l1, t1, r1, b1 := other.Edges()

	x0 := math.Max(l0, l1)
	y0 := math.Max(t0, t1)
	x1 := math.Min(r0, r1)
	y1 := math.Min(b0, b1)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return RectFromEdges(x0, y0, x1, y1)
}

// Union returns the smallest rectangle containing both rectangles. Empty
// rectangles are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other.Standardize()
	}
	if other.IsEmpty() {
		return r.Standardize()
	}
	l0, t0, r0, b0 := r.Edges()
	l1, t1, r1, b1 := other.Edges()
	return RectFromEdges(math.Min(l0, l1), math.Min(t0, t1), math.Max(r0, r1), math.Max(b0, b1))
}

// ApplyTransform returns the bounding box of the transformed rectangle.
func (r Rect) ApplyTransform(m AffineTransform) Rect {
	l, t, rt, b := r.Edges()
	corners := [4]Point{
		m.TransformPoint(Pt(l, t)),
		m.TransformPoint(Pt(rt, t)),
		m.TransformPoint(Pt(rt, b)),
		m.TransformPoint(Pt(l, b)),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	return RectFromEdges(minX, minY, maxX, maxY)
}

// Pixels returns the integer pixel rectangle touched by r.
func (r Rect) Pixels() image.Rectangle {
	l, t, rt, b := r.Edges()
	return image.Rect(
		int(math.Floor(l)), int(math.Floor(t)),
		int(math.Ceil(rt)), int(math.Ceil(b)),
	)
}
