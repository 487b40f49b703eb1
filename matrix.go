package quartz

import (
	"math"

	"golang.org/x/image/math/f64"
)

// AffineTransform is a 2D affine transformation in the CoreGraphics
// layout:
//
//	| a  b  0 |
//	| c  d  0 |
//	| tx ty 1 |
//
// A point is transformed as a row vector:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type AffineTransform struct {
	A, B   float64
	C, D   float64
	TX, TY float64
}

// Identity returns the identity transform (1, 0, 0, 1, 0, 0).
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translate creates a translation.
func Translate(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Scale creates a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Rotate creates a rotation (angle in radians). With y pointing down a
// positive angle turns clockwise on screen.
func Rotate(angle float64) AffineTransform {
	sin, cos := math.Sincos(angle)
	return AffineTransform{A: cos, B: sin, C: -sin, D: cos}
}

// Shear creates a shear transform.
func Shear(sx, sy float64) AffineTransform {
	return AffineTransform{A: 1, B: sy, C: sx, D: 1}
}

// Concat returns the transform that applies t first and then u.
func (t AffineTransform) Concat(u AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*u.A + t.B*u.C,
		B:  t.A*u.B + t.B*u.D,
		C:  t.C*u.A + t.D*u.C,
		D:  t.C*u.B + t.D*u.D,
		TX: t.TX*u.A + t.TY*u.C + u.TX,
		TY: t.TX*u.B + t.TY*u.D + u.TY,
	}
}

// Translated returns a translation applied before t.
func (t AffineTransform) Translated(tx, ty float64) AffineTransform {
	return Translate(tx, ty).Concat(t)
}

// Scaled returns a scale applied before t.
func (t AffineTransform) Scaled(sx, sy float64) AffineTransform {
	return Scale(sx, sy).Concat(t)
}

// Rotated returns a rotation applied before t.
func (t AffineTransform) Rotated(angle float64) AffineTransform {
	return Rotate(angle).Concat(t)
}

// TransformPoint applies the transformation to a point.
func (t AffineTransform) TransformPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.TX,
		Y: t.B*p.X + t.D*p.Y + t.TY,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (t AffineTransform) TransformVector(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y,
		Y: t.B*p.X + t.D*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (t AffineTransform) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Invert returns the inverse transform. ok is false when t is singular,
// in which case t is returned unchanged.
func (t AffineTransform) Invert() (inv AffineTransform, ok bool) {
	det := t.Determinant()
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return t, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TX: (t.C*t.TY - t.D*t.TX) * invDet,
		TY: (t.B*t.TX - t.A*t.TY) * invDet,
	}, true
}

// IsIdentity returns true if the transform is the identity.
func (t AffineTransform) IsIdentity() bool {
	return t == Identity()
}

// IsTranslation returns true if the transform is only a translation.
func (t AffineTransform) IsTranslation() bool {
	return t.A == 1 && t.B == 0 && t.C == 0 && t.D == 1
}

// IsRectilinear returns true if the transform maps axis-aligned
// rectangles to axis-aligned rectangles (scales, flips and quarter turns).
func (t AffineTransform) IsRectilinear() bool {
	return (t.B == 0 && t.C == 0) || (t.A == 0 && t.D == 0)
}

// IsFinite reports whether every coefficient is a finite number.
func (t AffineTransform) IsFinite() bool {
	for _, v := range [6]float64{t.A, t.B, t.C, t.D, t.TX, t.TY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// aff3 returns t as the row-major matrix used by golang.org/x/image/draw.
func (t AffineTransform) aff3() f64.Aff3 {
	return f64.Aff3{
		t.A, t.C, t.TX,
		t.B, t.D, t.TY,
	}
}
