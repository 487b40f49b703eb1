package quartz

import (
	"fmt"

	"github.com/gogpu/quartz/internal/fillrule"
	"github.com/gogpu/quartz/internal/path"
)

// FlattenTolerance is the maximum distance, in device units, between a
// curve and the line segments that replace it for filling and clipping.
const FlattenTolerance = path.Tolerance

// Geometry is an immutable path together with the fill mode that decides
// which points it encloses.
type Geometry struct {
	path *Path
	mode FillMode
}

// NewGeometry creates a geometry from a copy of p. It fails with
// ErrGeometry when p is nil or has a non-finite coordinate.
func NewGeometry(p *Path, mode FillMode) (*Geometry, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil path", ErrGeometry)
	}
	if !p.validate() {
		return nil, fmt.Errorf("%w: non-finite coordinate", ErrGeometry)
	}
	return &Geometry{path: p.Clone(), mode: mode}, nil
}

// RectGeometry returns the geometry of a rectangle.
func RectGeometry(r Rect) *Geometry {
	p := NewPath()
	p.AddRect(r)
	return &Geometry{path: p, mode: FillModeWinding}
}

// EllipseGeometry returns the geometry of the ellipse inscribed in r.
func EllipseGeometry(r Rect) *Geometry {
	p := NewPath()
	p.AddEllipseInRect(r)
	return &Geometry{path: p, mode: FillModeWinding}
}

// FillMode returns the fill mode of the geometry.
func (g *Geometry) FillMode() FillMode {
	return g.mode
}

// Path returns a copy of the geometry's path.
func (g *Geometry) Path() *Path {
	return g.path.Clone()
}

// IsEmpty returns true if the geometry has no figures.
func (g *Geometry) IsEmpty() bool {
	return g.path.IsEmpty()
}

// Bounds returns the bounding box of the geometry's points.
func (g *Geometry) Bounds() Rect {
	return g.path.Bounds()
}

// Transform returns the geometry with m applied to every point.
func (g *Geometry) Transform(m AffineTransform) *Geometry {
	return &Geometry{path: g.path.Transform(m), mode: g.mode}
}

// WithFillMode returns the same path with another fill mode. Unlike
// ConvertFillMode this changes the enclosed area when the path overlaps
// itself.
func (g *Geometry) WithFillMode(mode FillMode) *Geometry {
	return &Geometry{path: g.path, mode: mode}
}

// Stream writes the fill mode and then the figures of the geometry into
// sink, and closes it.
func (g *Geometry) Stream(sink GeometrySink) error {
	sink.SetFillMode(g.mode)
	return g.path.Stream(sink)
}

// Contains reports whether pt is inside the geometry under its own fill
// mode. Curves are flattened with FlattenTolerance.
func (g *Geometry) Contains(pt Point) bool {
	return fillrule.Contains(g.polygons(), pt.internal(), g.mode.rule())
}

// AxisAlignedRect returns the rectangle g consists of, if it is exactly
// one axis-aligned rectangle. A nil geometry is not a rectangle.
func (g *Geometry) AxisAlignedRect() (Rect, bool) {
	if g == nil {
		return Rect{}, false
	}
	var c AxisAlignedRectangleChecker
	_ = g.Stream(&c) // the checker never fails
	return c.Rect()
}

// polygons flattens the geometry into closed polygons.
func (g *Geometry) polygons() []path.Polygon {
	return g.path.flatten(FlattenTolerance)
}

// rule maps a fill mode to the rule of the internal decomposition.
func (m FillMode) rule() fillrule.Rule {
	if m == FillModeEvenOdd {
		return fillrule.EvenOdd
	}
	return fillrule.NonZero
}
