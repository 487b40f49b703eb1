package quartz

import (
	"math"

	"github.com/gogpu/quartz/internal/path"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new figure at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current figure.
type Close struct{}

func (Close) isPathElement() {}

// Path is a sequence of figures. Each figure starts with a MoveTo and is
// either closed by Close or left open.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current figure
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new figure at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current figure with a line back to its start.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// AddRect adds a closed rectangle figure: origin, then along the width,
// then along the height.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.W, r.Y)
	p.LineTo(r.X+r.W, r.Y+r.H)
	p.LineTo(r.X, r.Y+r.H)
	p.Close()
}

// AddLines adds an open figure through the given points.
func (p *Path) AddLines(points []Point) {
	if len(points) == 0 {
		return
	}
	p.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
}

// Ellipse adds a closed ellipse figure made of four cubic Bezier curves.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	// Magic constant for circle approximation with cubic Beziers
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// AddEllipseInRect adds the ellipse inscribed in r.
func (p *Path) AddEllipseInRect(r Rect) {
	c := r.Center()
	p.Ellipse(c.X, c.Y, math.Abs(r.W)/2, math.Abs(r.H)/2)
}

// AddPath appends the figures of other.
func (p *Path) AddPath(other *Path) {
	if other == nil || other.IsEmpty() {
		return
	}
	p.elements = append(p.elements, other.elements...)
	p.start = other.start
	p.current = other.current
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m AffineTransform) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = append(result.elements, p.elements...)
	result.start = p.start
	result.current = p.current
	return result
}

// Bounds returns the bounding box of every point of the path, control
// points included. The empty path has an empty bounding box.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt Point) {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return RectFromEdges(minX, minY, maxX, maxY)
}

// validate returns false if any coordinate is NaN or infinite.
func (p *Path) validate() bool {
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if !e.Point.IsFinite() {
				return false
			}
		case LineTo:
			if !e.Point.IsFinite() {
				return false
			}
		case QuadTo:
			if !e.Control.IsFinite() || !e.Point.IsFinite() {
				return false
			}
		case CubicTo:
			if !e.Control1.IsFinite() || !e.Control2.IsFinite() || !e.Point.IsFinite() {
				return false
			}
		}
	}
	return true
}

// flatten converts the path into closed device polygons. Open figures are
// closed implicitly, as filling does.
func (p *Path) flatten(tolerance float64) []path.Polygon {
	elems := make([]path.PathElement, 0, len(p.elements))
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			elems = append(elems, path.MoveTo{Point: e.Point.internal()})
		case LineTo:
			elems = append(elems, path.LineTo{Point: e.Point.internal()})
		case QuadTo:
			elems = append(elems, path.QuadTo{Control: e.Control.internal(), Point: e.Point.internal()})
		case CubicTo:
			elems = append(elems, path.CubicTo{
				Control1: e.Control1.internal(),
				Control2: e.Control2.internal(),
				Point:    e.Point.internal(),
			})
		case Close:
			elems = append(elems, path.Close{})
		}
	}
	return path.Flatten(elems, tolerance)
}

// Stream writes the figures of the path into sink as geometry events and
// closes the sink.
//
// Each figure is reported as BeginFigure, one AddLines call per run of
// lines, one AddBeziers call per run of curves, and EndFigure. A closed
// figure whose current point differs from its start gets the closing line
// as an explicit last point. Quadratic curves are raised to cubics.
func (p *Path) Stream(sink GeometrySink) error {
	var (
		open    bool
		start   Point
		current Point
		lines   []Point
		curves  []BezierSegment
	)

	flush := func() {
		if len(lines) > 0 {
			sink.AddLines(lines)
			lines = nil
		}
		if len(curves) > 0 {
			sink.AddBeziers(curves)
			curves = nil
		}
	}
	begin := func(pt Point) {
		sink.BeginFigure(pt, FigureBeginFilled)
		open = true
		start = pt
		current = pt
	}
	end := func(how FigureEnd) {
		flush()
		sink.EndFigure(how)
		open = false
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				end(FigureEndOpen)
			}
			begin(e.Point)

		case LineTo:
			if !open {
				begin(current)
			}
			if len(curves) > 0 {
				flush()
			}
			lines = append(lines, e.Point)
			current = e.Point

		case QuadTo:
			if !open {
				begin(current)
			}
			if len(lines) > 0 {
				flush()
			}
			curves = append(curves, quadToCubic(current, e.Control, e.Point))
			current = e.Point

		case CubicTo:
			if !open {
				begin(current)
			}
			if len(lines) > 0 {
				flush()
			}
			curves = append(curves, BezierSegment{P1: e.Control1, P2: e.Control2, P3: e.Point})
			current = e.Point

		case Close:
			if !open {
				continue
			}
			if current != start {
				if len(curves) > 0 {
					flush()
				}
				lines = append(lines, start)
			}
			end(FigureEndClosed)
			current = start
		}
	}
	if open {
		end(FigureEndOpen)
	}

	return sink.Close()
}

// quadToCubic returns the cubic segment tracing the same curve as the
// quadratic from p0 through control c to p.
func quadToCubic(p0, c, p Point) BezierSegment {
	return BezierSegment{
		P1: p0.Add(c.Sub(p0).Mul(2.0 / 3)),
		P2: p.Add(c.Sub(p).Mul(2.0 / 3)),
		P3: p,
	}
}
