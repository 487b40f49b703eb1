// Package path provides internal path processing utilities.
package path

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Tolerance is the default maximum distance from the curve for flattening.
const Tolerance = 0.1

// maxDepth bounds curve subdivision (2^16 segments per curve).
const maxDepth = 16

// PathElement represents an element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isPathElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Polygon is a flattened subpath. It is implicitly closed: the last vertex
// connects back to the first and the first vertex is not repeated.
type Polygon []Point

// Flatten converts path elements into one polygon per subpath, replacing
// curves by line segments that stay within tolerance of the curve.
// Subpaths with fewer than three distinct vertices enclose no area and are
// dropped. A tolerance <= 0 selects Tolerance.
func Flatten(elements []PathElement, tolerance float64) []Polygon {
	if tolerance <= 0 {
		tolerance = Tolerance
	}

	var polys []Polygon
	var current Polygon
	var cur Point

	flush := func() {
		current = dedupe(current)
		if len(current) >= 3 {
			polys = append(polys, current)
		}
		current = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur = e.Point
			current = append(current, cur)

		case LineTo:
			if len(current) == 0 {
				current = append(current, cur)
			}
			cur = e.Point
			current = append(current, cur)

		case QuadTo:
			if len(current) == 0 {
				current = append(current, cur)
			}
			flattenQuadraticRec(cur, e.Control, e.Point, tolerance, maxDepth, (*[]Point)(&current))
			cur = e.Point

		case CubicTo:
			if len(current) == 0 {
				current = append(current, cur)
			}
			flattenCubicRec(cur, e.Control1, e.Control2, e.Point, tolerance, maxDepth, (*[]Point)(&current))
			cur = e.Point

		case Close:
			if len(current) > 0 {
				cur = current[0]
			}
			flush()
		}
	}
	flush()

	return polys
}

// dedupe removes consecutive duplicate vertices and a trailing copy of the
// first vertex.
func dedupe(poly Polygon) Polygon {
	if len(poly) == 0 {
		return poly
	}
	out := poly[:1]
	for _, p := range poly[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// Bounds returns the bounding box of all polygons as min and max corners.
// ok is false when there are no vertices.
func Bounds(polys []Polygon) (lo, hi Point, ok bool) {
	lo = Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, poly := range polys {
		for _, p := range poly {
			lo.X = math.Min(lo.X, p.X)
			lo.Y = math.Min(lo.Y, p.Y)
			hi.X = math.Max(hi.X, p.X)
			hi.Y = math.Max(hi.Y, p.Y)
			ok = true
		}
	}
	return lo, hi, ok
}

// Helper methods for Point
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// flattenQuadraticRec recursively subdivides a quadratic Bezier curve.
func flattenQuadraticRec(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	// Calculate the distance from the control point to the line p0-p2
	dist := distanceToLine(p1, p0, p2)

	if dist < tolerance || depth == 0 {
		// Curve is flat enough, add the endpoint
		*points = append(*points, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	flattenQuadraticRec(p0, q0, q2, tolerance, depth-1, points)
	flattenQuadraticRec(q2, q1, p2, tolerance, depth-1, points)
}

// flattenCubicRec recursively subdivides a cubic Bezier curve.
func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	dist := math.Max(d1, d2)

	if dist < tolerance || depth == 0 {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth-1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth-1, points)
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}

// Edge represents a line segment from P0 to P1.
type Edge struct {
	P0, P1 Point
}

// Edges returns the closed outline of every polygon as edges, including the
// closing edge from the last vertex back to the first. Edges never connect
// separate polygons.
func Edges(polys []Polygon) []Edge {
	var edges []Edge
	for _, poly := range polys {
		for i := range poly {
			edges = append(edges, Edge{P0: poly[i], P1: poly[(i+1)%len(poly)]})
		}
	}
	return edges
}
