// Package fillrule resolves the interior of flattened polygons under a fill
// rule into disjoint trapezoids.
//
// The trapezoids returned by Decompose never overlap and are all wound the
// same way, so their union has the same interior under the even-odd and the
// nonzero winding rule. This is what lets a winding-only rasteriser fill an
// even-odd region exactly.
package fillrule

import (
	"math"
	"slices"

	"github.com/gogpu/quartz/internal/path"
)

// Rule selects how crossing counts map to inside/outside.
type Rule uint8

const (
	// NonZero treats a point as inside when its winding number is not zero.
	NonZero Rule = iota

	// EvenOdd treats a point as inside when a ray from it crosses the
	// boundary an odd number of times.
	EvenOdd
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// Inside reports whether a winding number counts as interior under r.
func (r Rule) Inside(winding int) bool {
	if r == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// Trapezoid is a region bounded by two horizontal lines and two
// non-crossing edges. Y0 < Y1; the left edge runs from (L0, Y0) to
// (L1, Y1) and the right edge from (R0, Y0) to (R1, Y1).
type Trapezoid struct {
	Y0, Y1 float64
	L0, R0 float64
	L1, R1 float64
}

// Polygon returns the trapezoid outline. With y pointing down the outline
// is clockwise: top-left, top-right, bottom-right, bottom-left.
func (t Trapezoid) Polygon() path.Polygon {
	return path.Polygon{
		{X: t.L0, Y: t.Y0},
		{X: t.R0, Y: t.Y0},
		{X: t.R1, Y: t.Y1},
		{X: t.L1, Y: t.Y1},
	}
}

// Area returns the trapezoid area.
func (t Trapezoid) Area() float64 {
	return ((t.R0 - t.L0) + (t.R1 - t.L1)) * (t.Y1 - t.Y0) / 2
}

// Contains reports whether p lies inside the trapezoid (boundary included).
func (t Trapezoid) Contains(p path.Point) bool {
	if p.Y < t.Y0 || p.Y > t.Y1 {
		return false
	}
	f := (p.Y - t.Y0) / (t.Y1 - t.Y0)
	l := t.L0 + (t.L1-t.L0)*f
	r := t.R0 + (t.R1-t.R0)*f
	return p.X >= l && p.X <= r
}

// edge is a non-horizontal polygon edge oriented top to bottom.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int // +1 if the original edge pointed down, -1 if up
}

// xAt returns the x coordinate of the edge's supporting line at y.
func (e edge) xAt(y float64) float64 {
	if y <= e.y0 {
		return e.x0
	}
	if y >= e.y1 {
		return e.x1
	}
	return e.x0 + (e.x1-e.x0)*(y-e.y0)/(e.y1-e.y0)
}

// Decompose returns the interior of polys under rule as disjoint,
// clockwise trapezoids ordered top to bottom, left to right.
// Polygons are implicitly closed. Horizontal edges bound no spans and are
// ignored.
func Decompose(polys []path.Polygon, rule Rule) []Trapezoid {
	edges := collectEdges(polys)
	if len(edges) == 0 {
		return nil
	}

	ys := breakpoints(edges)

	var out []Trapezoid
	active := make([]slabEdge, 0, len(edges))
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		if y1-y0 < minSlabHeight {
			continue
		}
		ym := (y0 + y1) / 2

		active = active[:0]
		for _, e := range edges {
			if e.y0 <= y0 && e.y1 >= y1 {
				active = append(active, slabEdge{
					top: e.xAt(y0),
					mid: e.xAt(ym),
					bot: e.xAt(y1),
					dir: e.dir,
				})
			}
		}
		if len(active) < 2 {
			continue
		}
		slices.SortFunc(active, func(a, b slabEdge) int {
			switch {
			case a.mid < b.mid:
				return -1
			case a.mid > b.mid:
				return 1
			default:
				return 0
			}
		})

		winding := 0
		var left slabEdge
		for _, e := range active {
			wasInside := rule.Inside(winding)
			winding += e.dir
			isInside := rule.Inside(winding)

			switch {
			case !wasInside && isInside:
				left = e
			case wasInside && !isInside:
				l0, r0 := ordered(left.top, e.top)
				l1, r1 := ordered(left.bot, e.bot)
				if r0 > l0 || r1 > l1 {
					out = append(out, Trapezoid{
						Y0: y0, Y1: y1,
						L0: l0, R0: r0,
						L1: l1, R1: r1,
					})
				}
			}
		}
	}

	return out
}

// minSlabHeight is the height below which a slab is dropped. Crossing
// points are rounded, so a crossing next to a vertex can produce a sliver
// slab in which the order of the edges is meaningless.
const minSlabHeight = 1e-9

// ordered returns the span from l to r, collapsed to its midpoint when
// rounding has put r left of l.
func ordered(l, r float64) (float64, float64) {
	if r < l {
		m := (l + r) / 2
		return m, m
	}
	return l, r
}

// slabEdge is an edge clipped to one horizontal slab.
type slabEdge struct {
	top, mid, bot float64
	dir           int
}

func collectEdges(polys []path.Polygon) []edge {
	var edges []edge
	for _, e := range path.Edges(polys) {
		switch {
		case e.P0.Y < e.P1.Y:
			edges = append(edges, edge{x0: e.P0.X, y0: e.P0.Y, x1: e.P1.X, y1: e.P1.Y, dir: 1})
		case e.P0.Y > e.P1.Y:
			edges = append(edges, edge{x0: e.P1.X, y0: e.P1.Y, x1: e.P0.X, y1: e.P0.Y, dir: -1})
		}
	}
	return edges
}

// breakpoints returns the sorted, distinct y coordinates of every edge
// endpoint and every proper crossing between two edges. Between two
// consecutive breakpoints no two edges cross, so their left-to-right order
// is fixed.
func breakpoints(edges []edge) []float64 {
	ys := make([]float64, 0, 2*len(edges))
	for _, e := range edges {
		ys = append(ys, e.y0, e.y1)
	}
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if y, ok := crossingY(edges[i], edges[j]); ok {
				ys = append(ys, y)
			}
		}
	}
	slices.Sort(ys)
	return slices.Compact(ys)
}

// crossingY returns the y coordinate where a and b cross strictly inside
// their common vertical range.
func crossingY(a, b edge) (float64, bool) {
	lo := math.Max(a.y0, b.y0)
	hi := math.Min(a.y1, b.y1)
	if hi <= lo {
		return 0, false
	}

	// Signed horizontal distance between the edges at both ends of the
	// shared range; a sign change means they cross.
	dLo := a.xAt(lo) - b.xAt(lo)
	dHi := a.xAt(hi) - b.xAt(hi)
	if dLo == 0 || dHi == 0 || (dLo < 0) == (dHi < 0) {
		return 0, false
	}

	y := lo + (hi-lo)*dLo/(dLo-dHi)
	if y <= lo || y >= hi {
		return 0, false
	}
	return y, true
}
