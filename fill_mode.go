package quartz

import (
	"fmt"

	"github.com/gogpu/quartz/internal/fillrule"
)

// ConvertFillMode returns a geometry that encloses, under target, exactly
// the area g encloses under its own fill mode. g is not modified.
//
// When target equals g's fill mode a copy of g is returned. Otherwise
// curves are flattened with FlattenTolerance and the enclosed area is
// rebuilt as disjoint clockwise trapezoids, which enclose the same area
// under both fill modes. Converting the result back therefore preserves
// the interior.
//
// ConvertFillMode fails with ErrGeometry for a nil geometry or one with
// non-finite coordinates.
func ConvertFillMode(g *Geometry, target FillMode) (*Geometry, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrGeometry)
	}
	if !g.path.validate() {
		return nil, fmt.Errorf("%w: non-finite coordinate", ErrGeometry)
	}
	if target != FillModeWinding && target != FillModeEvenOdd {
		return nil, fmt.Errorf("%w: unknown fill mode %v", ErrGeometry, target)
	}
	if g.mode == target {
		return &Geometry{path: g.path.Clone(), mode: target}, nil
	}

	traps := fillrule.Decompose(g.polygons(), g.mode.rule())

	p := NewPath()
	for _, t := range traps {
		poly := t.Polygon()
		p.MoveTo(poly[0].X, poly[0].Y)
		for _, v := range poly[1:] {
			p.LineTo(v.X, v.Y)
		}
		p.Close()
	}

	Logger().Debug("quartz: fill mode converted",
		"from", g.mode, "to", target, "trapezoids", len(traps))

	return &Geometry{path: p, mode: target}, nil
}
