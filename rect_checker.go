package quartz

import "math"

// segmentAxis is the orientation of an axis-aligned segment.
type segmentAxis uint8

const (
	axisNone segmentAxis = iota
	axisHorizontal
	axisVertical
)

func axisOf(a, b Point) segmentAxis {
	switch {
	case a.Y == b.Y && a.X != b.X:
		return axisHorizontal
	case a.X == b.X && a.Y != b.Y:
		return axisVertical
	default:
		return axisNone
	}
}

// AxisAlignedRectangleChecker is a GeometrySink that decides whether the
// streamed geometry is exactly one axis-aligned rectangle: a single filled
// figure of four alternating horizontal and vertical lines that ends where
// it started. Coordinates are compared exactly.
//
// The zero value is ready to use. A checker classifies one stream; read
// the verdict with IsAxisAlignedRectangle after Close.
type AxisAlignedRectangleChecker struct {
	begun   int
	figures int
	lines   int
	points  [5]Point
	last    segmentAxis

	figureOpen        bool
	definitelyNotRect bool
	confirmedRect     bool
}

// SetFillMode implements GeometrySink. The fill mode does not change
// whether a single rectangle encloses a point.
func (c *AxisAlignedRectangleChecker) SetFillMode(FillMode) {}

// SetSegmentFlags implements GeometrySink.
func (c *AxisAlignedRectangleChecker) SetSegmentFlags(SegmentFlags) {}

// BeginFigure implements GeometrySink. Only the first figure of a stream
// can be a rectangle, and only if it is filled.
func (c *AxisAlignedRectangleChecker) BeginFigure(start Point, how FigureBegin) {
	if c.begun > 0 || how != FigureBeginFilled {
		c.definitelyNotRect = true
	}
	c.begun++
	c.figureOpen = true
	c.points[0] = start
}

// AddLines implements GeometrySink. Points accumulate across calls.
func (c *AxisAlignedRectangleChecker) AddLines(points []Point) {
	if c.definitelyNotRect {
		return
	}
	if !c.figureOpen {
		c.definitelyNotRect = true
		return
	}
	for _, p := range points {
		if c.lines == 4 {
			c.definitelyNotRect = true
			return
		}
		axis := axisOf(c.points[c.lines], p)
		if axis == axisNone || axis == c.last {
			c.definitelyNotRect = true
			return
		}
		c.last = axis
		c.lines++
		c.points[c.lines] = p
	}
}

// AddBeziers implements GeometrySink. Curves never form an axis-aligned
// rectangle.
func (c *AxisAlignedRectangleChecker) AddBeziers([]BezierSegment) {
	c.definitelyNotRect = true
}

// EndFigure implements GeometrySink.
func (c *AxisAlignedRectangleChecker) EndFigure(FigureEnd) {
	c.figureOpen = false
	c.figures++
}

// Close implements GeometrySink and finalises the verdict. A negative
// verdict is not an error: Close always returns nil.
func (c *AxisAlignedRectangleChecker) Close() error {
	c.confirmedRect = !c.definitelyNotRect &&
		c.figures == 1 &&
		c.lines == 4 &&
		c.points[4] == c.points[0] &&
		!c.figureOpen
	return nil
}

// IsAxisAlignedRectangle reports the verdict reached by Close.
func (c *AxisAlignedRectangleChecker) IsAxisAlignedRectangle() bool {
	return c.confirmedRect
}

// Rect returns the classified rectangle, standardized. ok is false unless
// the stream was confirmed to be a rectangle.
func (c *AxisAlignedRectangleChecker) Rect() (r Rect, ok bool) {
	if !c.confirmedRect {
		return Rect{}, false
	}
	minX, minY := c.points[0].X, c.points[0].Y
	maxX, maxY := minX, minY
	for _, p := range c.points[1:4] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return RectFromEdges(minX, minY, maxX, maxY), true
}

// IsAxisAlignedRectangle reports whether g is exactly one axis-aligned
// rectangle. A nil geometry is not a rectangle.
func IsAxisAlignedRectangle(g *Geometry) bool {
	_, ok := g.AxisAlignedRect()
	return ok
}
