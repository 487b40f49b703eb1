package quartz

import "fmt"

// FillMode selects the rule deciding which points a geometry encloses.
type FillMode uint8

const (
	// FillModeWinding treats a point as inside when the boundary winds
	// around it a non-zero number of times.
	FillModeWinding FillMode = iota

	// FillModeEvenOdd treats a point as inside when a ray from it crosses
	// the boundary an odd number of times.
	FillModeEvenOdd
)

// String returns the fill mode name.
func (m FillMode) String() string {
	switch m {
	case FillModeWinding:
		return "Winding"
	case FillModeEvenOdd:
		return "EvenOdd"
	default:
		return fmt.Sprintf("FillMode(%d)", uint8(m))
	}
}

// FigureBegin tells whether a figure takes part in filling.
type FigureBegin uint8

const (
	// FigureBeginFilled marks a figure that encloses area.
	FigureBeginFilled FigureBegin = iota

	// FigureBeginHollow marks a figure that is only ever stroked.
	FigureBeginHollow
)

// FigureEnd tells whether a figure is closed.
type FigureEnd uint8

const (
	// FigureEndOpen leaves the figure open.
	FigureEndOpen FigureEnd = iota

	// FigureEndClosed closes the figure.
	FigureEndClosed
)

// SegmentFlags carries per-segment stroking hints. They do not change
// the enclosed area.
type SegmentFlags uint8

const (
	// SegmentNone is the default: segments are stroked and may be joined
	// smoothly.
	SegmentNone SegmentFlags = 0

	// SegmentForceUnstroked excludes following segments from stroking.
	SegmentForceUnstroked SegmentFlags = 1

	// SegmentForceRoundLineJoin forces round joins between following
	// segments.
	SegmentForceRoundLineJoin SegmentFlags = 2
)

// BezierSegment is a cubic curve from the current point through two
// control points to P3.
type BezierSegment struct {
	P1, P2, P3 Point
}

// GeometrySink receives a geometry as a stream of figure events.
//
// A stream is any number of figures, each BeginFigure, then AddLines and
// AddBeziers calls in drawing order, then EndFigure. Close ends the
// stream; a sink must not be used afterwards.
type GeometrySink interface {
	SetFillMode(mode FillMode)
	SetSegmentFlags(flags SegmentFlags)
	BeginFigure(start Point, how FigureBegin)
	AddLines(points []Point)
	AddBeziers(segments []BezierSegment)
	EndFigure(how FigureEnd)
	Close() error
}

// PathSink is a pass-through sink that rebuilds a Geometry from the
// events it receives. Hollow figures enclose no area and are dropped.
type PathSink struct {
	path    *Path
	mode    FillMode
	open    bool
	skip    bool
	badOpen bool
	closed  bool
}

// NewPathSink returns an empty PathSink.
func NewPathSink() *PathSink {
	return &PathSink{path: NewPath()}
}

// SetFillMode implements GeometrySink.
func (s *PathSink) SetFillMode(mode FillMode) {
	s.mode = mode
}

// SetSegmentFlags implements GeometrySink.
func (s *PathSink) SetSegmentFlags(SegmentFlags) {}

// BeginFigure implements GeometrySink.
func (s *PathSink) BeginFigure(start Point, how FigureBegin) {
	if s.open {
		s.badOpen = true
	}
	s.open = true
	s.skip = how == FigureBeginHollow
	if !s.skip {
		s.path.MoveTo(start.X, start.Y)
	}
}

// AddLines implements GeometrySink.
func (s *PathSink) AddLines(points []Point) {
	if s.skip {
		return
	}
	for _, pt := range points {
		s.path.LineTo(pt.X, pt.Y)
	}
}

// AddBeziers implements GeometrySink.
func (s *PathSink) AddBeziers(segments []BezierSegment) {
	if s.skip {
		return
	}
	for _, seg := range segments {
		s.path.CubicTo(seg.P1.X, seg.P1.Y, seg.P2.X, seg.P2.Y, seg.P3.X, seg.P3.Y)
	}
}

// EndFigure implements GeometrySink.
func (s *PathSink) EndFigure(how FigureEnd) {
	if !s.skip && how == FigureEndClosed {
		s.path.Close()
	}
	s.open = false
	s.skip = false
}

// Close implements GeometrySink. It fails when a figure was begun while
// another was still open or is left open.
func (s *PathSink) Close() error {
	s.closed = true
	if s.open || s.badOpen {
		return fmt.Errorf("%w: figure not ended before close", ErrGeometry)
	}
	return nil
}

// Geometry returns the rebuilt geometry. It is only meaningful after a
// successful Close.
func (s *PathSink) Geometry() *Geometry {
	return &Geometry{path: s.path.Clone(), mode: s.mode}
}
