package quartz

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	intImage "github.com/gogpu/quartz/internal/image"
)

// graphicsState is the part of the context state saved by SaveGState
// besides the transform and the clip, which the ClipStack saves.
type graphicsState struct {
	fill      RGBA
	stroke    RGBA
	lineWidth float64
	quality   InterpolationQuality
}

// Context is a drawing context over an RGBA or gray bitmap.
//
// The current path is kept in device space: every point is transformed
// by the CTM when it is added. Fill and stroke operations are limited by
// the clip stack.
//
// A Context is not safe for concurrent use.
type Context struct {
	width   int
	height  int
	format  PixelFormat
	rgba    *image.RGBA
	gray    *image.Gray
	factory Factory

	clips *ClipStack
	path  *Path
	state graphicsState
	saved []graphicsState

	// clipBuf backs the clip coverage of the current fill.
	clipBuf []uint8

	// Lifecycle
	closed bool
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// NewContext creates a drawing context with a cleared width x height
// bitmap: transparent black for RGBA, black for gray. It fails with
// ErrAllocation when the size is not positive or too large.
func NewContext(width, height int, opts ...ContextOption) (*Context, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if width <= 0 || height <= 0 || width > intImage.MaxDimension || height > intImage.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d bitmap", ErrAllocation, width, height)
	}

	factory := options.factory
	if factory == nil {
		factory = defaultFactory
	}

	c := &Context{
		width:   width,
		height:  height,
		format:  options.format,
		factory: factory,
		clips:   NewClipStack(width, height, factory),
		path:    NewPath(),
		state: graphicsState{
			fill:      Black,
			stroke:    Black,
			lineWidth: 1,
			quality:   options.quality,
		},
	}
	c.clips.SetInterpolationQuality(options.quality)

	r := image.Rect(0, 0, width, height)
	switch options.format {
	case FormatRGBA:
		c.rgba = image.NewRGBA(r)
	case FormatGray:
		c.gray = image.NewGray(r)
	default:
		return nil, fmt.Errorf("%w: unknown pixel format %v", ErrAllocation, options.format)
	}

	Logger().Debug("quartz: context created", "width", width, "height", height, "format", options.format)
	return c, nil
}

// Close releases the context state. It reports ErrStateMismatch when
// SaveGState calls were left without a matching RestoreGState. Calling
// Close again does nothing.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	// The clip stack is reachable through ClipStack, so its saves can
	// diverge from ours.
	unbalanced := max(len(c.saved), c.clips.SavedDepth())
	c.clips.Reset()
	c.path.Clear()
	c.clipBuf = nil
	c.saved = nil

	if unbalanced > 0 {
		Logger().Warn("quartz: context closed with saved states", "saved", unbalanced)
		return fmt.Errorf("%w: %d saved states not restored", ErrStateMismatch, unbalanced)
	}
	return nil
}

// Width returns the width of the bitmap.
func (c *Context) Width() int {
	return c.width
}

// Height returns the height of the bitmap.
func (c *Context) Height() int {
	return c.height
}

// PixelFormat returns the layout of the bitmap.
func (c *Context) PixelFormat() PixelFormat {
	return c.format
}

// Image returns the bitmap: an *image.RGBA or an *image.Gray. The image
// is live; later drawing changes it.
func (c *Context) Image() image.Image {
	if c.gray != nil {
		return c.gray
	}
	return c.rgba
}

// EncodePNG encodes the bitmap as PNG to the given writer.
func (c *Context) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("quartz: encode PNG: %w", err)
	}
	return nil
}

// MaskImage snapshots the bitmap as an immutable mask of the given kind:
// alpha masks take the alpha channel, luminance masks the gray value.
func (c *Context) MaskImage(kind MaskKind) (*MaskImage, error) {
	return MaskFromImage(c.Image(), kind)
}

// SaveGState saves the transform, the clip and the paint state.
func (c *Context) SaveGState() {
	c.clips.SaveState()
	c.saved = append(c.saved, c.state)
}

// RestoreGState restores the state saved by the matching SaveGState,
// discarding the clips pushed since. Calling it without a matching
// SaveGState panics with an error wrapping ErrStateMismatch.
func (c *Context) RestoreGState() {
	n := len(c.saved)
	if n == 0 {
		panic(fmt.Errorf("%w: RestoreGState without SaveGState", ErrStateMismatch))
	}
	c.clips.RestoreState()
	c.state = c.saved[n-1]
	c.saved = c.saved[:n-1]
	c.clips.SetInterpolationQuality(c.state.quality)
}

// SavedStates returns the number of SaveGState calls not yet restored.
func (c *Context) SavedStates() int {
	return len(c.saved)
}

// CTM returns the current transform from user to device space.
func (c *Context) CTM() AffineTransform {
	return c.clips.Transform()
}

// ConcatCTM applies m to user coordinates before the current transform.
func (c *Context) ConcatCTM(m AffineTransform) {
	c.clips.ApplyTransform(m)
}

// TranslateCTM moves the user space origin.
func (c *Context) TranslateCTM(tx, ty float64) {
	c.ConcatCTM(Translate(tx, ty))
}

// ScaleCTM scales user space.
func (c *Context) ScaleCTM(sx, sy float64) {
	c.ConcatCTM(Scale(sx, sy))
}

// RotateCTM rotates user space (angle in radians).
func (c *Context) RotateCTM(angle float64) {
	c.ConcatCTM(Rotate(angle))
}

// SetFillColor sets the color used by fill operations.
func (c *Context) SetFillColor(col RGBA) {
	c.state.fill = col
}

// SetRGBFillColor sets the fill color from components in [0, 1].
func (c *Context) SetRGBFillColor(r, g, b, a float64) {
	c.state.fill = RGBA{R: r, G: g, B: b, A: a}
}

// SetGrayFillColor sets the fill color to a gray level.
func (c *Context) SetGrayFillColor(gray, a float64) {
	c.state.fill = Gray(gray, a)
}

// SetStrokeColor sets the color used by stroke operations.
func (c *Context) SetStrokeColor(col RGBA) {
	c.state.stroke = col
}

// SetRGBStrokeColor sets the stroke color from components in [0, 1].
func (c *Context) SetRGBStrokeColor(r, g, b, a float64) {
	c.state.stroke = RGBA{R: r, G: g, B: b, A: a}
}

// SetLineWidth sets the stroke width in user units.
func (c *Context) SetLineWidth(width float64) {
	c.state.lineWidth = math.Abs(width)
}

// LineWidth returns the stroke width.
func (c *Context) LineWidth() float64 {
	return c.state.lineWidth
}

// SetInterpolationQuality sets how mask clips are resampled.
func (c *Context) SetInterpolationQuality(q InterpolationQuality) {
	c.state.quality = q
	c.clips.SetInterpolationQuality(q)
}

// BeginPath discards the current path.
func (c *Context) BeginPath() {
	c.path.Clear()
}

// IsPathEmpty returns true if the current path has no elements.
func (c *Context) IsPathEmpty() bool {
	return c.path.IsEmpty()
}

// Path returns a copy of the current path in device space.
func (c *Context) Path() *Path {
	return c.path.Clone()
}

// MoveTo starts a new figure at (x, y) in user space.
func (c *Context) MoveTo(x, y float64) {
	p := c.CTM().TransformPoint(Pt(x, y))
	c.path.MoveTo(p.X, p.Y)
}

// AddLineTo adds a line to (x, y) in user space.
func (c *Context) AddLineTo(x, y float64) {
	p := c.CTM().TransformPoint(Pt(x, y))
	c.path.LineTo(p.X, p.Y)
}

// AddQuadCurveTo adds a quadratic curve in user space.
func (c *Context) AddQuadCurveTo(cpx, cpy, x, y float64) {
	m := c.CTM()
	cp := m.TransformPoint(Pt(cpx, cpy))
	p := m.TransformPoint(Pt(x, y))
	c.path.QuadTo(cp.X, cp.Y, p.X, p.Y)
}

// AddCurveTo adds a cubic curve in user space.
func (c *Context) AddCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	m := c.CTM()
	cp1 := m.TransformPoint(Pt(cp1x, cp1y))
	cp2 := m.TransformPoint(Pt(cp2x, cp2y))
	p := m.TransformPoint(Pt(x, y))
	c.path.CubicTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p.X, p.Y)
}

// ClosePath closes the current figure.
func (c *Context) ClosePath() {
	c.path.Close()
}

// AddRect adds a rectangle in user space as a closed figure.
func (c *Context) AddRect(r Rect) {
	p := NewPath()
	p.AddRect(r)
	c.AddPath(p)
}

// AddEllipseInRect adds the ellipse inscribed in r (user space).
func (c *Context) AddEllipseInRect(r Rect) {
	p := NewPath()
	p.AddEllipseInRect(r)
	c.AddPath(p)
}

// AddPath adds the figures of a user space path.
func (c *Context) AddPath(p *Path) {
	if p == nil {
		return
	}
	c.path.AddPath(p.Transform(c.CTM()))
}

// ClipStack returns the context's clip stack. Pushing onto it directly is
// equivalent to the Clip methods; entries are still only released by
// RestoreGState.
func (c *Context) ClipStack() *ClipStack {
	return c.clips
}
