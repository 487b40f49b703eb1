package quartz

import (
	"fmt"
	"image"

	"github.com/gogpu/quartz/internal/clip"
)

// ClipEntry is one clip operation: either a geometry or a mask image
// stretched over a rectangle.
type ClipEntry struct {
	geometry *Geometry
	rect     Rect
	mask     *MaskImage
	isMask   bool
}

// GeometryClip returns an entry clipping to the area g encloses under its
// fill mode.
func GeometryClip(g *Geometry) ClipEntry {
	return ClipEntry{geometry: g}
}

// MaskClip returns an entry clipping through mask, whose pixels are
// stretched over rect. Row 0 of the mask lies along the top of rect.
func MaskClip(rect Rect, mask *MaskImage) ClipEntry {
	return ClipEntry{rect: rect, mask: mask, isMask: true}
}

// IsMask reports whether the entry is a mask clip.
func (e ClipEntry) IsMask() bool {
	return e.isMask
}

// savedClipState is one SaveState record.
type savedClipState struct {
	depth int
	ctm   AffineTransform
}

// ClipStack is the ordered set of clip regions of a drawing context, in
// device space.
//
// Every entry is resolved into an immutable device region when it is
// pushed, using the transform in effect at that moment. The visible
// opacity of a pixel is the product of the opacity of every region, so a
// push can only shrink the visible area. Entries are removed only by
// RestoreState.
//
// A ClipStack is not safe for concurrent use.
type ClipStack struct {
	regions *clip.Stack
	ctm     AffineTransform
	saved   []savedClipState
	factory Factory
	quality InterpolationQuality
}

// NewClipStack creates an empty clip stack for a width x height device.
// A nil factory selects the software factory.
func NewClipStack(width, height int, factory Factory) *ClipStack {
	if factory == nil {
		factory = defaultFactory
	}
	return &ClipStack{
		regions: clip.NewStack(image.Rect(0, 0, max(width, 0), max(height, 0))),
		ctm:     Identity(),
		factory: factory,
	}
}

// SetInterpolationQuality sets how mask clips pushed afterwards are
// resampled.
func (s *ClipStack) SetInterpolationQuality(q InterpolationQuality) {
	s.quality = q
}

// InterpolationQuality returns the quality used for mask clips.
func (s *ClipStack) InterpolationQuality() InterpolationQuality {
	return s.quality
}

// Transform returns the current transform from user to device space.
func (s *ClipStack) Transform() AffineTransform {
	return s.ctm
}

// SetTransform replaces the current transform. Entries already pushed
// are not affected.
func (s *ClipStack) SetTransform(m AffineTransform) {
	s.ctm = m
}

// ApplyTransform concatenates m onto the current transform: m is applied
// to user coordinates before the existing transform. Entries already
// pushed are not affected.
func (s *ClipStack) ApplyTransform(m AffineTransform) {
	s.ctm = m.Concat(s.ctm)
}

// PushClip resolves entry under the current transform and adds it on top
// of the stack. On error the stack is left unchanged.
//
// A geometry that is an axis-aligned rectangle in device space is clipped
// analytically. Other geometries are rasterised; even-odd geometries are
// first converted to an equivalent winding geometry. Masks are resampled
// into device space with the current interpolation quality.
func (s *ClipStack) PushClip(entry ClipEntry) error {
	return s.push(entry, s.ctm)
}

// push adds entry resolved through ctm instead of the current transform.
func (s *ClipStack) push(entry ClipEntry, ctm AffineTransform) error {
	if !ctm.IsFinite() {
		return fmt.Errorf("%w: non-finite transform", ErrGeometry)
	}

	var (
		region clip.Region
		err    error
	)
	if entry.IsMask() {
		region, err = s.maskRegion(entry.rect, entry.mask, ctm)
	} else {
		region, err = s.geometryRegion(entry.geometry, ctm)
	}
	if err != nil {
		Logger().Warn("quartz: clip push failed", "depth", s.regions.Depth(), "err", err)
		return err
	}

	s.regions.Push(region)
	return nil
}

func (s *ClipStack) geometryRegion(g *Geometry, ctm AffineTransform) (clip.Region, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrGeometry)
	}
	if !g.path.validate() {
		return nil, fmt.Errorf("%w: non-finite coordinate", ErrGeometry)
	}

	dg := g.Transform(ctm)
	if r, ok := dg.AxisAlignedRect(); ok {
		l, t, rt, b := r.Edges()
		Logger().Debug("quartz: rectangle clip", "rect", r, "depth", s.regions.Depth()+1)
		return clip.NewRectRegion(l, t, rt, b), nil
	}

	if dg.mode != FillModeWinding {
		var err error
		if dg, err = ConvertFillMode(dg, FillModeWinding); err != nil {
			return nil, err
		}
	}

	polys := dg.polygons()
	bounds := dg.Bounds().Pixels().Intersect(s.regions.Canvas())
	cov := image.NewAlpha(bounds)
	if !bounds.Empty() && len(polys) > 0 {
		fillPolygons(s.factory, cov, polys)
	}

	Logger().Debug("quartz: path clip", "bounds", bounds, "figures", len(polys), "depth", s.regions.Depth()+1)
	return clip.NewMaskRegion(cov), nil
}

func (s *ClipStack) maskRegion(rect Rect, mask *MaskImage, ctm AffineTransform) (clip.Region, error) {
	if mask == nil {
		return nil, fmt.Errorf("%w: nil mask", ErrInvalidMask)
	}
	rect = rect.Standardize()

	// Mask pixel (i, j) covers the user rectangle starting at
	// rect.X + i*W/width, rect.Y + j*H/height.
	m := Scale(rect.W/float64(mask.Width()), rect.H/float64(mask.Height())).
		Concat(Translate(rect.X, rect.Y)).
		Concat(ctm)
	if !m.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite mask placement", ErrGeometry)
	}

	var bounds image.Rectangle
	if _, ok := m.Invert(); ok {
		bounds = RectFromImage(mask.Bounds()).ApplyTransform(m).Pixels().Intersect(s.regions.Canvas())
	}
	cov := image.NewAlpha(bounds)
	if !bounds.Empty() {
		s.factory.Resample(cov, m, mask.alpha, mask.alpha.Bounds(), s.quality)
	}

	Logger().Debug("quartz: mask clip",
		"kind", mask.Kind(), "bounds", bounds, "quality", s.quality, "depth", s.regions.Depth()+1)
	return clip.NewMaskRegion(cov), nil
}

// Depth returns the number of active clip entries.
func (s *ClipStack) Depth() int {
	return s.regions.Depth()
}

// Bounds returns the device pixels outside of which nothing is visible.
func (s *ClipStack) Bounds() image.Rectangle {
	return s.regions.Bounds()
}

// Coverage returns the visible opacity (0-255) of device pixel (x, y):
// the product of every active entry's opacity.
func (s *ClipStack) Coverage(x, y int) uint8 {
	return s.regions.Coverage(x, y)
}

// Resolve returns the visible opacity of every pixel in bounds.
func (s *ClipStack) Resolve(bounds image.Rectangle) *image.Alpha {
	dst := image.NewAlpha(bounds)
	s.regions.Resolve(dst)
	return dst
}

// ResolveInto writes the visible opacity of every pixel of dst.Rect into
// dst, overwriting its previous contents.
func (s *ClipStack) ResolveInto(dst *image.Alpha) {
	s.regions.Resolve(dst)
}

// SaveState records the current depth and transform.
func (s *ClipStack) SaveState() {
	s.saved = append(s.saved, savedClipState{depth: s.regions.Depth(), ctm: s.ctm})
}

// RestoreState discards every entry pushed since the matching SaveState
// and reverts the transform. Calling it without a matching SaveState is a
// programming error and panics with an error wrapping ErrStateMismatch.
func (s *ClipStack) RestoreState() {
	n := len(s.saved)
	if n == 0 {
		panic(fmt.Errorf("%w: RestoreState without SaveState", ErrStateMismatch))
	}
	st := s.saved[n-1]
	s.saved = s.saved[:n-1]

	s.regions.Truncate(st.depth)
	s.ctm = st.ctm
}

// SavedDepth returns the number of SaveState calls not yet restored.
func (s *ClipStack) SavedDepth() int {
	return len(s.saved)
}

// Reset removes every entry and saved state and resets the transform.
func (s *ClipStack) Reset() {
	s.regions.Reset(s.regions.Canvas())
	s.saved = s.saved[:0]
	s.ctm = Identity()
}
