package quartz

import (
	"image"
)

// Clip intersects the clip with the area the current path encloses under
// the winding rule, then discards the path.
// An empty path clips everything away.
func (c *Context) Clip() error {
	return c.clipPath(FillModeWinding)
}

// EOClip is like Clip but uses the even-odd rule.
func (c *Context) EOClip() error {
	return c.clipPath(FillModeEvenOdd)
}

func (c *Context) clipPath(mode FillMode) error {
	g := &Geometry{path: c.path.Clone(), mode: mode}
	c.path.Clear()

	// The current path is already in device space.
	return c.clips.push(GeometryClip(g), Identity())
}

// ClipToRect intersects the clip with a user space rectangle.
func (c *Context) ClipToRect(r Rect) error {
	return c.clips.PushClip(GeometryClip(RectGeometry(r.Standardize())))
}

// ClipToRects intersects the clip with the union of user space
// rectangles. The current path is not affected.
func (c *Context) ClipToRects(rects []Rect) error {
	p := NewPath()
	for _, r := range rects {
		p.AddRect(r.Standardize())
	}
	return c.clips.PushClip(GeometryClip(&Geometry{path: p, mode: FillModeWinding}))
}

// ClipToMask intersects the clip with a mask stretched over a user space
// rectangle. Alpha masks clip by their alpha channel, luminance masks by
// their gray value. Row 0 of the mask lies along the top of rect.
func (c *Context) ClipToMask(rect Rect, mask *MaskImage) error {
	return c.clips.PushClip(MaskClip(rect, mask))
}

// ClipDepth returns the number of clips pushed and not yet discarded by
// RestoreGState.
func (c *Context) ClipDepth() int {
	return c.clips.Depth()
}

// ClipBoundingBox returns the user space bounding box of the visible
// area.
func (c *Context) ClipBoundingBox() Rect {
	box := RectFromImage(c.clips.Bounds())
	if box.IsEmpty() {
		return Rect{}
	}
	inv, ok := c.CTM().Invert()
	if !ok {
		return box
	}
	return box.ApplyTransform(inv)
}

// ResolveClip returns the visible opacity of every device pixel.
func (c *Context) ResolveClip() *image.Alpha {
	return c.clips.Resolve(image.Rect(0, 0, c.width, c.height))
}
