package quartz

import (
	"fmt"
	"image"

	"github.com/gogpu/quartz/internal/raster"
)

// Fill paints the area the current path encloses under the winding rule
// with the fill color, then discards the path.
func (c *Context) Fill() error {
	return c.fillPath(FillModeWinding)
}

// EOFill is like Fill but uses the even-odd rule.
func (c *Context) EOFill() error {
	return c.fillPath(FillModeEvenOdd)
}

func (c *Context) fillPath(mode FillMode) error {
	g := &Geometry{path: c.path.Clone(), mode: mode}
	c.path.Clear()
	return c.fillDevice(g, c.state.fill)
}

// FillRect paints a user space rectangle with the fill color. The current
// path is not affected.
func (c *Context) FillRect(r Rect) error {
	return c.fillDevice(RectGeometry(r.Standardize()).Transform(c.CTM()), c.state.fill)
}

// FillEllipseInRect paints the ellipse inscribed in a user space
// rectangle with the fill color. The current path is not affected.
func (c *Context) FillEllipseInRect(r Rect) error {
	return c.fillDevice(EllipseGeometry(r).Transform(c.CTM()), c.state.fill)
}

// FillGeometry paints the area a user space geometry encloses with the
// fill color.
func (c *Context) FillGeometry(g *Geometry) error {
	if g == nil {
		return fmt.Errorf("%w: nil geometry", ErrGeometry)
	}
	return c.fillDevice(g.Transform(c.CTM()), c.state.fill)
}

// StrokeLineSegments strokes independent line segments with the stroke
// color and line width: points[0] to points[1], points[2] to points[3]
// and so on. An odd trailing point is ignored. Segment ends are butt
// capped.
func (c *Context) StrokeLineSegments(points []Point) error {
	half := c.state.lineWidth / 2
	p := NewPath()
	for i := 0; i+1 < len(points); i += 2 {
		a, b := points[i], points[i+1]
		d := b.Sub(a)
		length := d.Length()
		if length == 0 || half == 0 {
			continue
		}
		n := Pt(-d.Y, d.X).Mul(half / length)

		// Every quad gets the same orientation so that overlapping
		// segments merge under the winding rule instead of cancelling.
		quad := [4]Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
		if signedArea(quad[:]) < 0 {
			quad[1], quad[3] = quad[3], quad[1]
		}
		p.MoveTo(quad[0].X, quad[0].Y)
		p.LineTo(quad[1].X, quad[1].Y)
		p.LineTo(quad[2].X, quad[2].Y)
		p.LineTo(quad[3].X, quad[3].Y)
		p.Close()
	}
	if !p.validate() {
		return fmt.Errorf("%w: non-finite stroke segment", ErrGeometry)
	}
	return c.fillDevice(&Geometry{path: p.Transform(c.CTM()), mode: FillModeWinding}, c.state.stroke)
}

// signedArea returns twice the signed area of a polygon; positive when
// clockwise with y pointing down.
func signedArea(poly []Point) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.Cross(q)
	}
	return a
}

// fillDevice composites col through the coverage of a device space
// geometry and the clip.
func (c *Context) fillDevice(g *Geometry, col RGBA) error {
	if !g.path.validate() {
		return fmt.Errorf("%w: non-finite coordinate", ErrGeometry)
	}
	if g.mode != FillModeWinding {
		var err error
		if g, err = ConvertFillMode(g, FillModeWinding); err != nil {
			return err
		}
	}

	bounds := g.Bounds().Pixels().Intersect(c.clips.Bounds())
	if bounds.Empty() {
		return nil
	}

	cov := image.NewAlpha(bounds)
	if r, ok := g.AxisAlignedRect(); ok {
		l, t, rt, b := r.Edges()
		raster.FillRect(cov, l, t, rt, b)
	} else {
		fillPolygons(c.factory, cov, g.polygons())
	}
	clipCov := c.clipScratch(bounds)
	c.clips.ResolveInto(clipCov)

	if c.gray != nil {
		compositeGray(c.gray, cov, clipCov, col)
	} else {
		compositeRGBA(c.rgba, cov, clipCov, col)
	}
	return nil
}

// clipScratch returns an alpha image over bounds backed by a buffer reused
// across fills. Its contents are undefined.
func (c *Context) clipScratch(bounds image.Rectangle) *image.Alpha {
	n := bounds.Dx() * bounds.Dy()
	if cap(c.clipBuf) < n {
		c.clipBuf = make([]uint8, n)
	}
	return &image.Alpha{Pix: c.clipBuf[:n], Stride: bounds.Dx(), Rect: bounds}
}

// compositeRGBA blends a premultiplied color source-over into dst,
// weighted by the product of cov and clip.
func compositeRGBA(dst *image.RGBA, cov, clip *image.Alpha, col RGBA) {
	src := col.Premultiplied()
	b := cov.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(cov.Pix[cov.PixOffset(x, y)]) * uint32(clip.Pix[clip.PixOffset(x, y)]) / 255
			if m == 0 {
				continue
			}
			sa := uint32(src.A) * m / 255
			inv := 255 - sa

			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			p[0] = uint8(uint32(src.R)*m/255 + uint32(p[0])*inv/255)
			p[1] = uint8(uint32(src.G)*m/255 + uint32(p[1])*inv/255)
			p[2] = uint8(uint32(src.B)*m/255 + uint32(p[2])*inv/255)
			p[3] = uint8(sa + uint32(p[3])*inv/255)
		}
	}
}

// compositeGray blends the luminance of col into an opaque gray bitmap.
func compositeGray(dst *image.Gray, cov, clip *image.Alpha, col RGBA) {
	sa := uint32(unit8(col.A))
	sy := uint32(unit8(col.Luminance())) * sa / 255
	b := cov.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(cov.Pix[cov.PixOffset(x, y)]) * uint32(clip.Pix[clip.PixOffset(x, y)]) / 255
			if m == 0 {
				continue
			}
			inv := 255 - sa*m/255
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8(min(sy*m/255+uint32(dst.Pix[i])*inv/255, 255))
		}
	}
}
