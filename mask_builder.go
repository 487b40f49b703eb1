package quartz

import (
	"errors"
	"fmt"
	"math"

	intImage "github.com/gogpu/quartz/internal/image"
)

// ShapeDescriptor is a geometry drawn under a transform, used to generate
// a mask.
type ShapeDescriptor struct {
	Geometry  *Geometry
	Transform AffineTransform
}

// RectShape describes a rectangle.
func RectShape(r Rect, m AffineTransform) ShapeDescriptor {
	return ShapeDescriptor{Geometry: RectGeometry(r), Transform: m}
}

// EllipseShape describes the ellipse inscribed in r.
func EllipseShape(r Rect, m AffineTransform) ShapeDescriptor {
	return ShapeDescriptor{Geometry: EllipseGeometry(r), Transform: m}
}

// PathShape describes an arbitrary geometry.
func PathShape(g *Geometry, m AffineTransform) ShapeDescriptor {
	return ShapeDescriptor{Geometry: g, Transform: m}
}

// BuildMask renders a mask by running draw on a fresh context of the
// given size and snapshotting its bitmap.
//
// Alpha masks are drawn on an RGBA bitmap starting fully transparent and
// keep the alpha channel. Luminance masks are drawn on a gray bitmap
// starting black and keep the gray value. draw may fill, clip and
// save/restore freely; the context is closed afterwards and its clip
// state never leaks into other contexts.
func BuildMask(size Size, kind MaskKind, draw func(*Context) error, opts ...ContextOption) (*MaskImage, error) {
	m, err := buildMask(size, kind, draw, opts)
	if err != nil {
		Logger().Warn("quartz: mask build failed", "size", size, "kind", kind, "err", err)
		return nil, err
	}
	return m, nil
}

func buildMask(size Size, kind MaskKind, draw func(*Context) error, opts []ContextOption) (*MaskImage, error) {
	if draw == nil {
		return nil, fmt.Errorf("%w: nil draw function", ErrInvalidMask)
	}
	if _, ok := kind.format(); !ok {
		return nil, fmt.Errorf("%w: unknown mask kind %v", ErrInvalidMask, kind)
	}
	if !(size.W >= 1 && size.H >= 1) || size.W > intImage.MaxDimension || size.H > intImage.MaxDimension {
		return nil, fmt.Errorf("%w: mask size %vx%v", ErrAllocation, size.W, size.H)
	}

	format := FormatRGBA
	if kind == MaskLuminance {
		format = FormatGray
	}
	opts = append(opts[:len(opts):len(opts)], WithPixelFormat(format))

	dc, err := NewContext(int(math.Ceil(size.W)), int(math.Ceil(size.H)), opts...)
	if err != nil {
		return nil, err
	}

	drawErr := draw(dc)
	closeErr := dc.Close()
	if err := errors.Join(drawErr, closeErr); err != nil {
		return nil, fmt.Errorf("quartz: draw mask: %w", err)
	}

	mask, err := dc.MaskImage(kind)
	if err != nil {
		return nil, err
	}
	Logger().Debug("quartz: mask built", "width", mask.Width(), "height", mask.Height(), "kind", kind)
	return mask, nil
}

// BuildShapeMask renders a mask with shape filled white under its
// transform.
func BuildShapeMask(shape ShapeDescriptor, size Size, kind MaskKind, opts ...ContextOption) (*MaskImage, error) {
	if shape.Geometry == nil {
		err := fmt.Errorf("%w: nil shape geometry", ErrGeometry)
		Logger().Warn("quartz: mask build failed", "size", size, "kind", kind, "err", err)
		return nil, err
	}
	return BuildMask(size, kind, func(dc *Context) error {
		dc.ConcatCTM(shape.Transform)
		dc.SetFillColor(White)
		return dc.FillGeometry(shape.Geometry)
	}, opts...)
}
