package main

import (
	"fmt"
	"math"

	"github.com/gogpu/quartz"
)

// shape identifies one of the generated clip masks.
type shape uint8

const (
	shapeSquare shape = iota
	shapeDiamond
	shapeRectangle
)

var shapes = []shape{shapeSquare, shapeDiamond, shapeRectangle}

// kinds lists the mask kinds each shape is generated as.
var kinds = []quartz.MaskKind{quartz.MaskLuminance, quartz.MaskAlpha}

func (s shape) String() string {
	switch s {
	case shapeSquare:
		return "sq"
	case shapeDiamond:
		return "di"
	case shapeRectangle:
		return "rct"
	default:
		return "unk"
	}
}

// other returns the shape stacked on top of s in the stacked scenarios.
func (s shape) other() shape {
	if s == shapeSquare {
		return shapeDiamond
	}
	return shapeSquare
}

func kindName(k quartz.MaskKind) string {
	if k == quartz.MaskAlpha {
		return "alpha"
	}
	return "mask"
}

func otherKind(k quartz.MaskKind) quartz.MaskKind {
	if k == quartz.MaskAlpha {
		return quartz.MaskLuminance
	}
	return quartz.MaskAlpha
}

type maskKey struct {
	shape shape
	kind  quartz.MaskKind
}

// maskSet holds every generated mask. Masks are immutable and shared by
// all scenarios.
type maskSet map[maskKey]*quartz.MaskImage

func (m maskSet) get(s shape, k quartz.MaskKind) *quartz.MaskImage {
	return m[maskKey{s, k}]
}

// generator draws one mask shape into a fresh mask context.
type generator struct {
	size quartz.Size
	draw func(dc *quartz.Context, size quartz.Size, kind quartz.MaskKind) error
}

var generators = map[shape]generator{
	shapeSquare:    {quartz.Sz(128, 128), squareMask(quartz.Identity())},
	shapeDiamond:   {quartz.Sz(128, 128), squareMask(quartz.Rotate(math.Pi / 4))},
	shapeRectangle: {quartz.Sz(256, 128), gradientMask},
}

func buildMasks() (maskSet, error) {
	masks := make(maskSet, len(shapes)*len(kinds))
	for _, s := range shapes {
		gen := generators[s]
		for _, k := range kinds {
			m, err := quartz.BuildMask(gen.size, k, func(dc *quartz.Context) error {
				return gen.draw(dc, gen.size, k)
			})
			if err != nil {
				return nil, fmt.Errorf("build %v %s mask: %w", s, kindName(k), err)
			}
			masks[maskKey{s, k}] = m
		}
	}
	return masks, nil
}

// squareMask draws a square frame with an even-odd square hole, turned by
// m around the center. One quarter of the frame is drawn black.
func squareMask(m quartz.AffineTransform) func(*quartz.Context, quartz.Size, quartz.MaskKind) error {
	return func(dc *quartz.Context, size quartz.Size, kind quartz.MaskKind) error {
		w, h := size.W, size.H
		if kind == quartz.MaskLuminance {
			dc.SetRGBFillColor(1, 1, 1, 1)
			if err := dc.FillRect(quartz.Rect{W: w, H: h}); err != nil {
				return err
			}
		}

		dc.TranslateCTM(w/2, h/2)
		dc.ConcatCTM(m)
		dc.TranslateCTM(-w/2, -h/2)

		dc.BeginPath()
		dc.AddRect(quartz.Rect{X: w / 4, Y: h / 4, W: w / 2, H: h / 2})
		dc.AddRect(quartz.Rect{X: w * .75 / 2, Y: h * .75 / 2, W: w / 4, H: h / 4})
		if err := dc.EOClip(); err != nil {
			return err
		}

		alpha := 1.0
		if kind == quartz.MaskAlpha {
			alpha = 0.5
		}
		dc.SetRGBFillColor(0.5, 0.5, 0.5, alpha)
		if err := dc.FillRect(quartz.Rect{W: w, H: h}); err != nil {
			return err
		}

		dc.SaveGState()
		defer dc.RestoreGState()
		dc.AddRect(quartz.Rect{W: w / 2, H: h / 2})
		if err := dc.Clip(); err != nil {
			return err
		}
		dc.SetRGBFillColor(0, 0, 0, 1)
		return dc.FillRect(quartz.Rect{W: w, H: h})
	}
}

// gradientMask draws 256 one pixel wide vertical lines from black to
// white. Alpha masks fade from opaque to transparent instead.
func gradientMask(dc *quartz.Context, size quartz.Size, kind quartz.MaskKind) error {
	for i := range 256 {
		v := float64(i) / 255
		alpha := 1.0
		if kind == quartz.MaskAlpha {
			alpha = 1 - v
		}
		dc.SetRGBStrokeColor(v, v, v, alpha)
		x := float64(i) + .5
		if err := dc.StrokeLineSegments([]quartz.Point{quartz.Pt(x, 0), quartz.Pt(x, size.H)}); err != nil {
			return err
		}
	}
	return nil
}

// solidMask returns an opaque alpha mask of the given size.
func solidMask(size quartz.Size) (*quartz.MaskImage, error) {
	return quartz.BuildShapeMask(quartz.RectShape(quartz.Rect{W: size.W, H: size.H}, quartz.Identity()), size, quartz.MaskAlpha)
}
