package clip

import "image"

// MaskRegion is a clip region backed by a coverage buffer: a rasterised
// path or a resampled mask image.
type MaskRegion struct {
	mask   *image.Alpha
	bounds image.Rectangle
}

// NewMaskRegion takes ownership of mask; the caller must not modify it
// afterwards. Pixels outside mask.Rect have zero coverage.
func NewMaskRegion(mask *image.Alpha) *MaskRegion {
	return &MaskRegion{mask: mask, bounds: opaqueBounds(mask)}
}

// Bounds returns the smallest rectangle holding every non-zero pixel.
func (m *MaskRegion) Bounds() image.Rectangle {
	return m.bounds
}

// Coverage returns the coverage value at pixel (x, y).
func (m *MaskRegion) Coverage(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(m.bounds) {
		return 0
	}
	return m.mask.Pix[m.mask.PixOffset(x, y)]
}

// Mask returns the underlying coverage buffer. It must be treated as
// read-only.
func (m *MaskRegion) Mask() *image.Alpha {
	return m.mask
}

// opaqueBounds shrinks the buffer rectangle to its non-zero pixels.
func opaqueBounds(a *image.Alpha) image.Rectangle {
	r := a.Rect
	minX, minY := r.Max.X, r.Max.Y
	maxX, maxY := r.Min.X, r.Min.Y
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := a.Pix[a.PixOffset(r.Min.X, y) : a.PixOffset(r.Min.X, y)+r.Dx()]
		for i, v := range row {
			if v == 0 {
				continue
			}
			x := r.Min.X + i
			minX, maxX = min(minX, x), max(maxX, x+1)
			minY, maxY = min(minY, y), max(maxY, y+1)
		}
	}
	if maxX <= minX || maxY <= minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}
