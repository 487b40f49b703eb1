package clip

import "image"

// Stack manages the device clip regions of a drawing context.
// Entries are only ever added on top and removed from the top; the
// effective clip is the intersection of every entry.
type Stack struct {
	entries []entry
	canvas  image.Rectangle
	bounds  image.Rectangle
}

// entry represents a single clip operation in the stack.
type entry struct {
	prevBounds image.Rectangle
	region     Region
}

// NewStack creates a new clip stack for a canvas.
// With no entries every pixel of the canvas is visible.
func NewStack(canvas image.Rectangle) *Stack {
	return &Stack{
		entries: make([]entry, 0, 8), // Pre-allocate for common case
		canvas:  canvas,
		bounds:  canvas,
	}
}

// Push adds a region on top of the stack. The visible region becomes the
// intersection of the previous one and r.
func (s *Stack) Push(r Region) {
	s.entries = append(s.entries, entry{
		prevBounds: s.bounds,
		region:     r,
	})
	s.bounds = s.bounds.Intersect(r.Bounds())
}

// Pop removes the most recent region from the stack.
// If the stack is empty, this is a no-op.
func (s *Stack) Pop() {
	if len(s.entries) == 0 {
		return
	}
	s.Truncate(len(s.entries) - 1)
}

// Truncate removes entries until at most depth remain.
func (s *Stack) Truncate(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(s.entries) {
		return
	}
	s.bounds = s.entries[depth].prevBounds
	clear(s.entries[depth:])
	s.entries = s.entries[:depth]
}

// Depth returns the number of regions on the stack.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Canvas returns the device rectangle the stack was created for.
func (s *Stack) Canvas() image.Rectangle {
	return s.canvas
}

// Bounds returns the pixels outside of which nothing is visible.
// This is the intersection of the canvas and every region's bounds.
func (s *Stack) Bounds() image.Rectangle {
	return s.bounds
}

// IsVisible returns true if pixel (x, y) has non-zero coverage.
func (s *Stack) IsVisible(x, y int) bool {
	return s.Coverage(x, y) != 0
}

// Coverage returns the combined coverage value (0-255) at pixel (x, y).
// This multiplies the coverage from all regions in the stack.
func (s *Stack) Coverage(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(s.bounds) {
		return 0
	}

	coverage := uint16(255)
	for i := range s.entries {
		c := s.entries[i].region.Coverage(x, y)
		if c == 0 {
			return 0
		}
		// Multiply coverage: result = (coverage * c) / 255
		coverage = (coverage * uint16(c)) / 255
		if coverage == 0 {
			return 0
		}
	}

	return uint8(coverage)
}

// Resolve writes the combined coverage of every pixel of dst.Rect into
// dst. Pixels outside Bounds are set to zero.
func (s *Stack) Resolve(dst *image.Alpha) {
	clear(dst.Pix)

	vis := dst.Rect.Intersect(s.bounds)
	if vis.Empty() {
		return
	}
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(vis.Min.X, y) : dst.PixOffset(vis.Min.X, y)+vis.Dx()]
		for i := range row {
			row[i] = 255
		}
		for _, e := range s.entries {
			for i, c := range row {
				if c == 0 {
					continue
				}
				row[i] = uint8(uint16(c) * uint16(e.region.Coverage(vis.Min.X+i, y)) / 255)
			}
		}
	}
}

// Reset clears all entries and sets a new canvas.
func (s *Stack) Reset(canvas image.Rectangle) {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.canvas = canvas
	s.bounds = canvas
}
