package image

import (
	"errors"
	"image"
	"image/color"
)

// MaxDimension is the largest width or height a buffer may have.
const MaxDimension = 1 << 15

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrTooLarge is returned when width or height exceeds MaxDimension.
	ErrTooLarge = errors.New("image: dimensions too large")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// ImageBuf is a pixel buffer with an explicit stride.
//
// As an image.Image an ImageBuf reports per-pixel opacity: the alpha
// channel for FormatBGRAPremul and the gray value for FormatGray8. This is
// the view the clip pipeline samples when it resamples a mask.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

func checkDimensions(width, height int, format Format) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if width > MaxDimension || height > MaxDimension {
		return ErrTooLarge
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	return nil
}

// NewImageBuf creates a new zeroed image buffer with the given dimensions
// and format.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if err := checkDimensions(width, height, format); err != nil {
		return nil, err
	}

	stride := format.RowBytes(width)
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*ImageBuf, error) {
	if err := checkDimensions(width, height, format); err != nil {
		return nil, err
	}

	minStride := format.RowBytes(width)
	if stride < minStride {
		return nil, ErrInvalidStride
	}

	// The last row only needs its pixels, not the padding.
	requiredSize := stride*(height-1) + minStride
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &ImageBuf{
		data:   newData,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	end := start + b.format.RowBytes(b.width)
	return b.data[start:end]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// Opacity returns the mask value of pixel (x, y): the alpha byte for
// BGRA buffers, the gray byte for gray buffers. Out of bounds pixels are
// fully transparent.
func (b *ImageBuf) Opacity(x, y int) uint8 {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0
	}
	if b.format == FormatBGRAPremul {
		return b.data[off+3]
	}
	return b.data[off]
}

// AlphaPlane returns the opacity of every pixel as a new *image.Alpha
// anchored at the origin.
func (b *ImageBuf) AlphaPlane() *image.Alpha {
	a := image.NewAlpha(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		row := b.RowBytes(y)
		dst := a.Pix[y*a.Stride : y*a.Stride+b.width]
		switch b.format {
		case FormatGray8:
			copy(dst, row)
		case FormatBGRAPremul:
			for x := range dst {
				dst[x] = row[x*4+3]
			}
		}
	}
	return a
}

// Bounds implements image.Image.
func (b *ImageBuf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements image.Image.
func (b *ImageBuf) ColorModel() color.Model {
	return color.AlphaModel
}

// At implements image.Image, returning the opacity at (x, y).
func (b *ImageBuf) At(x, y int) color.Color {
	return color.Alpha{A: b.Opacity(x, y)}
}
