package quartz

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	intImage "github.com/gogpu/quartz/internal/image"
)

// MaskKind tells how a mask image's pixels are read as opacity.
type MaskKind uint8

const (
	// MaskAlpha is a 32-bit premultiplied BGRA buffer; the alpha channel
	// is the opacity.
	MaskAlpha MaskKind = iota

	// MaskLuminance is an 8-bit gray buffer; the gray value is the
	// opacity, so white is fully visible and black fully clipped.
	MaskLuminance
)

// String returns the kind name.
func (k MaskKind) String() string {
	switch k {
	case MaskAlpha:
		return "Alpha"
	case MaskLuminance:
		return "Luminance"
	default:
		return "Unknown"
	}
}

func (k MaskKind) format() (intImage.Format, bool) {
	switch k {
	case MaskAlpha:
		return intImage.FormatBGRAPremul, true
	case MaskLuminance:
		return intImage.FormatGray8, true
	default:
		return 0, false
	}
}

// MaskImage is an immutable per-pixel opacity buffer used to clip.
// A MaskImage may be shared by any number of contexts and goroutines.
type MaskImage struct {
	buf   *intImage.ImageBuf
	kind  MaskKind
	alpha *image.Alpha
}

// NewMaskImage creates a mask from a copy of raw pixel data laid out as
// rows of bytesPerRow bytes. Alpha masks need 8 bits per component and 32
// bits per pixel; luminance masks 8 and 8.
//
// Layout errors wrap ErrInvalidMask; sizes beyond what can be allocated
// wrap ErrAllocation.
func NewMaskImage(width, height, bitsPerComponent, bitsPerPixel, bytesPerRow int, data []byte, kind MaskKind) (*MaskImage, error) {
	want, ok := kind.format()
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidMask, kind)
	}
	format, ok := intImage.FormatFor(bitsPerComponent, bitsPerPixel)
	if !ok || format != want {
		return nil, fmt.Errorf("%w: %d bits per component and %d bits per pixel do not describe a %v mask",
			ErrInvalidMask, bitsPerComponent, bitsPerPixel, kind)
	}

	buf, err := intImage.FromRaw(data, width, height, format, bytesPerRow)
	if err != nil {
		return nil, maskError(err, ErrInvalidMask)
	}
	return newMask(buf.Clone(), kind), nil
}

// MaskFromImage creates a mask of the given kind from an image. For an
// alpha mask the opacity is the image's alpha; for a luminance mask it is
// the image's gray value.
func MaskFromImage(img image.Image, kind MaskKind) (*MaskImage, error) {
	format, ok := kind.format()
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidMask, kind)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidMask)
	}
	buf, err := intImage.FromStdImage(img, format)
	if err != nil {
		return nil, maskError(err, ErrInvalidMask)
	}
	return newMask(buf, kind), nil
}

func newMask(buf *intImage.ImageBuf, kind MaskKind) *MaskImage {
	return &MaskImage{buf: buf, kind: kind, alpha: buf.AlphaPlane()}
}

// maskError wraps a buffer error in the matching quartz sentinel. Sizes
// too large to allocate are ErrAllocation; anything else is fallback.
func maskError(err, fallback error) error {
	if errors.Is(err, intImage.ErrTooLarge) {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

// Kind returns the mask kind.
func (m *MaskImage) Kind() MaskKind { return m.kind }

// Width returns the mask width in pixels.
func (m *MaskImage) Width() int { return m.buf.Width() }

// Height returns the mask height in pixels.
func (m *MaskImage) Height() int { return m.buf.Height() }

// BitsPerComponent returns the number of bits per color component.
func (m *MaskImage) BitsPerComponent() int { return m.buf.Format().BitsPerChannel() }

// BitsPerPixel returns the number of bits per pixel.
func (m *MaskImage) BitsPerPixel() int { return m.buf.Format().BitsPerPixel() }

// BytesPerRow returns the row stride of the pixel data.
func (m *MaskImage) BytesPerRow() int { return m.buf.Stride() }

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *MaskImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.buf.Width(), m.buf.Height())
}

// At returns the opacity (0-255) at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *MaskImage) At(x, y int) uint8 {
	return m.buf.Opacity(x, y)
}

// Opacity returns the opacity at (x, y) in [0, 1].
func (m *MaskImage) Opacity(x, y int) float64 {
	return float64(m.buf.Opacity(x, y)) / 255
}

// Alpha returns a copy of the opacity of every pixel.
func (m *MaskImage) Alpha() *image.Alpha {
	a := *m.alpha
	a.Pix = append([]uint8(nil), m.alpha.Pix...)
	return &a
}

// Bytes returns a copy of the raw pixel data.
func (m *MaskImage) Bytes() []byte {
	return append([]byte(nil), m.buf.Data()...)
}

// Image returns the mask pixels as an *image.RGBA (alpha masks) or
// *image.Gray (luminance masks).
func (m *MaskImage) Image() image.Image {
	return m.buf.ToStdImage()
}

// DeviceFormat returns the GPU texture format the mask's pixel data can be
// uploaded as without conversion.
func (m *MaskImage) DeviceFormat() gputypes.TextureFormat {
	return m.buf.Format().TextureFormat()
}
