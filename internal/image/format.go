// Package image provides the pixel buffers behind mask images.
//
// Buffers carry an explicit stride and one of the two layouts a mask can
// have: 8-bit gray (luminance) or 32-bit BGRA with premultiplied alpha.
package image

import "github.com/gogpu/gputypes"

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatBGRAPremul is 32-bit BGRA with premultiplied alpha (4 bytes per
	// pixel). Read as a little-endian 32-bit word the alpha is the most
	// significant byte.
	FormatBGRAPremul

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of color channels.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool

	// BitsPerChannel is the number of bits per color channel.
	BitsPerChannel int

	// Texture is the GPU texture format with the same memory layout.
	Texture gputypes.TextureFormat
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {
		BytesPerPixel:   1,
		Channels:        1,
		HasAlpha:        false,
		IsPremultiplied: false,
		BitsPerChannel:  8,
		Texture:         gputypes.TextureFormatR8Unorm,
	},
	FormatBGRAPremul: {
		BytesPerPixel:   4,
		Channels:        4,
		HasAlpha:        true,
		IsPremultiplied: true,
		BitsPerChannel:  8,
		Texture:         gputypes.TextureFormatBGRA8Unorm,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// BitsPerPixel returns the number of bits per pixel for this format.
func (f Format) BitsPerPixel() int {
	return f.Info().BytesPerPixel * 8
}

// Channels returns the number of color channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// BitsPerChannel returns the number of bits per color channel.
func (f Format) BitsPerChannel() int {
	return f.Info().BitsPerChannel
}

// TextureFormat returns the GPU texture format a buffer of this format can
// be uploaded as without conversion.
func (f Format) TextureFormat() gputypes.TextureFormat {
	return f.Info().Texture
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatBGRAPremul:
		return "BGRAPremul"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// FormatFor returns the format with the given component layout, as found
// in a mask description: 8 bits per component and either 8 bits (gray) or
// 32 bits (BGRA) per pixel.
func FormatFor(bitsPerComponent, bitsPerPixel int) (Format, bool) {
	if bitsPerComponent != 8 {
		return 0, false
	}
	switch bitsPerPixel {
	case 8:
		return FormatGray8, true
	case 32:
		return FormatBGRAPremul, true
	default:
		return 0, false
	}
}
