package image

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// FromStdImage converts a standard library image into a buffer of the
// given format. BGRA buffers hold premultiplied color; gray buffers hold
// the luminance of the image composited over black.
func FromStdImage(img image.Image, format Format) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy(), format)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatGray8:
		if gray, ok := img.(*image.Gray); ok {
			for y := range buf.height {
				off := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				copy(buf.RowBytes(y), gray.Pix[off:off+buf.width])
			}
			return buf, nil
		}
		for y := range buf.height {
			row := buf.RowBytes(y)
			for x := range buf.width {
				c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				row[x] = c.Y
			}
		}

	case FormatBGRAPremul:
		if rgba, ok := img.(*image.RGBA); ok {
			for y := range buf.height {
				off := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				swizzle(buf.RowBytes(y), rgba.Pix[off:off+buf.width*4])
			}
			return buf, nil
		}
		for y := range buf.height {
			row := buf.RowBytes(y)
			for x := range buf.width {
				// RGBA() is premultiplied with 16 bits per channel.
				r, g, bl, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				row[x*4] = byte(bl >> 8)
				row[x*4+1] = byte(g >> 8)
				row[x*4+2] = byte(r >> 8)
				row[x*4+3] = byte(a >> 8)
			}
		}
	}

	return buf, nil
}

// ToStdImage converts the ImageBuf to a standard library image:
// *image.Gray for gray buffers and *image.RGBA for BGRA buffers.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray

	default:
		rgba := image.NewRGBA(rect)
		for y := range b.height {
			swizzle(rgba.Pix[y*rgba.Stride:y*rgba.Stride+b.width*4], b.RowBytes(y))
		}
		return rgba
	}
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// swizzle copies 4-byte pixels from src to dst exchanging the first and
// third byte (RGBA <-> BGRA).
func swizzle(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}
