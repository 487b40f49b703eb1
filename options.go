package quartz

// PixelFormat is the layout of a context's bitmap.
type PixelFormat uint8

const (
	// FormatRGBA is 8-bit RGBA with premultiplied alpha (*image.RGBA).
	FormatRGBA PixelFormat = iota

	// FormatGray is 8-bit gray without alpha (*image.Gray).
	FormatGray
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatGray:
		return "Gray"
	default:
		return "Unknown"
	}
}

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Default RGBA bitmap and software factory
//	dc, err := quartz.NewContext(800, 600)
//
//	// Gray bitmap, bilinear mask resampling
//	dc, err := quartz.NewContext(800, 600,
//	    quartz.WithPixelFormat(quartz.FormatGray),
//	    quartz.WithInterpolationQuality(quartz.InterpolationHigh))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	format  PixelFormat
	factory Factory
	quality InterpolationQuality
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		format:  FormatRGBA,
		factory: nil, // Will be set to the software factory if nil
		quality: InterpolationDefault,
	}
}

// WithPixelFormat sets the layout of the context's bitmap.
func WithPixelFormat(f PixelFormat) ContextOption {
	return func(o *contextOptions) {
		o.format = f
	}
}

// WithFactory sets the factory used to rasterise and resample.
// Use this to inject a custom implementation; nil keeps the software
// factory.
func WithFactory(f Factory) ContextOption {
	return func(o *contextOptions) {
		o.factory = f
	}
}

// WithInterpolationQuality sets the initial quality used to resample mask
// clips.
func WithInterpolationQuality(q InterpolationQuality) ContextOption {
	return func(o *contextOptions) {
		o.quality = q
	}
}
