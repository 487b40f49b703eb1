// Package quartz implements the geometry and clipping core of a
// CoreGraphics-style 2D drawing context.
//
// # Overview
//
// A [Context] draws into an RGBA or gray bitmap. Drawing is limited by a
// stack of clip entries: path geometries and mask images. Every entry is
// resolved into a device-space region at the moment it is pushed, so
// later transform changes never move an existing clip. The visible
// opacity of a pixel is the product of the opacity of every active entry.
//
//	dc, _ := quartz.NewContext(256, 256)
//	dc.SaveGState()
//	dc.ClipToRect(quartz.Rect{X: 32, Y: 32, W: 128, H: 128})
//	dc.SetRGBFillColor(1, 0, 0, 1)
//	dc.FillRect(quartz.Rect{W: 256, H: 256})
//	dc.RestoreGState()
//
// # Geometry
//
// A [Geometry] is a [Path] plus a [FillMode]. Geometries stream themselves
// into a [GeometrySink]; [AxisAlignedRectangleChecker] is the sink used
// to detect plain rectangles, which are clipped analytically instead of
// being rasterised. [ConvertFillMode] rewrites an even-odd geometry as an
// equivalent winding geometry (and back).
//
// # Masks
//
// [BuildMask] renders into a fresh context and freezes the result as an
// immutable [MaskImage]. Alpha masks use the alpha channel of a
// premultiplied BGRA buffer; luminance masks use the gray value.
//
// # Coordinate System
//
// The origin is the top-left corner of the bitmap, X increases right and
// Y increases down. Row 0 of a mask image is drawn at the top of the
// rectangle it is clipped to.
package quartz
