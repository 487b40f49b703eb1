package quartz

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/quartz/internal/path"
	"github.com/gogpu/quartz/internal/raster"
)

// InterpolationQuality selects how mask images are resampled into device
// space.
type InterpolationQuality uint8

const (
	// InterpolationDefault lets the factory choose. The software factory
	// uses nearest neighbor, so pixel-aligned masks stay exact.
	InterpolationDefault InterpolationQuality = iota

	// InterpolationNone samples the nearest source pixel.
	InterpolationNone

	// InterpolationLow uses a fast bilinear approximation.
	InterpolationLow

	// InterpolationMedium uses a fast bilinear approximation.
	InterpolationMedium

	// InterpolationHigh uses bilinear filtering.
	InterpolationHigh
)

// String returns the quality name.
func (q InterpolationQuality) String() string {
	switch q {
	case InterpolationDefault:
		return "Default"
	case InterpolationNone:
		return "None"
	case InterpolationLow:
		return "Low"
	case InterpolationMedium:
		return "Medium"
	case InterpolationHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Factory provides the raster operations the clip pipeline and drawing
// context are built on. A Factory is passed to contexts explicitly; there
// is no process-wide instance. Implementations must be safe for
// concurrent use.
type Factory interface {
	// FillCoverage writes into dst the anti-aliased coverage of the
	// closed figures under the nonzero winding rule, replacing previous
	// contents. Figures are in the coordinate space of dst.
	FillCoverage(dst *image.Alpha, figures [][]Point)

	// Resample draws the sr part of src into dst through m, which maps
	// src coordinates to dst coordinates. Pixels of dst not covered by
	// the transformed sr are left untouched.
	Resample(dst draw.Image, m AffineTransform, src image.Image, sr image.Rectangle, q InterpolationQuality)
}

// softwareFactory implements Factory on the CPU.
type softwareFactory struct{}

// NewSoftwareFactory returns a Factory that rasterises with
// golang.org/x/image/vector and resamples with golang.org/x/image/draw.
func NewSoftwareFactory() Factory {
	return softwareFactory{}
}

// defaultFactory is used by contexts created without WithFactory.
var defaultFactory = NewSoftwareFactory()

// FillCoverage implements Factory.
func (softwareFactory) FillCoverage(dst *image.Alpha, figures [][]Point) {
	polys := make([]path.Polygon, 0, len(figures))
	for _, fig := range figures {
		poly := make(path.Polygon, len(fig))
		for i, p := range fig {
			poly[i] = p.internal()
		}
		polys = append(polys, poly)
	}
	raster.NewRasterizer().FillNonZero(dst, polys)
}

// Resample implements Factory.
func (softwareFactory) Resample(dst draw.Image, m AffineTransform, src image.Image, sr image.Rectangle, q InterpolationQuality) {
	interpolator(q).Transform(dst, m.aff3(), src, sr, draw.Src, nil)
}

// interpolator maps a quality to an x/image/draw interpolator.
func interpolator(q InterpolationQuality) draw.Interpolator {
	switch q {
	case InterpolationLow, InterpolationMedium:
		return draw.ApproxBiLinear
	case InterpolationHigh:
		return draw.BiLinear
	default:
		return draw.NearestNeighbor
	}
}

// fillPolygons rasterises internal polygons through f.
func fillPolygons(f Factory, dst *image.Alpha, polys []path.Polygon) {
	figures := make([][]Point, len(polys))
	for i, poly := range polys {
		fig := make([]Point, len(poly))
		for j, p := range poly {
			fig[j] = Point{X: p.X, Y: p.Y}
		}
		figures[i] = fig
	}
	f.FillCoverage(dst, figures)
}
