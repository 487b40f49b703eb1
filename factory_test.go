package quartz

import (
	"image"
	"testing"

	"golang.org/x/image/draw"
)

func TestInterpolator(t *testing.T) {
	tests := []struct {
		q    InterpolationQuality
		want draw.Interpolator
	}{
		{InterpolationDefault, draw.NearestNeighbor},
		{InterpolationNone, draw.NearestNeighbor},
		{InterpolationLow, draw.ApproxBiLinear},
		{InterpolationMedium, draw.ApproxBiLinear},
		{InterpolationHigh, draw.BiLinear},
	}
	for _, tt := range tests {
		t.Run(tt.q.String(), func(t *testing.T) {
			if got := interpolator(tt.q); got != tt.want {
				t.Errorf("interpolator(%v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestSoftwareFactoryFillCoverage(t *testing.T) {
	f := NewSoftwareFactory()
	dst := image.NewAlpha(image.Rect(0, 0, 8, 8))
	f.FillCoverage(dst, [][]Point{{Pt(2, 2), Pt(6, 2), Pt(6, 6), Pt(2, 6)}})

	if got := dst.AlphaAt(3, 3).A; got != 255 {
		t.Errorf("inside = %d, want 255", got)
	}
	if got := dst.AlphaAt(1, 1).A; got != 0 {
		t.Errorf("outside = %d, want 0", got)
	}
}

func TestSoftwareFactoryResample(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 2, 1))
	src.Pix = []uint8{255, 0}
	dst := image.NewAlpha(image.Rect(0, 0, 8, 4))

	NewSoftwareFactory().Resample(dst, Scale(4, 4), src, src.Bounds(), InterpolationNone)

	if got := dst.AlphaAt(1, 1).A; got != 255 {
		t.Errorf("left half = %d, want 255", got)
	}
	if got := dst.AlphaAt(6, 1).A; got != 0 {
		t.Errorf("right half = %d, want 0", got)
	}
}

// countingFactory records calls and delegates to the software factory.
type countingFactory struct {
	Factory
	fills, resamples int
}

func (f *countingFactory) FillCoverage(dst *image.Alpha, figures [][]Point) {
	f.fills++
	f.Factory.FillCoverage(dst, figures)
}

func (f *countingFactory) Resample(dst draw.Image, m AffineTransform, src image.Image, sr image.Rectangle, q InterpolationQuality) {
	f.resamples++
	f.Factory.Resample(dst, m, src, sr, q)
}

func TestContextUsesInjectedFactory(t *testing.T) {
	f := &countingFactory{Factory: NewSoftwareFactory()}
	dc := newTestContext(t, 16, 16, WithFactory(f), WithInterpolationQuality(InterpolationHigh))

	if err := dc.ClipToRect(Rect{W: 8, H: 8}); err != nil {
		t.Fatal(err)
	}
	if f.fills != 0 {
		t.Errorf("rectangle clip rasterised %d times, want 0", f.fills)
	}

	dc.AddEllipseInRect(Rect{W: 16, H: 16})
	if err := dc.Clip(); err != nil {
		t.Fatal(err)
	}
	if err := dc.ClipToMask(Rect{W: 16, H: 16}, opaqueMask(t, 4, 4)); err != nil {
		t.Fatal(err)
	}
	if f.fills != 1 || f.resamples != 1 {
		t.Errorf("fills/resamples = %d/%d, want 1/1", f.fills, f.resamples)
	}
	if q := dc.ClipStack().InterpolationQuality(); q != InterpolationHigh {
		t.Errorf("InterpolationQuality() = %v, want High", q)
	}
}
