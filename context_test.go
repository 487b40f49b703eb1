package quartz

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestContext(t *testing.T, w, h int, opts ...ContextOption) *Context {
	t.Helper()
	dc, err := NewContext(w, h, opts...)
	if err != nil {
		t.Fatalf("NewContext(%d, %d) = %v", w, h, err)
	}
	t.Cleanup(func() { _ = dc.Close() })
	return dc
}

func rgbaAt(dc *Context, x, y int) color.RGBA {
	return dc.Image().(*image.RGBA).RGBAAt(x, y)
}

func TestNewContextErrors(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"too wide", 1<<15 + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewContext(tt.w, tt.h); !errors.Is(err, ErrAllocation) {
				t.Errorf("NewContext() = %v, want ErrAllocation", err)
			}
		})
	}
}

func TestNewContextFormats(t *testing.T) {
	dc := newTestContext(t, 3, 2)
	if _, ok := dc.Image().(*image.RGBA); !ok {
		t.Errorf("default Image() = %T, want *image.RGBA", dc.Image())
	}
	gray := newTestContext(t, 3, 2, WithPixelFormat(FormatGray))
	if _, ok := gray.Image().(*image.Gray); !ok {
		t.Errorf("gray Image() = %T, want *image.Gray", gray.Image())
	}
	if gray.Width() != 3 || gray.Height() != 2 || gray.PixelFormat() != FormatGray {
		t.Errorf("gray context = %dx%d %v", gray.Width(), gray.Height(), gray.PixelFormat())
	}
}

func TestFillRect(t *testing.T) {
	dc := newTestContext(t, 10, 10)
	dc.SetFillColor(Red)
	if err := dc.FillRect(Rect{X: 2, Y: 2, W: 4, H: 4}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{3, 3, color.RGBA{R: 255, A: 255}},
		{2, 5, color.RGBA{R: 255, A: 255}},
		{6, 3, color.RGBA{}},
		{1, 1, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := rgbaAt(dc, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillSourceOver(t *testing.T) {
	dc := newTestContext(t, 4, 4)
	dc.SetRGBFillColor(1, 1, 1, 0.5)
	if err := dc.FillRect(Rect{W: 4, H: 4}); err != nil {
		t.Fatal(err)
	}
	if got, want := rgbaAt(dc, 1, 1), (color.RGBA{R: 128, G: 128, B: 128, A: 128}); got != want {
		t.Errorf("half white = %v, want %v", got, want)
	}

	dc.SetFillColor(Blue)
	if err := dc.FillRect(Rect{W: 4, H: 4}); err != nil {
		t.Fatal(err)
	}
	if got, want := rgbaAt(dc, 1, 1), (color.RGBA{B: 255, A: 255}); got != want {
		t.Errorf("opaque blue over half white = %v, want %v", got, want)
	}
}

func TestFillUsesCTM(t *testing.T) {
	dc := newTestContext(t, 20, 20)
	dc.TranslateCTM(10, 10)
	dc.ScaleCTM(2, 2)
	dc.AddRect(Rect{W: 2, H: 2})
	if err := dc.Fill(); err != nil {
		t.Fatal(err)
	}
	if !dc.IsPathEmpty() {
		t.Error("Fill() did not discard the path")
	}
	if got := rgbaAt(dc, 13, 13).A; got != 255 {
		t.Errorf("alpha inside = %d, want 255", got)
	}
	if got := rgbaAt(dc, 14, 14).A; got != 0 {
		t.Errorf("alpha outside = %d, want 0", got)
	}
}

func TestPathIsTransformedWhenAdded(t *testing.T) {
	dc := newTestContext(t, 20, 20)
	dc.TranslateCTM(5, 0)
	dc.MoveTo(0, 0)
	dc.TranslateCTM(5, 0)
	dc.AddLineTo(0, 0)

	want := []PathElement{MoveTo{Point: Pt(5, 0)}, LineTo{Point: Pt(10, 0)}}
	if diff := cmp.Diff(want, dc.Path().Elements()); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestEOFill(t *testing.T) {
	dc := newTestContext(t, 100, 100)
	dc.AddPath(pentagramPath(50, 50, 45))
	if err := dc.EOFill(); err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(dc, 50, 50).A; got != 0 {
		t.Errorf("star center alpha = %d, want 0", got)
	}
	if got := rgbaAt(dc, 50, 15).A; got != 255 {
		t.Errorf("star tip alpha = %d, want 255", got)
	}

	dc.AddPath(pentagramPath(50, 50, 45))
	if err := dc.Fill(); err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(dc, 50, 50).A; got != 255 {
		t.Errorf("winding star center alpha = %d, want 255", got)
	}
}

func TestClipLimitsFill(t *testing.T) {
	dc := newTestContext(t, 10, 10)
	if err := dc.ClipToRect(Rect{X: 2, Y: 2, W: 3, H: 3}); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(Rect{W: 10, H: 10}); err != nil {
		t.Fatal(err)
	}
	if rgbaAt(dc, 3, 3).A != 255 || rgbaAt(dc, 6, 6).A != 0 {
		t.Errorf("alpha inside/outside clip = %d/%d, want 255/0", rgbaAt(dc, 3, 3).A, rgbaAt(dc, 6, 6).A)
	}
	if got, want := dc.ClipBoundingBox(), (Rect{X: 2, Y: 2, W: 3, H: 3}); got != want {
		t.Errorf("ClipBoundingBox() = %+v, want %+v", got, want)
	}
}

func TestFillsWithDifferentClipsDoNotShareCoverage(t *testing.T) {
	dc := newTestContext(t, 10, 10)
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	dc.SaveGState()
	if err := dc.ClipToRect(Rect{W: 4, H: 4}); err != nil {
		t.Fatal(err)
	}
	dc.SetRGBFillColor(1, 0, 0, 1)
	if err := dc.FillRect(Rect{W: 10, H: 10}); err != nil {
		t.Fatal(err)
	}
	dc.RestoreGState()

	dc.SaveGState()
	if err := dc.ClipToRect(Rect{X: 5, Y: 5, W: 3, H: 3}); err != nil {
		t.Fatal(err)
	}
	dc.SetRGBFillColor(0, 0, 1, 1)
	if err := dc.FillRect(Rect{W: 10, H: 10}); err != nil {
		t.Fatal(err)
	}
	dc.RestoreGState()

	dc.SetRGBFillColor(0, 1, 0, 1)
	if err := dc.FillRect(Rect{X: 8, Y: 8, W: 2, H: 2}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, red},
		{4, 4, color.RGBA{}},
		{6, 6, blue},
		{8, 1, color.RGBA{}},
		{9, 9, green},
	}
	for _, tt := range tests {
		if got := rgbaAt(dc, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClipToRectsUnion(t *testing.T) {
	dc := newTestContext(t, 10, 10)
	err := dc.ClipToRects([]Rect{{X: 0, Y: 0, W: 2, H: 2}, {X: 6, Y: 6, W: -2, H: -2}})
	if err != nil {
		t.Fatal(err)
	}
	clip := dc.ResolveClip()
	for _, p := range []image.Point{{1, 1}, {5, 5}} {
		if got := clip.AlphaAt(p.X, p.Y).A; got != 255 {
			t.Errorf("coverage at %v = %d, want 255", p, got)
		}
	}
	if got := clip.AlphaAt(3, 3).A; got != 0 {
		t.Errorf("coverage between rects = %d, want 0", got)
	}
}

func TestClipEmptyPathHidesEverything(t *testing.T) {
	dc := newTestContext(t, 10, 10)
	if err := dc.Clip(); err != nil {
		t.Fatal(err)
	}
	if dc.ClipDepth() != 1 {
		t.Errorf("ClipDepth() = %d, want 1", dc.ClipDepth())
	}
	if err := dc.FillRect(Rect{W: 10, H: 10}); err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(dc, 5, 5).A; got != 0 {
		t.Errorf("alpha = %d, want 0", got)
	}
	if got := dc.ClipBoundingBox(); !got.IsEmpty() {
		t.Errorf("ClipBoundingBox() = %+v, want empty", got)
	}
}

func TestEOClip(t *testing.T) {
	dc := newTestContext(t, 20, 20)
	dc.AddRect(Rect{W: 20, H: 20})
	dc.AddRect(Rect{X: 5, Y: 5, W: 10, H: 10})
	if err := dc.EOClip(); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(Rect{W: 20, H: 20}); err != nil {
		t.Fatal(err)
	}
	if rgbaAt(dc, 2, 2).A != 255 || rgbaAt(dc, 10, 10).A != 0 {
		t.Errorf("alpha ring/hole = %d/%d, want 255/0", rgbaAt(dc, 2, 2).A, rgbaAt(dc, 10, 10).A)
	}
}

func TestSaveRestoreGState(t *testing.T) {
	dc := newTestContext(t, 10, 10)
	dc.SetFillColor(Red)
	dc.SetLineWidth(3)

	dc.SaveGState()
	dc.SetFillColor(Green)
	dc.SetLineWidth(7)
	dc.SetInterpolationQuality(InterpolationHigh)
	dc.TranslateCTM(4, 4)
	if err := dc.ClipToRect(Rect{W: 2, H: 2}); err != nil {
		t.Fatal(err)
	}
	dc.RestoreGState()

	if dc.ClipDepth() != 0 || !dc.CTM().IsIdentity() {
		t.Errorf("after restore: depth %d, CTM %+v", dc.ClipDepth(), dc.CTM())
	}
	if dc.LineWidth() != 3 {
		t.Errorf("LineWidth() = %v, want 3", dc.LineWidth())
	}
	if q := dc.ClipStack().InterpolationQuality(); q != InterpolationDefault {
		t.Errorf("InterpolationQuality() = %v, want Default", q)
	}
	if err := dc.FillRect(Rect{W: 10, H: 10}); err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(dc, 8, 8); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel after restore = %v, want red", got)
	}
}

func TestRestoreGStateWithoutSavePanics(t *testing.T) {
	dc := newTestContext(t, 4, 4)
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrStateMismatch) {
			t.Errorf("recover() = %v, want an ErrStateMismatch error", err)
		}
	}()
	dc.RestoreGState()
}

func TestCloseReportsUnbalancedSaves(t *testing.T) {
	dc, err := NewContext(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	dc.SaveGState()
	dc.SaveGState()
	if err := dc.Close(); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("Close() = %v, want ErrStateMismatch", err)
	}
	if err := dc.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}

	balanced, _ := NewContext(4, 4)
	balanced.SaveGState()
	balanced.RestoreGState()
	if err := balanced.Close(); err != nil {
		t.Errorf("balanced Close() = %v, want nil", err)
	}
}

func TestRestoreGStateAfterClipStackSavePanics(t *testing.T) {
	dc := newTestContext(t, 4, 4)
	dc.ClipStack().SaveState()
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrStateMismatch) {
			t.Errorf("recover() = %v, want an ErrStateMismatch error", err)
		}
	}()
	dc.RestoreGState()
}

func TestCloseReportsGStateRestoredOnlyOnClipStack(t *testing.T) {
	dc, err := NewContext(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	dc.SaveGState()
	dc.ClipStack().RestoreState()
	if err := dc.Close(); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("Close() = %v, want ErrStateMismatch", err)
	}
}

func TestStrokeLineSegments(t *testing.T) {
	dc := newTestContext(t, 20, 20)
	dc.SetStrokeColor(Black)
	dc.SetLineWidth(2)
	// The same segment twice in opposite directions must not cancel.
	err := dc.StrokeLineSegments([]Point{Pt(2, 10), Pt(18, 10), Pt(18, 10), Pt(2, 10), Pt(5, 5)})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{10, 9, 255},
		{10, 10, 255},
		{10, 8, 0},
		{10, 11, 0},
		{1, 10, 0},
		{5, 5, 0},
	}
	for _, tt := range tests {
		if got := rgbaAt(dc, tt.x, tt.y).A; got != tt.want {
			t.Errorf("alpha (%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGrayContextFill(t *testing.T) {
	dc := newTestContext(t, 4, 4, WithPixelFormat(FormatGray))
	dc.SetGrayFillColor(1, 1)
	if err := dc.FillRect(Rect{W: 2, H: 4}); err != nil {
		t.Fatal(err)
	}
	dc.SetGrayFillColor(1, 0.5)
	if err := dc.FillRect(Rect{X: 2, W: 2, H: 4}); err != nil {
		t.Fatal(err)
	}
	g := dc.Image().(*image.Gray)
	if got := g.GrayAt(1, 1).Y; got != 255 {
		t.Errorf("white = %d, want 255", got)
	}
	if got := g.GrayAt(3, 1).Y; got != 128 {
		t.Errorf("half white over black = %d, want 128", got)
	}
}

func TestContextClipToMaskBakesTransform(t *testing.T) {
	dc := newTestContext(t, 40, 40)
	mask := opaqueMask(t, 10, 10)
	dc.TranslateCTM(20, 20)
	if err := dc.ClipToMask(Rect{W: 10, H: 10}, mask); err != nil {
		t.Fatal(err)
	}
	dc.TranslateCTM(-20, -20)
	if err := dc.FillRect(Rect{W: 40, H: 40}); err != nil {
		t.Fatal(err)
	}
	if rgbaAt(dc, 25, 25).A != 255 || rgbaAt(dc, 5, 5).A != 0 {
		t.Errorf("alpha inside/outside mask = %d/%d, want 255/0", rgbaAt(dc, 25, 25).A, rgbaAt(dc, 5, 5).A)
	}
}

func TestContextMaskImageAndPNG(t *testing.T) {
	dc := newTestContext(t, 6, 6)
	dc.SetFillColor(White)
	if err := dc.FillRect(Rect{W: 3, H: 6}); err != nil {
		t.Fatal(err)
	}

	m, err := dc.MaskImage(MaskAlpha)
	if err != nil {
		t.Fatal(err)
	}
	if m.At(1, 1) != 255 || m.At(4, 1) != 0 {
		t.Errorf("mask alpha = %d/%d, want 255/0", m.At(1, 1), m.At(4, 1))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() = %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 6, 6) {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestFillNonFiniteGeometry(t *testing.T) {
	dc := newTestContext(t, 4, 4)
	dc.MoveTo(0, 0)
	dc.AddLineTo(math.NaN(), 1)
	dc.AddLineTo(1, 1)
	if err := dc.Fill(); !errors.Is(err, ErrGeometry) {
		t.Errorf("Fill() = %v, want ErrGeometry", err)
	}
	if err := dc.FillGeometry(nil); !errors.Is(err, ErrGeometry) {
		t.Errorf("FillGeometry(nil) = %v, want ErrGeometry", err)
	}
}
