package main

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/quartz"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		clip quartz.Size
		want string
	}{
		{quartz.Size{}, "TestImage.CGContextClipping.StraightMask.di.mask.png"},
		{quartz.Sz(128, 256), "TestImage.CGContextClipping.StraightMask.di.mask.128x256.png"},
	}
	for _, tt := range tests {
		if got := fileName("StraightMask", shapeDiamond, quartz.MaskLuminance, tt.clip); got != tt.want {
			t.Errorf("fileName(%v) = %q, want %q", tt.clip, got, tt.want)
		}
	}
}

func TestParseSizes(t *testing.T) {
	got, err := parseSizes(formatSizes(clipSizes))
	if err != nil {
		t.Fatalf("parseSizes() = %v", err)
	}
	if len(got) != 3 || got[0] != quartz.Sz(128, 128) || got[1] != quartz.Sz(128, 256) || got[2] != quartz.Sz(256, 256) {
		t.Errorf("parseSizes() = %v, want %v", got, clipSizes)
	}

	for _, bad := range []string{"", "128", "ax128", "128x-1", "128x128,"} {
		if _, err := parseSizes(bad); err == nil {
			t.Errorf("parseSizes(%q) = nil error, want error", bad)
		}
	}
}

func TestBuildMasks(t *testing.T) {
	masks, err := buildMasks()
	if err != nil {
		t.Fatalf("buildMasks() = %v", err)
	}
	if len(masks) != len(shapes)*len(kinds) {
		t.Fatalf("built %d masks, want %d", len(masks), len(shapes)*len(kinds))
	}

	sq := masks.get(shapeSquare, quartz.MaskLuminance)
	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"outside the frame", 5, 5, 255},
		{"hole", 64, 64, 255},
		{"gray frame", 90, 90, 128},
		{"black quarter", 40, 40, 0},
	}
	for _, tt := range tests {
		if got := sq.At(tt.x, tt.y); got != tt.want {
			t.Errorf("square %s: At(%d, %d) = %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	grad := masks.get(shapeRectangle, quartz.MaskAlpha)
	if grad.Width() != 256 || grad.Height() != 128 {
		t.Errorf("gradient mask is %dx%d, want 256x128", grad.Width(), grad.Height())
	}
	if grad.At(0, 10) <= grad.At(255, 10) {
		t.Errorf("alpha gradient does not fade: %d -> %d", grad.At(0, 10), grad.At(255, 10))
	}
}

func blueBounds(t *testing.T, path string) image.Rectangle {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	n, err := run(context.Background(), dir, 160, 192, clipSizes, 3)
	if err != nil {
		t.Fatalf("run() = %v", err)
	}
	if want := len(shapeScenarios)*len(shapes)*len(kinds)*len(clipSizes) + len(plainScenarios); n != want {
		t.Errorf("run() wrote %d files, want %d", n, want)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "TestImage.CGContextClipping.*.png"))
	if len(files) != n {
		t.Errorf("found %d files, want %d", len(files), n)
	}

	empty := blueBounds(t, filepath.Join(dir, fileName("NonOverlappingImageMasks", shapeSquare, quartz.MaskAlpha, quartz.Size{})))
	if !empty.Empty() {
		t.Errorf("NonOverlappingImageMasks painted %v, want nothing", empty)
	}

	cross := blueBounds(t, filepath.Join(dir, fileName("CrossTransformedImageMasks", shapeSquare, quartz.MaskAlpha, quartz.Size{})))
	if want := image.Rect(2, 2, 64, 64); cross != want {
		t.Errorf("CrossTransformedImageMasks painted %v, want %v", cross, want)
	}

	straight := blueBounds(t, filepath.Join(dir, fileName("StraightMask", shapeSquare, quartz.MaskLuminance, quartz.Sz(128, 128))))
	if want := image.Rect(16, 32, 144, 160); !straight.In(want) || straight.Empty() {
		t.Errorf("StraightMask painted %v, want inside %v", straight, want)
	}
}
