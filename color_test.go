package quartz

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPremultiplied(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want color.RGBA
	}{
		{"opaque red", Red, color.RGBA{R: 255, A: 255}},
		{"transparent", Transparent, color.RGBA{}},
		{"half white", Gray(1, 0.5), color.RGBA{R: 128, G: 128, B: 128, A: 128}},
		{"clamped", RGBA{R: 2, G: -1, B: 0.5, A: 1}, color.RGBA{R: 255, B: 128, A: 255}},
		{"NaN", RGBA{R: math.NaN(), A: 1}, color.RGBA{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Premultiplied(); got != tt.want {
				t.Errorf("Premultiplied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 255, G: 0, B: 255, A: 0x80})
	want := RGBA{R: 1, G: 0, B: 1, A: float64(0x8080) / 0xffff}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("FromColor() mismatch (-want +got):\n%s", diff)
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		c    RGBA
		want float64
	}{
		{Black, 0},
		{White, 1},
		{Red, 0.299},
		{Green, 0.587},
		{Blue, 0.114},
	}
	for _, tt := range tests {
		if got := tt.c.Luminance(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%+v.Luminance() = %v, want %v", tt.c, got, tt.want)
		}
	}
}
