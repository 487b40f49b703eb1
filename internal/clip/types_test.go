package clip

import (
	"image"
	"testing"
)

func TestRectRegion(t *testing.T) {
	r := NewRectRegion(8.5, 4, 2, 1.75) // corners given in reverse order

	if r.X0 != 2 || r.Y0 != 1.75 || r.X1 != 8.5 || r.Y1 != 4 {
		t.Fatalf("NewRectRegion() = %+v, want normalised corners", r)
	}
	if want := image.Rect(2, 1, 9, 4); r.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", r.Bounds(), want)
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{3, 2, 255},
		{1, 2, 0},
		{8, 2, 128},
		{3, 1, 64},
		{8, 1, 32},
		{3, 4, 0},
	}
	for _, tt := range tests {
		if got := r.Coverage(tt.x, tt.y); got != tt.want {
			t.Errorf("Coverage(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectRegionEmpty(t *testing.T) {
	r := NewRectRegion(3, 3, 3, 10)
	if !r.IsEmpty() {
		t.Error("IsEmpty() = false for zero-width rect")
	}
	if !r.Bounds().Empty() {
		t.Errorf("Bounds() = %v, want empty", r.Bounds())
	}
}

func TestMaskRegion(t *testing.T) {
	a := image.NewAlpha(image.Rect(0, 0, 10, 10))
	a.Pix[a.PixOffset(3, 4)] = 10
	a.Pix[a.PixOffset(6, 7)] = 255

	m := NewMaskRegion(a)
	if want := image.Rect(3, 4, 7, 8); m.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", m.Bounds(), want)
	}
	if got := m.Coverage(3, 4); got != 10 {
		t.Errorf("Coverage(3, 4) = %d, want 10", got)
	}
	if got := m.Coverage(20, 20); got != 0 {
		t.Errorf("Coverage(20, 20) = %d, want 0", got)
	}
	if m.Mask() != a {
		t.Error("Mask() does not return the wrapped buffer")
	}

	if b := NewMaskRegion(image.NewAlpha(image.Rect(0, 0, 4, 4))).Bounds(); !b.Empty() {
		t.Errorf("Bounds() of transparent mask = %v, want empty", b)
	}
}
