package kantera

import (
	"math"
	"testing"
)

func gradientImage(t *testing.T) *Image[float64] {
	t.Helper()
	img, err := ImageFrom(4, 1, []float64{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestInterpolate(t *testing.T) {
	img := gradientImage(t)

	tests := []struct {
		name string
		mode Interpolation
		x    float64
		want float64
	}{
		{"nearest", InterpNearest, 1.9, 1},
		{"nearest edge", InterpNearest, 3.99, 3},
		{"bilinear at centre", InterpBilinear, 1.5, 1},
		{"bilinear between centres", InterpBilinear, 2.0, 1.5},
		{"bilinear clamps left edge", InterpBilinear, 0.2, 0},
		{"bicubic at centre", InterpBicubic, 2.5, 2},
		{"bicubic reproduces linear ramp", InterpBicubic, 2.0, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(img, tt.x, 0.5, tt.mode)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Interpolate(%v, %v) = %v, want %v", tt.mode, tt.x, got, tt.want)
			}
		})
	}
}

func TestInterpolateRgba(t *testing.T) {
	img, err := ImageFrom(2, 1, []Rgba{Red, Blue})
	if err != nil {
		t.Fatal(err)
	}
	got := Interpolate(img, 1.0, 0.5, InterpBilinear)
	if math.Abs(got.R-0.5) > 1e-12 || math.Abs(got.B-0.5) > 1e-12 || got.A != 1 {
		t.Errorf("bilinear midpoint = %v", got)
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, m := range []Interpolation{InterpNearest, InterpBilinear, InterpBicubic} {
		got, err := ParseInterpolation(m.String())
		if err != nil || got != m {
			t.Errorf("ParseInterpolation(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseInterpolation("lanczos"); err == nil {
		t.Error("expected error")
	}
}
