package kantera

import (
	"math"
	"testing"
)

func rgbaNear(a, b Rgba, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Rgba
	}{
		{"#fff", White},
		{"000", Black},
		{"ff000080", RGBA(1, 0, 0, 128.0/255)},
		{"#00ff00", Green},
		{"0000ffff", Blue},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in); !rgbaNear(got, tt.want, 1e-9) {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    Rgba
	}{
		{0, 1, 0.5, Red},
		{1.0 / 3, 1, 0.5, Green},
		{-0.5, 1, 0.5, RGB(0, 1, 1)},
		{0.5, 0, 1, White},
	}
	for _, tt := range tests {
		if got := HSL(tt.h, tt.s, tt.l); !rgbaNear(got, tt.want, 1e-9) {
			t.Errorf("HSL(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
}

func TestNormalBlend(t *testing.T) {
	dst := RGBA(0, 0, 1, 0.5)
	got := dst.NormalBlend(RGBA(1, 0, 0, 0.5), 0.5)
	want := Rgba{R: 0.25, G: 0, B: 0.75, A: 1 - 0.5*0.75}
	if !rgbaNear(got, want, 1e-12) {
		t.Errorf("NormalBlend = %v, want %v", got, want)
	}
	if got := dst.NormalBlend(White, 0); got != dst {
		t.Errorf("zero alpha changed dst: %v", got)
	}
}

func TestToU8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{1.2, 255},
		{math.NaN(), 0},
		{1.0 / 255, 1},
	}
	for _, tt := range tests {
		if got := ToU8(tt.in); got != tt.want {
			t.Errorf("ToU8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
	r, g, b, a := RGBA(1.2, 0.5, -1, 1).U8()
	if r != 255 || g != 127 || b != 0 || a != 255 {
		t.Errorf("U8 = %d %d %d %d", r, g, b, a)
	}
}
