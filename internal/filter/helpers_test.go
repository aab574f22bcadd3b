package filter

import "github.com/gogpu/kantera"

// Test helper functions shared across filter tests.

// fill returns n copies of c.
func fill(n int, c kantera.Rgba) []kantera.Rgba {
	out := make([]kantera.Rgba, n)
	for i := range out {
		out[i] = c
	}
	return out
}

// ramp returns a w x h window whose red channel is the column index.
func ramp(w, h int) []kantera.Rgba {
	out := make([]kantera.Rgba, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = kantera.Rgba{R: float64(x), A: 1}
		}
	}
	return out
}

// colorApproxEqual compares two colours with tolerance.
func colorApproxEqual(a, b kantera.Rgba, tolerance float64) bool {
	return absf(a.R-b.R) < tolerance &&
		absf(a.G-b.G) < tolerance &&
		absf(a.B-b.B) < tolerance &&
		absf(a.A-b.A) < tolerance
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
