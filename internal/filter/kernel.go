package filter

import (
	"math"
)

// Gaussian returns a normalized 1D Gaussian of size taps centred on the
// middle tap. size should be odd. sigma <= 0 yields a unit impulse.
func Gaussian(size int, sigma float64) []float64 {
	if size < 1 {
		size = 1
	}
	kernel := make([]float64, size)
	half := size / 2
	if sigma <= 0 {
		kernel[half] = 1
		return kernel
	}

	// G(x) = exp(-x²/(2σ²)); the constant factor disappears on normalization.
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianSize returns the odd tap count covering 3 standard deviations.
func GaussianSize(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	return int(math.Ceil(sigma*3))*2 + 1
}

// Box returns a 1D box kernel of 2*radius+1 equal taps.
func Box(radius int) []float64 {
	if radius <= 0 {
		return []float64{1}
	}
	size := radius*2 + 1
	kernel := make([]float64, size)
	for i := range kernel {
		kernel[i] = 1 / float64(size)
	}
	return kernel
}

// Outer returns the row-major outer product of a column kernel ky and a
// row kernel kx.
func Outer(kx, ky []float64) []float64 {
	out := make([]float64, len(kx)*len(ky))
	for j, wy := range ky {
		for i, wx := range kx {
			out[j*len(kx)+i] = wx * wy
		}
	}
	return out
}
