package kantera

import (
	"fmt"
	"math"
)

// Interpolation selects how an Image is sampled between pixel centres.
type Interpolation uint8

const (
	// InterpNearest selects the pixel containing the coordinate.
	InterpNearest Interpolation = iota
	// InterpBilinear interpolates linearly between the 4 nearest pixel centres.
	InterpBilinear
	// InterpBicubic uses Catmull-Rom weights over a 4x4 neighbourhood.
	InterpBicubic
)

var interpNames = [...]string{"nearest", "bilinear", "bicubic"}

func (m Interpolation) String() string {
	if int(m) < len(interpNames) {
		return interpNames[m]
	}
	return fmt.Sprintf("Interpolation(%d)", m)
}

// ParseInterpolation parses the names returned by Interpolation.String.
func ParseInterpolation(s string) (Interpolation, error) {
	for i, name := range interpNames {
		if s == name {
			return Interpolation(i), nil
		}
	}
	return 0, fmt.Errorf("kantera: unknown interpolation %q", s)
}

// Interpolate samples img at continuous pixel coordinates (x, y), where
// pixel (i, j) covers [i, i+1) x [j, j+1). The caller checks bounds;
// neighbours outside the image are clamped to the edge.
func Interpolate[T any](img *Image[T], x, y float64, mode Interpolation) T {
	switch mode {
	case InterpBilinear:
		return SampleBilinear(img, x, y)
	case InterpBicubic:
		return SampleBicubic(img, x, y)
	default:
		return SampleNearest(img, x, y)
	}
}

// SampleNearest returns the pixel containing (x, y).
func SampleNearest[T any](img *Image[T], x, y float64) T {
	px := clampInt(int(math.Floor(x)), 0, img.Width-1)
	py := clampInt(int(math.Floor(y)), 0, img.Height-1)
	return img.At(px, py)
}

// SampleBilinear interpolates between the four pixel centres around (x, y).
func SampleBilinear[T any](img *Image[T], x, y float64) T {
	x0, tx := cell(x)
	y0, ty := cell(y)
	x1 := clampInt(x0+1, 0, img.Width-1)
	y1 := clampInt(y0+1, 0, img.Height-1)
	x0 = clampInt(x0, 0, img.Width-1)
	y0 = clampInt(y0, 0, img.Height-1)

	top := Lerp(img.At(x0, y0), img.At(x1, y0), tx)
	bottom := Lerp(img.At(x0, y1), img.At(x1, y1), tx)
	return Lerp(top, bottom, ty)
}

// SampleBicubic performs Catmull-Rom interpolation over the 4x4
// neighbourhood of (x, y).
func SampleBicubic[T any](img *Image[T], x, y float64) T {
	ix, tx := cell(x)
	iy, ty := cell(y)
	wx, wy := cubicWeights(tx), cubicWeights(ty)

	var (
		vals [16]T
		ws   [16]float64
	)
	for j := range 4 {
		py := clampInt(iy+j-1, 0, img.Height-1)
		for i := range 4 {
			vals[j*4+i] = img.At(clampInt(ix+i-1, 0, img.Width-1), py)
			ws[j*4+i] = wx[i] * wy[j]
		}
	}
	return WeightedSum(vals[:], ws[:])
}

// cell splits a continuous coordinate into the index of the pixel centre at
// or before it and the fraction towards the next centre.
func cell(v float64) (int, float64) {
	f := math.Floor(v - 0.5)
	return int(f), v - 0.5 - f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cubicWeights returns the Catmull-Rom (Keys, a = -0.5) weights of the
// four samples at offsets -1..2 from the sample at fractional position t.
func cubicWeights(t float64) [4]float64 {
	t2, t3 := t*t, t*t*t
	return [4]float64{
		(-t3 + 2*t2 - t) / 2,
		(3*t3 - 5*t2 + 2) / 2,
		(-3*t3 + 4*t2 + t) / 2,
		(t3 - t2) / 2,
	}
}
