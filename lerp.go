package kantera

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Lerper is implemented by value types that can be interpolated: Path and
// the interpolation strategies need only componentwise addition and scalar
// multiplication. Vec2, Vec3 and Rgba implement it; float64 and float32 are
// handled directly.
type Lerper[T any] interface {
	Add(T) T
	Mul(float64) T
}

// Combine returns a*wa + b*wb for any interpolable T.
// It panics with a *ContractError when T has no linear structure.
func Combine[T any](a T, wa float64, b T, wb float64) T {
	switch x := any(a).(type) {
	case float64:
		return any(x*wa + any(b).(float64)*wb).(T)
	case float32:
		return any(scaleAdd(x, wa, any(b).(float32), wb)).(T)
	case Lerper[T]:
		scaled := any(x.Mul(wa)).(Lerper[T])
		return scaled.Add(any(b).(Lerper[T]).Mul(wb))
	}
	panic(&ContractError{Node: "Combine", Msg: fmt.Sprintf("type %T cannot be interpolated", a)})
}

// WeightedSum returns sum(values[i] * weights[i]). values must be non-empty.
func WeightedSum[T any](values []T, weights []float64) T {
	acc := Combine(values[0], weights[0], values[0], 0)
	for i := 1; i < len(values); i++ {
		acc = Combine(acc, 1, values[i], weights[i])
	}
	return acc
}

// Lerp interpolates linearly between a and b.
func Lerp[T any](a, b T, t float64) T {
	return Combine(a, 1-t, b, t)
}

// Bezier2 evaluates a quadratic Bezier curve with control point h.
func Bezier2[T any](p0, h, p1 T, t float64) T {
	s := 1 - t
	return WeightedSum([]T{p0, h, p1}, []float64{s * s, 2 * s * t, t * t})
}

// Bezier3 evaluates a cubic Bezier curve in Bernstein form with absolute
// control points h1 and h2.
func Bezier3[T any](p0, h1, h2, p1 T, t float64) T {
	s := 1 - t
	return WeightedSum(
		[]T{p0, h1, h2, p1},
		[]float64{s * s * s, 3 * s * s * t, 3 * s * t * t, t * t * t},
	)
}

func scaleAdd[F constraints.Float](a F, wa float64, b F, wb float64) F {
	return F(float64(a)*wa + float64(b)*wb)
}

// Clamp restricts v to [lo, hi].
func Clamp[N constraints.Integer | constraints.Float](v, lo, hi N) N {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
