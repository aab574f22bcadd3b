package kantera

import "math"

// Timed is a pure function from time in seconds to a value.
type Timed[T any] interface {
	Value(t float64) T
}

// TimedFunc adapts a function to Timed.
type TimedFunc[T any] func(t float64) T

// Value implements Timed.
func (f TimedFunc[T]) Value(t float64) T { return f(t) }

// Param is a render parameter that is either a constant or a Timed signal.
// The zero value is the constant zero of T. A constant Param does not
// allocate.
type Param[T any] struct {
	c   T
	src Timed[T]
}

// Const returns a constant parameter.
func Const[T any](v T) Param[T] { return Param[T]{c: v} }

// Varying returns a parameter driven by src.
func Varying[T any](src Timed[T]) Param[T] {
	if src == nil {
		var zero T
		return Param[T]{c: zero}
	}
	return Param[T]{src: src}
}

// Value implements Timed.
func (p Param[T]) Value(t float64) T {
	if p.src == nil {
		return p.c
	}
	return p.src.Value(t)
}

// IsConst reports whether the parameter ignores time.
func (p Param[T]) IsConst() bool { return p.src == nil }

// Cycle repeats Src with the given period: t is reduced modulo Period into
// [0, Period).
type Cycle[T any] struct {
	Src    Timed[T]
	Period float64
}

// Value implements Timed.
func (c Cycle[T]) Value(t float64) T {
	return c.Src.Value(floorMod(t, c.Period))
}

// Sine is amplitude * sin(phase + 2*pi*frequency*t).
type Sine struct {
	Phase     float64
	Frequency float64
	Amplitude float64
}

// Value implements Timed.
func (s Sine) Value(t float64) float64 {
	return s.Amplitude * math.Sin(s.Phase+2*math.Pi*s.Frequency*t)
}

// Add sums two signals componentwise.
type Add[T any] struct {
	A, B Timed[T]
}

// Value implements Timed.
func (a Add[T]) Value(t float64) T {
	return Combine(a.A.Value(t), 1, a.B.Value(t), 1)
}

// Mul scales a signal by a scalar signal.
type Mul[T any] struct {
	Src    Timed[T]
	Factor Timed[float64]
}

// Value implements Timed.
func (m Mul[T]) Value(t float64) T {
	v := m.Src.Value(t)
	return Combine(v, m.Factor.Value(t), v, 0)
}

// Map applies F to every value of Src.
type Map[T, U any] struct {
	Src Timed[T]
	F   func(T) U
}

// Value implements Timed.
func (m Map[T, U]) Value(t float64) U {
	return m.F(m.Src.Value(t))
}

// floorMod returns x mod m in [0, m) for m > 0.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
