package renders

import (
	"fmt"
	"math"

	"github.com/gogpu/kantera"
)

// ExtrapolatePolicy says what a TimeExtrapolate shows outside [0, duration).
type ExtrapolatePolicy uint8

const (
	// ExtrapolateNone passes time through unchanged.
	ExtrapolateNone ExtrapolatePolicy = iota
	// ExtrapolateConstant shows a fixed value.
	ExtrapolateConstant
	// ExtrapolateExtend holds the first and last instants.
	ExtrapolateExtend
	// ExtrapolateRepeat loops the base interval.
	ExtrapolateRepeat
	// ExtrapolateReflect plays the base interval forward and backward.
	ExtrapolateReflect
)

// String implements fmt.Stringer.
func (p ExtrapolatePolicy) String() string {
	switch p {
	case ExtrapolateNone:
		return "none"
	case ExtrapolateConstant:
		return "constant"
	case ExtrapolateExtend:
		return "extend"
	case ExtrapolateRepeat:
		return "repeat"
	case ExtrapolateReflect:
		return "reflect"
	default:
		return fmt.Sprintf("ExtrapolatePolicy(%d)", p)
	}
}

// ParseExtrapolatePolicy parses the names returned by String.
func ParseExtrapolatePolicy(s string) (ExtrapolatePolicy, error) {
	for p := ExtrapolateNone; p <= ExtrapolateReflect; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("renders: unknown extrapolation %q", s)
}

// extendEpsilon keeps Extend strictly inside the base interval.
const extendEpsilon = 1e-5

// TimeExtrapolate defines its child for all time from its behaviour on
// [0, duration).
type TimeExtrapolate[T any] struct {
	child    kantera.Render[T]
	duration float64
	policy   ExtrapolatePolicy
	constant T
}

// NewTimeExtrapolate wraps child. duration must be positive.
func NewTimeExtrapolate[T any](child kantera.Render[T], duration float64, policy ExtrapolatePolicy) *TimeExtrapolate[T] {
	return &TimeExtrapolate[T]{child: child, duration: duration, policy: policy}
}

// NewTimeExtrapolateConstant shows c outside [0, duration).
func NewTimeExtrapolateConstant[T any](child kantera.Render[T], duration float64, c T) *TimeExtrapolate[T] {
	return &TimeExtrapolate[T]{child: child, duration: duration, policy: ExtrapolateConstant, constant: c}
}

// mapTime returns the child time for t; ok is false when the constant
// should be shown instead.
func (e *TimeExtrapolate[T]) mapTime(t float64) (float64, bool) {
	if 0 <= t && t < e.duration {
		return t, true
	}
	d := e.duration
	switch e.policy {
	case ExtrapolateNone:
		return t, true
	case ExtrapolateExtend:
		return kantera.Clamp(t, 0, d-extendEpsilon), true
	case ExtrapolateRepeat:
		r := math.Mod(t, d)
		if r < 0 {
			r += d
		}
		return r, true
	case ExtrapolateReflect:
		n := math.Floor(t / d)
		r := t - n*d
		if int64(n)%2 != 0 {
			r = d - r
		}
		return r, true
	default:
		return 0, false
	}
}

// Sample implements kantera.Render.
func (e *TimeExtrapolate[T]) Sample(u, v, time float64, res kantera.Res) T {
	t, ok := e.mapTime(time)
	if !ok {
		return e.constant
	}
	return e.child.Sample(u, v, t, res)
}

// Render maps each frame's time. When the mapped time falls on a frame the
// child renders that frame; otherwise the frame is point-sampled.
func (e *TimeExtrapolate[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.CheckLen("TimeExtrapolate", ro, out)
	n := ro.FrameSize()
	fr := float64(ro.Framerate)
	for i, f := 0, ro.FrameRange.Start; f < ro.FrameRange.End; i, f = i+1, f+1 {
		frame := out[i*n : (i+1)*n]
		t, ok := e.mapTime(ro.Time(f))
		if !ok {
			for j := range frame {
				frame[j] = e.constant
			}
			continue
		}
		cf := math.Round(t * fr)
		if math.Abs(cf-t*fr) < 1e-9 {
			e.child.Render(ro.Frame(int(cf)), frame)
			continue
		}
		kantera.SampleAll(kantera.Render[T](timeShift[T]{e.child, t}), ro.Frame(0), frame)
	}
}

// Duration implements kantera.Render.
func (e *TimeExtrapolate[T]) Duration() float64 { return kantera.Infinite }

// timeShift pins its child to a fixed time.
type timeShift[T any] struct {
	child kantera.Render[T]
	t     float64
}

func (s timeShift[T]) Sample(u, v, _ float64, res kantera.Res) T {
	return s.child.Sample(u, v, s.t, res)
}
func (s timeShift[T]) Render(ro kantera.RenderOpt, out []T) { kantera.SampleAll[T](s, ro, out) }
func (s timeShift[T]) Duration() float64                    { return kantera.Infinite }
