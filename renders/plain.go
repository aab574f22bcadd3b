package renders

import "github.com/gogpu/kantera"

// Plain fills the canvas with a single, possibly time-varying, value.
type Plain[T any] struct {
	value kantera.Param[T]
}

// NewPlain returns a constant fill.
func NewPlain[T any](v T) *Plain[T] {
	return &Plain[T]{value: kantera.Const(v)}
}

// NewPlainTimed returns a fill that follows p over time.
func NewPlainTimed[T any](p kantera.Param[T]) *Plain[T] {
	return &Plain[T]{value: p}
}

// Sample implements kantera.Render.
func (p *Plain[T]) Sample(_, _, time float64, _ kantera.Res) T {
	return p.value.Value(time)
}

// Render fills each frame with the value at that frame's time.
func (p *Plain[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.CheckLen("Plain", ro, out)
	n := ro.FrameSize()
	for i, f := 0, ro.FrameRange.Start; f < ro.FrameRange.End; i, f = i+1, f+1 {
		v := p.value.Value(ro.Time(f))
		frame := out[i*n : (i+1)*n]
		for j := range frame {
			frame[j] = v
		}
	}
}

// Duration implements kantera.Render.
func (p *Plain[T]) Duration() float64 { return kantera.Infinite }

// SampleFunc is a point query.
type SampleFunc[T any] func(u, v, time float64, res kantera.Res) T

// Sample wraps a pure closure as a render node.
type Sample[T any] struct {
	f SampleFunc[T]
}

// NewSample returns a node that evaluates f at every pixel.
func NewSample[T any](f SampleFunc[T]) *Sample[T] {
	return &Sample[T]{f: f}
}

// Sample implements kantera.Render.
func (s *Sample[T]) Sample(u, v, time float64, res kantera.Res) T {
	return s.f(u, v, time, res)
}

// Render implements kantera.Render.
func (s *Sample[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.SampleAll[T](s, ro, out)
}

// Duration implements kantera.Render.
func (s *Sample[T]) Duration() float64 { return kantera.Infinite }

// FillFunc fills one frame. ro is restricted to that frame.
type FillFunc[T any] func(ro kantera.RenderOpt, time float64, frame []T)

// Functional wraps a per-frame fill closure. It cannot be point-sampled.
type Functional[T any] struct {
	fill     FillFunc[T]
	duration float64
}

// NewFunctional returns a node driven by fill. duration may be
// kantera.Infinite.
func NewFunctional[T any](duration float64, fill FillFunc[T]) *Functional[T] {
	return &Functional[T]{fill: fill, duration: duration}
}

// Sample panics: a fill closure has no point form.
func (r *Functional[T]) Sample(_, _, _ float64, _ kantera.Res) T {
	kantera.NotSamplable("Functional")
	var zero T
	return zero
}

// Render implements kantera.Render.
func (r *Functional[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.CheckLen("Functional", ro, out)
	n := ro.FrameSize()
	for i, f := 0, ro.FrameRange.Start; f < ro.FrameRange.End; i, f = i+1, f+1 {
		r.fill(ro.Frame(f), ro.Time(f), out[i*n:(i+1)*n])
	}
}

// Duration implements kantera.Render.
func (r *Functional[T]) Duration() float64 { return r.duration }
