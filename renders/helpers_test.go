package renders

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/kantera"
)

// uvRender returns (u, v, time, 1) at every point.
type uvRender struct{}

func (uvRender) Sample(u, v, time float64, _ kantera.Res) kantera.Rgba {
	return kantera.Rgba{R: u, G: v, B: time, A: 1}
}
func (r uvRender) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.SampleAll[kantera.Rgba](r, ro, out)
}
func (uvRender) Duration() float64 { return kantera.Infinite }

// clock returns the query time.
func clock() *Sample[float64] {
	return NewSample(func(_, _, t float64, _ kantera.Res) float64 { return t })
}

func canvas(w, h, frames, fps int) kantera.RenderOpt {
	return kantera.Canvas(w, h, kantera.Range{Start: 0, End: frames}, fps)
}

func render[T any](r kantera.Render[T], ro kantera.RenderOpt) []T {
	out := make([]T, ro.Len())
	r.Render(ro, out)
	return out
}

func sampled[T any](r kantera.Render[T], ro kantera.RenderOpt) []T {
	out := make([]T, ro.Len())
	kantera.SampleAll(r, ro, out)
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func colorNear(a, b kantera.Rgba, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func expectContractPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		var ce *kantera.ContractError
		if !ok || !errors.As(err, &ce) {
			t.Fatalf("recovered %v, want *kantera.ContractError", r)
		}
	}()
	fn()
}

var (
	red  = kantera.RGB(1, 0, 0)
	blue = kantera.RGB(0, 0, 1)
)
