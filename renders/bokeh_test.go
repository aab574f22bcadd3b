package renders

import (
	"testing"

	"github.com/gogpu/kantera"
)

func TestBokehZeroSizeIsNoop(t *testing.T) {
	b := NewBokeh(uvRender{}, 4, kantera.Const(0.0))
	ro := kantera.RenderOpt{
		XRange: kantera.Range{Start: 2, End: 7}, YRange: kantera.Range{Start: 1, End: 4},
		ResX: 10, ResY: 5, FrameRange: kantera.Range{Start: 0, End: 2}, Framerate: 10,
	}
	got, want := render[kantera.Rgba](b, ro), render[kantera.Rgba](uvRender{}, ro)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBokehUniform(t *testing.T) {
	c := kantera.RGBA(0.2, 0.4, 0.6, 1)
	sizes := kantera.Varying[float64](kantera.TimedFunc[float64](func(t float64) float64 { return -t * 4 }))
	b := NewBokeh(NewPlain(c), 3, sizes)
	for i, p := range render[kantera.Rgba](b, canvas(6, 4, 4, 2)) {
		if !colorNear(p, c, 1e-9) {
			t.Fatalf("out[%d] = %v, want %v", i, p, c)
		}
	}
}

func TestBokehRadius(t *testing.T) {
	b := NewBokeh(uvRender{}, 3, kantera.Varying[float64](kantera.TimedFunc[float64](func(t float64) float64 { return t })))
	tests := []struct {
		t    float64
		want int
	}{{0, 0}, {0.4, 0}, {1.6, 2}, {-2.2, 2}, {10, 3}}
	for _, tt := range tests {
		if got := b.radius(tt.t); got != tt.want {
			t.Errorf("radius(%v) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestBokehLinearRamp(t *testing.T) {
	// A box average of a linear function is the function itself.
	b := NewBokeh(uvRender{}, 2, kantera.Const(2.0))
	ro := canvas(5, 5, 1, 1)
	got, want := render[kantera.Rgba](b, ro), render[kantera.Rgba](uvRender{}, ro)
	for i := range got {
		if !colorNear(got[i], want[i], 1e-9) {
			t.Fatalf("out[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	expectContractPanic(t, func() { b.Sample(0, 0, 0, ro.Res()) })
}

func BenchmarkBokeh(b *testing.B) {
	bokeh := NewBokeh(uvRender{}, 8, kantera.Const(6.0))
	ro := canvas(128, 72, 1, 30)
	out := make([]kantera.Rgba, ro.Len())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bokeh.Render(ro, out)
	}
}
