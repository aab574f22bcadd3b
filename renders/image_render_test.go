package renders

import (
	"testing"

	"github.com/gogpu/kantera"
)

func TestImageRenderSizing(t *testing.T) {
	img, err := kantera.ImageFrom(2, 1, []kantera.Rgba{red, blue})
	if err != nil {
		t.Fatal(err)
	}
	def := kantera.RGBA(0, 1, 0, 1)

	tests := []struct {
		name   string
		sizing Sizing
		res    kantera.Res
		u, v   float64
		want   kantera.Rgba
	}{
		{"fit left", SizingFit, kantera.Res{X: 2, Y: 1}, 0.25, 0.5, red},
		{"fit right", SizingFit, kantera.Res{X: 8, Y: 8}, 0.75, 0.9, blue},
		{"contain letterbox", SizingContain, kantera.Res{X: 2, Y: 2}, 0.25, 0.1, def},
		{"contain inside", SizingContain, kantera.Res{X: 2, Y: 2}, 0.25, 0.5, red},
		{"cover crops", SizingCover, kantera.Res{X: 2, Y: 2}, 0.5, 0.5, blue},
		{"cover left", SizingCover, kantera.Res{X: 2, Y: 2}, 0.25, 0.1, red},
		{"dot by dot", SizingDotByDot, kantera.Res{X: 4, Y: 4}, 0.25, 0, blue},
		{"dot by dot outside", SizingDotByDot, kantera.Res{X: 4, Y: 4}, 0.75, 0, def},
		{"outside unit square", SizingFit, kantera.Res{X: 2, Y: 1}, -0.1, 0.5, def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewImageRender(img, tt.sizing, kantera.InterpNearest, def)
			if got := r.Sample(tt.u, tt.v, 0, tt.res); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestImageRenderBilinear(t *testing.T) {
	img, _ := kantera.ImageFrom(2, 1, []float64{0, 1})
	r := NewImageRender(img, SizingFit, kantera.InterpBilinear, -1.0)
	if got := r.Sample(0.5, 0.5, 0, kantera.Res{X: 2, Y: 1}); !near(got, 0.5) {
		t.Errorf("midpoint = %v, want 0.5", got)
	}
	out := render[float64](r, canvas(2, 1, 1, 1))
	if out[0] != 0 {
		t.Errorf("first pixel = %v, want 0", out[0])
	}
	if r.Duration() != kantera.Infinite {
		t.Error("image render should be infinite")
	}
}

func TestParseSizing(t *testing.T) {
	for s := SizingFit; s <= SizingDotByDot; s++ {
		got, err := ParseSizing(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSizing(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseSizing("stretch"); err == nil {
		t.Error("ParseSizing(stretch) succeeded")
	}
}
