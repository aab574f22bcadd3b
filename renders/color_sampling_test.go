package renders

import (
	"testing"

	"github.com/gogpu/kantera"
)

// patchwork gives every pixel of a 5x3 canvas a different colour.
func patchwork() *Sample[kantera.Rgba] {
	return NewSample(func(u, v, _ float64, _ kantera.Res) kantera.Rgba {
		return kantera.RGBA(u, v, 1-u*v, 0.5+u/4)
	})
}

func TestColorSampling444(t *testing.T) {
	ro := canvas(5, 3, 1, 1)
	got := render[kantera.Rgba](NewColorSampling(patchwork(), T444), ro)
	want := render[kantera.Rgba](patchwork(), ro)
	for i := range got {
		if !colorNear(got[i], want[i], 1e-12) {
			t.Errorf("out[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestColorSamplingBlocks(t *testing.T) {
	tests := []struct {
		kind   Subsampling
		bw, bh int
	}{
		{T422, 2, 1},
		{T420, 2, 2},
		{T411, 4, 1},
	}
	const w, h = 5, 3
	ro := canvas(w, h, 2, 1)
	src := render[kantera.Rgba](patchwork(), ro)
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := render[kantera.Rgba](NewColorSampling(patchwork(), tt.kind), ro)
			for f := 0; f < 2; f++ {
				for y := 0; y < h; y++ {
					for x := 0; x < w; x++ {
						i := f*w*h + y*w + x
						tl := f*w*h + (y/tt.bh*tt.bh)*w + x/tt.bw*tt.bw
						g, s, o := rgbToYPbPr(got[i]), rgbToYPbPr(src[i]), rgbToYPbPr(src[tl])
						if !near(g.X, s.X) || !near(g.Y, o.Y) || !near(g.Z, o.Z) {
							t.Errorf("(%d, %d): got %v from %v, block origin %v", x, y, got[i], src[i], src[tl])
						}
						if got[i].A != src[i].A {
							t.Errorf("(%d, %d): alpha %v, want %v", x, y, got[i].A, src[i].A)
						}
					}
				}
			}
		})
	}
}

func TestParseSubsampling(t *testing.T) {
	for k := T444; k <= T411; k++ {
		got, err := ParseSubsampling(k.String())
		if err != nil || got != k {
			t.Errorf("ParseSubsampling(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseSubsampling("400"); err == nil {
		t.Error("ParseSubsampling(400) succeeded")
	}
	expectContractPanic(t, func() { NewColorSampling(patchwork(), T420).Sample(0, 0, 0, kantera.Res{X: 1, Y: 1}) })
}
