package renders

import (
	"errors"
	"testing"

	"github.com/gogpu/kantera"
)

func TestNewFilterKernelSize(t *testing.T) {
	k := &kantera.Image[kantera.Rgba]{Width: 2, Height: 1, Pix: make([]kantera.Rgba, 2)}
	if _, err := NewFilter(NewPlain(red), k); !errors.Is(err, ErrKernelSize) {
		t.Errorf("err = %v, want ErrKernelSize", err)
	}
}

func TestFilter(t *testing.T) {
	identity := &kantera.Image[kantera.Rgba]{Width: 1, Height: 1, Pix: []kantera.Rgba{{R: 1, G: 1, B: 1, A: 1}}}
	w := 1.0 / 3
	box := &kantera.Image[kantera.Rgba]{Width: 3, Height: 1, Pix: []kantera.Rgba{
		{R: w, G: w, B: w, A: w}, {R: w, G: w, B: w, A: w}, {R: w, G: w, B: w, A: w},
	}}
	ro := kantera.RenderOpt{
		XRange: kantera.Range{Start: 1, End: 5}, YRange: kantera.Range{Start: 0, End: 3},
		ResX: 8, ResY: 4, FrameRange: kantera.Range{Start: 0, End: 2}, Framerate: 4,
	}

	tests := []struct {
		name   string
		child  kantera.Render[kantera.Rgba]
		kernel *kantera.Image[kantera.Rgba]
		want   kantera.Render[kantera.Rgba]
	}{
		{"identity kernel", uvRender{}, identity, uvRender{}},
		{"gaussian of uniform", NewPlain(red), MakeGaussianFilter(5, 3, 1.2), NewPlain(red)},
		{"box of linear ramp", uvRender{}, box, uvRender{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.child, tt.kernel)
			if err != nil {
				t.Fatal(err)
			}
			got, want := render[kantera.Rgba](f, ro), render(tt.want, ro)
			for i := range got {
				if !colorNear(got[i], want[i], 1e-9) {
					t.Fatalf("out[%d] = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestFilterNotSamplable(t *testing.T) {
	f, _ := NewFilter(NewPlain(red), MakeGaussianFilter(3, 3, 1))
	expectContractPanic(t, func() { f.Sample(0, 0, 0, kantera.Res{X: 1, Y: 1}) })
}

func TestMakeGaussianFilterNormalized(t *testing.T) {
	k := MakeGaussianFilter(5, 7, 2)
	if k.Width != 5 || k.Height != 7 {
		t.Fatalf("size = %dx%d", k.Width, k.Height)
	}
	var sum float64
	for _, p := range k.Pix {
		sum += p.R
	}
	if !near(sum, 1) {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	if c := k.At(2, 3); c.R <= k.At(0, 0).R {
		t.Error("centre weight is not the largest")
	}
}

func TestMakeGaussianFilterAutoSize(t *testing.T) {
	k := MakeGaussianFilter(0, 3, 1)
	if k.Width != 7 || k.Height != 3 {
		t.Errorf("size = %dx%d, want 7x3", k.Width, k.Height)
	}
}

func TestMakeBoxFilter(t *testing.T) {
	k := MakeBoxFilter(2, 1)
	if k.Width != 5 || k.Height != 3 {
		t.Fatalf("size = %dx%d, want 5x3", k.Width, k.Height)
	}
	for i, p := range k.Pix {
		if !near(p.R, 1.0/15) || p.R != p.A {
			t.Fatalf("weight %d = %v, want 1/15", i, p)
		}
	}
	f, err := NewFilter(uvRender{}, MakeBoxFilter(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	out := render[kantera.Rgba](f, canvas(4, 1, 1, 1))
	// A box over a linear ramp leaves it unchanged.
	for x, p := range out {
		if !near(p.R, float64(x)/4) {
			t.Errorf("pixel %d R = %v, want %v", x, p.R, float64(x)/4)
		}
	}
}
