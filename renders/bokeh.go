package renders

import (
	"math"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/internal/filter"
)

// Bokeh blurs its child with a box filter whose radius follows size(t),
// clamped to maxSize.
type Bokeh struct {
	child   kantera.Render[kantera.Rgba]
	maxSize int
	size    kantera.Param[float64]
}

// NewBokeh returns a blur of child.
func NewBokeh(child kantera.Render[kantera.Rgba], maxSize int, size kantera.Param[float64]) *Bokeh {
	return &Bokeh{child: child, maxSize: max(maxSize, 0), size: size}
}

// Sample panics: blurring needs neighbouring pixels.
func (b *Bokeh) Sample(_, _, _ float64, _ kantera.Res) kantera.Rgba {
	kantera.NotSamplable("Bokeh")
	return kantera.Rgba{}
}

// radius returns the blur radius at time t.
func (b *Bokeh) radius(t float64) int {
	return kantera.Clamp(int(math.Round(math.Abs(b.size.Value(t)))), 0, b.maxSize)
}

// Render asks the child for the window grown by maxSize on every side and
// applies a horizontal then a vertical box pass per frame.
func (b *Bokeh) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.CheckLen("Bokeh", ro, out)
	m := b.maxSize
	exp := ro.Expand(m, m)
	src := make([]kantera.Rgba, exp.Len())
	b.child.Render(exp, src)

	w, h := ro.Width(), ro.Height()
	n, en := ro.FrameSize(), exp.FrameSize()
	tmp := make([]kantera.Rgba, (h+2*m)*w)
	for i, f := 0, ro.FrameRange.Start; f < ro.FrameRange.End; i, f = i+1, f+1 {
		frame, dst := src[i*en:(i+1)*en], out[i*n:(i+1)*n]
		r := b.radius(ro.Time(f))
		if r == 0 {
			filter.Crop(frame, w, h, m, dst)
			continue
		}
		filter.BoxBlur(frame, w, h, m, r, tmp, dst)
	}
}

// Duration implements kantera.Render.
func (b *Bokeh) Duration() float64 { return b.child.Duration() }
