package renders

import (
	"math"

	"github.com/gogpu/kantera"
)

// Playback replays a pre-rendered buffer with nearest-frame,
// nearest-pixel lookup.
type Playback[T any] struct {
	buf *kantera.Buffer[T]
}

// NewPlayback returns a node showing buf.
func NewPlayback[T any](buf *kantera.Buffer[T]) *Playback[T] {
	return &Playback[T]{buf: buf}
}

// Sample returns the zero value outside the buffer in space or time.
func (p *Playback[T]) Sample(u, v, time float64, _ kantera.Res) T {
	b := p.buf
	f := int(math.Floor(time * float64(b.Framerate)))
	x := int(math.Floor(u * float64(b.Width)))
	y := int(math.Floor(v * float64(b.Height)))
	if f < 0 || f >= b.FrameNum || x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		var zero T
		return zero
	}
	return b.At(f, x, y)
}

// Render implements kantera.Render.
func (p *Playback[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.SampleAll[T](p, ro, out)
}

// Duration implements kantera.Render.
func (p *Playback[T]) Duration() float64 { return p.buf.Duration() }

// PixelInto converts every pixel of a Render[T] to U.
type PixelInto[T, U any] struct {
	child   kantera.Render[T]
	convert func(T) U
}

// NewPixelInto returns child seen through convert.
func NewPixelInto[T, U any](child kantera.Render[T], convert func(T) U) *PixelInto[T, U] {
	return &PixelInto[T, U]{child: child, convert: convert}
}

// Sample implements kantera.Render.
func (p *PixelInto[T, U]) Sample(u, v, time float64, res kantera.Res) U {
	return p.convert(p.child.Sample(u, v, time, res))
}

// Render renders the child into a scratch buffer and converts it.
func (p *PixelInto[T, U]) Render(ro kantera.RenderOpt, out []U) {
	kantera.CheckLen("PixelInto", ro, out)
	tmp := make([]T, len(out))
	p.child.Render(ro, tmp)
	for i, v := range tmp {
		out[i] = p.convert(v)
	}
}

// Duration implements kantera.Render.
func (p *PixelInto[T, U]) Duration() float64 { return p.child.Duration() }
