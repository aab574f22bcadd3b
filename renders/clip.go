package renders

import (
	"math"

	"github.com/gogpu/kantera"
)

// Clip shows the part of its child between start and end, moved to time 0.
type Clip[T any] struct {
	child      kantera.Render[T]
	start, end float64
}

// NewClip returns child restricted to [start, end). end may be
// kantera.Infinite. It panics when end < start.
func NewClip[T any](child kantera.Render[T], start, end float64) *Clip[T] {
	if end < start {
		panic(&kantera.ContractError{Node: "Clip", Msg: "end before start"})
	}
	return &Clip[T]{child: child, start: start, end: end}
}

// Sample implements kantera.Render.
func (c *Clip[T]) Sample(u, v, time float64, res kantera.Res) T {
	return c.child.Sample(u, v, time+c.start, res)
}

// Render shifts the requested frames by the start offset.
func (c *Clip[T]) Render(ro kantera.RenderOpt, out []T) {
	shift := int(math.Round(c.start * float64(ro.Framerate)))
	c.child.Render(ro.WithFrames(ro.FrameRange.Shift(shift)), out)
}

// Duration implements kantera.Render.
func (c *Clip[T]) Duration() float64 { return c.end - c.start }
