package kantera

import (
	"github.com/gogpu/kantera/internal/parallel"
)

// RenderToBuffer renders ro serially and returns a new buffer of ro.Len()
// values.
func RenderToBuffer[T any](ro RenderOpt, r Render[T]) []T {
	out := make([]T, ro.Len())
	r.Render(ro, out)
	return out
}

// RenderToBufferParallel renders ro by splitting its XRange into disjoint
// column strips, rendering each strip on a worker into a private buffer and
// interleaving the strips into the frame-major row-major result. The output
// equals RenderToBuffer for any node that is pure in its inputs.
//
// A render contract violation in any strip panics on the caller.
func RenderToBufferParallel[T any](ro RenderOpt, r Render[T], opts ...EvalOption) []T {
	out := make([]T, ro.Len())
	RenderIntoParallel(ro, r, out, opts...)
	return out
}

// RenderIntoParallel is RenderToBufferParallel writing into the first
// ro.Len() values of out, which are overwritten. It panics if out is shorter.
func RenderIntoParallel[T any](ro RenderOpt, r Render[T], out []T, opts ...EvalOption) {
	out = out[:ro.Len()]
	o := defaultEvalOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pool := o.pool
	if pool == nil {
		pool = parallel.Shared()
	}
	n := o.workers
	if n <= 0 {
		n = pool.Size()
	}

	strips := splitRange(ro.XRange, n)
	if len(strips) <= 1 || !pool.Running() {
		clear(out)
		r.Render(ro, out)
		return
	}
	Logger().Debug("parallel render", "strips", len(strips), "frames", ro.FrameRange.Len(), "width", ro.Width(), "height", ro.Height())

	parts := make([][]T, len(strips))
	work := make([]func(), len(strips))
	for i, xr := range strips {
		sro := ro
		sro.XRange = xr
		work[i] = func() {
			parts[i] = RenderToBuffer(sro, r)
		}
	}
	pool.Run(work)

	w, h := ro.Width(), ro.Height()
	for i, xr := range strips {
		sw := xr.Len()
		off := xr.Start - ro.XRange.Start
		part := parts[i]
		for row := 0; row < ro.FrameRange.Len()*h; row++ {
			copy(out[row*w+off:row*w+off+sw], part[row*sw:(row+1)*sw])
		}
	}
}

// splitRange cuts r into at most n non-empty contiguous pieces whose
// lengths differ by at most one.
func splitRange(r Range, n int) []Range {
	l := r.Len()
	if n > l {
		n = l
	}
	if n <= 0 {
		return nil
	}
	out := make([]Range, 0, n)
	start := r.Start
	for i := range n {
		size := l / n
		if i < l%n {
			size++
		}
		out = append(out, Range{start, start + size})
		start += size
	}
	return out
}

// RenderAudioToBuffer renders an audio node over ro into a planar buffer.
func RenderAudioToBuffer(a AudioRender, ro AudioRenderOpt) (*AudioBuffer[float64], error) {
	return AudioBufferFromPlanar(a.ChannelNum(), ro.SampleRate, a.Render(ro))
}
