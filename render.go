package kantera

import (
	"errors"
	"fmt"
	"math"
)

// Range is a half-open integer interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns End-Start, or 0 for an empty range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether i is in the range.
func (r Range) Contains(i int) bool { return r.Start <= i && i < r.End }

// Intersect returns the overlap of two ranges, possibly empty.
func (r Range) Intersect(o Range) Range {
	s, e := max(r.Start, o.Start), min(r.End, o.End)
	if e < s {
		e = s
	}
	return Range{Start: s, End: e}
}

// Shift returns the range moved by d.
func (r Range) Shift(d int) Range { return Range{Start: r.Start + d, End: r.End + d} }

// Res is the reference resolution that fixes normalized coordinates.
type Res struct {
	X, Y int
}

// RenderOpt describes one render request.
//
// XRange and YRange are the output pixel window; they may extend outside
// [0, Res) when a node asks its child for padding. ResX and ResY fix the
// coordinate system: pixel (x, y) samples at (x/ResX, y/ResY). Frame f is
// at time f/Framerate.
type RenderOpt struct {
	XRange     Range
	YRange     Range
	ResX       int
	ResY       int
	FrameRange Range
	Framerate  int
}

// ErrInvalidRenderOpt is returned by RenderOpt.Validate.
var ErrInvalidRenderOpt = errors.New("kantera: invalid render options")

// Validate checks the RenderOpt invariants.
func (ro RenderOpt) Validate() error {
	switch {
	case ro.ResX <= 0 || ro.ResY <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidRenderOpt, ro.ResX, ro.ResY)
	case ro.Framerate < 1:
		return fmt.Errorf("%w: framerate %d", ErrInvalidRenderOpt, ro.Framerate)
	case ro.FrameRange.End < ro.FrameRange.Start:
		return fmt.Errorf("%w: frame range %v", ErrInvalidRenderOpt, ro.FrameRange)
	case ro.XRange.End < ro.XRange.Start || ro.YRange.End < ro.YRange.Start:
		return fmt.Errorf("%w: window %v x %v", ErrInvalidRenderOpt, ro.XRange, ro.YRange)
	}
	return nil
}

// Canvas returns a request for the full res canvas over frames.
func Canvas(width, height int, frames Range, framerate int) RenderOpt {
	return RenderOpt{
		XRange:     Range{0, width},
		YRange:     Range{0, height},
		ResX:       width,
		ResY:       height,
		FrameRange: frames,
		Framerate:  framerate,
	}
}

// Width returns the window width in pixels.
func (ro RenderOpt) Width() int { return ro.XRange.Len() }

// Height returns the window height in pixels.
func (ro RenderOpt) Height() int { return ro.YRange.Len() }

// FrameSize returns the number of values per frame.
func (ro RenderOpt) FrameSize() int { return ro.Width() * ro.Height() }

// Len returns the number of values a render fills.
func (ro RenderOpt) Len() int { return ro.FrameSize() * ro.FrameRange.Len() }

// Res returns the reference resolution.
func (ro RenderOpt) Res() Res { return Res{X: ro.ResX, Y: ro.ResY} }

// Time returns the time of absolute frame f.
func (ro RenderOpt) Time(f int) float64 { return float64(f) / float64(ro.Framerate) }

// WithFrames returns a copy with a different frame range.
func (ro RenderOpt) WithFrames(r Range) RenderOpt {
	ro.FrameRange = r
	return ro
}

// Frame returns a copy restricted to the single absolute frame f.
func (ro RenderOpt) Frame(f int) RenderOpt { return ro.WithFrames(Range{f, f + 1}) }

// Expand returns a copy whose window grows by dx, dy on each side.
func (ro RenderOpt) Expand(dx, dy int) RenderOpt {
	ro.XRange = Range{ro.XRange.Start - dx, ro.XRange.End + dx}
	ro.YRange = Range{ro.YRange.Start - dy, ro.YRange.End + dy}
	return ro
}

// Render is a pure, deterministic image-valued node of a render tree.
//
// Sample is a point query at normalized (u, v) and time. Render fills out,
// which must hold ro.Len() values, in frame-major row-major order. Duration
// is the time the node is defined for, or +Inf.
//
// Implementations must be safe for concurrent use once constructed.
type Render[T any] interface {
	Sample(u, v, time float64, res Res) T
	Render(ro RenderOpt, out []T)
	Duration() float64
}

// SampleAll is the default Render loop: it iterates frames, rows and
// columns and calls Sample for each pixel.
func SampleAll[T any](r Render[T], ro RenderOpt, out []T) {
	CheckLen("SampleAll", ro, out)
	res := ro.Res()
	rx, ry := float64(ro.ResX), float64(ro.ResY)
	i := 0
	for f := ro.FrameRange.Start; f < ro.FrameRange.End; f++ {
		t := ro.Time(f)
		for y := ro.YRange.Start; y < ro.YRange.End; y++ {
			v := float64(y) / ry
			for x := ro.XRange.Start; x < ro.XRange.End; x++ {
				out[i] = r.Sample(float64(x)/rx, v, t, res)
				i++
			}
		}
	}
}

// ContractError reports misuse of a render node: point-sampling a node that
// needs neighbourhood access, or a buffer of the wrong size. It is raised
// with panic and recovered at host boundaries.
type ContractError struct {
	Node string
	Msg  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("kantera: render contract violated by %s: %s", e.Node, e.Msg)
}

// NotSamplable panics with a *ContractError for node. Nodes that cannot be
// point-sampled call it from Sample.
func NotSamplable(node string) {
	panic(&ContractError{Node: node, Msg: "node cannot be point-sampled"})
}

// CheckLen panics with a *ContractError when out does not fit ro.
func CheckLen[T any](node string, ro RenderOpt, out []T) {
	if len(out) != ro.Len() {
		panic(&ContractError{Node: node, Msg: fmt.Sprintf("buffer holds %d values, request needs %d", len(out), ro.Len())})
	}
}

// Recover converts a render panic into an error. Use it with defer at host
// boundaries:
//
//	defer kantera.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case *ContractError:
		*err = v
	case error:
		*err = fmt.Errorf("kantera: render panic: %w", v)
	default:
		*err = fmt.Errorf("kantera: render panic: %v", v)
	}
}

// Infinite is the duration of procedural nodes.
var Infinite = math.Inf(1)

// AudioRenderOpt describes an audio render request. Sample indices are
// signed so that nodes may ask for pre-roll.
type AudioRenderOpt struct {
	SampleRange Range64
	SampleRate  int
}

// Range64 is a half-open int64 interval.
type Range64 struct {
	Start, End int64
}

// Len returns End-Start, or 0 for an empty range.
func (r Range64) Len() int {
	if r.End < r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

// AudioRender is an audio-producing node. Render returns a channel-planar
// vector of ChannelNum()*ro.SampleRange.Len() samples.
type AudioRender interface {
	Render(ro AudioRenderOpt) []float64
	ChannelNum() int
	Duration() float64
}
