package audiorenders

import (
	"errors"
	"fmt"
	"math"

	"github.com/viterin/vek"

	"github.com/gogpu/kantera"
)

// ErrChannelLayout is returned for children with an unsupported number of
// channels.
var ErrChannelLayout = errors.New("audiorenders: unsupported channel layout")

// Clip cuts a piece out of a child, re-pitches, pans, scales and fades it.
// The output is always stereo.
type Clip struct {
	child kantera.AudioRender
	opts  ClipOptions
}

// ClipOptions configures a Clip. Start and Duration are in child time.
type ClipOptions struct {
	Start    float64
	Duration float64
	// Pitch multiplies playback speed; 2 is an octave up. Zero means 1.
	Pitch   float64
	Pan     float64
	Gain    float64
	FadeIn  float64
	FadeOut float64
}

// NewClip returns a clip of child. The child must be mono or stereo.
func NewClip(child kantera.AudioRender, opts ClipOptions) (*Clip, error) {
	if n := child.ChannelNum(); n != 1 && n != 2 {
		return nil, fmt.Errorf("%w: clip child has %d channels", ErrChannelLayout, n)
	}
	if opts.Pitch == 0 {
		opts.Pitch = 1
	}
	if opts.Pitch < 0 {
		return nil, fmt.Errorf("audiorenders: negative pitch %v", opts.Pitch)
	}
	return &Clip{child: child, opts: opts}, nil
}

// Render reads the child at sample rate ro.SampleRate/Pitch, so that
// playing the result at ro.SampleRate shifts it by Pitch.
func (c *Clip) Render(ro kantera.AudioRenderOpt) []float64 {
	o := c.opts
	size := ro.SampleRange.Len()
	out := make([]float64, 2*size)
	if size == 0 {
		return out
	}

	childRate := max(int(float64(ro.SampleRate)/o.Pitch), 1)
	t0 := float64(ro.SampleRange.Start) / float64(ro.SampleRate)
	s0 := int64(math.Round((o.Start + t0*o.Pitch) * float64(childRate)))
	src := c.child.Render(kantera.AudioRenderOpt{
		SampleRange: kantera.Range64{Start: s0, End: s0 + int64(size)},
		SampleRate:  childRate,
	})

	left, right := out[:size], out[size:]
	if c.child.ChannelNum() == 1 {
		for i, v := range src[:size] {
			left[i], right[i] = kantera.PanMono(v, o.Pan)
		}
	} else {
		for i := range size {
			left[i], right[i] = kantera.Pan(src[i], src[size+i], o.Pan)
		}
	}
	vek.MulNumber_Inplace(out, o.Gain)
	c.fade(ro, left, right)
	return out
}

// envelope is the fade curve, 0.01 at x = 0 and 1 at x = 1.
func envelope(x float64) float64 {
	return math.Pow(10, (kantera.Clamp(x, 0, 1)-1)*2)
}

func (c *Clip) fade(ro kantera.AudioRenderOpt, left, right []float64) {
	sr := float64(ro.SampleRate)
	in, out := c.opts.FadeIn*sr, c.opts.FadeOut*sr
	total := c.Duration() * sr
	for i := range left {
		k := float64(ro.SampleRange.Start + int64(i))
		g := 1.0
		if in > 0 && k < in {
			g *= envelope(k / in)
		}
		if out > 0 && total-k < out {
			g *= envelope((total - k) / out)
		}
		if g != 1 {
			left[i] *= g
			right[i] *= g
		}
	}
}

// ChannelNum implements kantera.AudioRender.
func (c *Clip) ChannelNum() int { return 2 }

// Duration is the clip length in output time.
func (c *Clip) Duration() float64 { return c.opts.Duration / c.opts.Pitch }
