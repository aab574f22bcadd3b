package audiorenders

import "github.com/gogpu/kantera"

// Timed plays a signal as an endless mono waveform.
type Timed struct {
	src kantera.Timed[float64]
}

// NewTimed returns src sampled at the request's rate.
func NewTimed(src kantera.Timed[float64]) *Timed {
	return &Timed{src: src}
}

// Render implements kantera.AudioRender.
func (t *Timed) Render(ro kantera.AudioRenderOpt) []float64 {
	out := make([]float64, ro.SampleRange.Len())
	sr := float64(ro.SampleRate)
	for i := range out {
		out[i] = t.src.Value(float64(ro.SampleRange.Start+int64(i)) / sr)
	}
	return out
}

// ChannelNum implements kantera.AudioRender.
func (t *Timed) ChannelNum() int { return 1 }

// Duration implements kantera.AudioRender.
func (t *Timed) Duration() float64 { return kantera.Infinite }
