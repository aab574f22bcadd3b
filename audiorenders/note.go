package audiorenders

import (
	"math"

	"github.com/gogpu/kantera"
)

// Note is a stereo sine tone. Its channels are weighted linearly by pan:
// left (1-pan)/2, right (1+pan)/2.
type Note struct {
	freq, gain, dur, pan float64
}

// NewNote returns a tone of freq Hz lasting dur seconds.
func NewNote(freq, gain, dur, pan float64) *Note {
	return &Note{freq: freq, gain: gain, dur: dur, pan: pan}
}

// Render implements kantera.AudioRender.
func (n *Note) Render(ro kantera.AudioRenderOpt) []float64 {
	size := ro.SampleRange.Len()
	out := make([]float64, 2*size)
	left, right := (1-n.pan)/2, (1+n.pan)/2
	w := n.freq * 2 * math.Pi / float64(ro.SampleRate)
	for i := 0; i < size; i++ {
		v := math.Sin(float64(ro.SampleRange.Start+int64(i))*w) * n.gain
		out[i] = v * left
		out[size+i] = v * right
	}
	return out
}

// ChannelNum implements kantera.AudioRender.
func (n *Note) ChannelNum() int { return 2 }

// Duration implements kantera.AudioRender.
func (n *Note) Duration() float64 { return n.dur }
