package audiorenders

import (
	"fmt"
	"math"

	"github.com/gogpu/kantera"
)

// Interpolation selects how BufferRender reads between stored samples.
type Interpolation uint8

const (
	// InterpNearest reads the sample at or before the position.
	InterpNearest Interpolation = iota
	// InterpLinear blends the two samples around the position.
	InterpLinear
)

// String implements fmt.Stringer.
func (m Interpolation) String() string {
	switch m {
	case InterpNearest:
		return "nearest"
	case InterpLinear:
		return "linear"
	default:
		return fmt.Sprintf("Interpolation(%d)", m)
	}
}

// ParseInterpolation parses "nearest" and "linear".
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "nearest":
		return InterpNearest, nil
	case "linear":
		return InterpLinear, nil
	}
	return 0, fmt.Errorf("audiorenders: unknown interpolation %q", s)
}

// BufferRender plays a stored buffer, resampled to the requested rate.
type BufferRender struct {
	buf    *kantera.AudioBuffer[float64]
	interp Interpolation
}

// NewBufferRender returns a node playing buf.
func NewBufferRender(buf *kantera.AudioBuffer[float64], interp Interpolation) *BufferRender {
	return &BufferRender{buf: buf, interp: interp}
}

// NewBufferRenderU16 plays unsigned 16-bit PCM, mapped to [-1, 1].
func NewBufferRenderU16(buf *kantera.AudioBuffer[uint16], interp Interpolation) *BufferRender {
	return NewBufferRender(kantera.AudioU16ToF64(buf), interp)
}

// Buffer returns the played buffer.
func (b *BufferRender) Buffer() *kantera.AudioBuffer[float64] { return b.buf }

// at reads channel ch at fractional source position x.
func (b *BufferRender) at(ch []float64, x float64) float64 {
	if x < 0 {
		return 0
	}
	i := int(math.Floor(x))
	if i >= len(ch) {
		return 0
	}
	if b.interp == InterpNearest {
		return ch[i]
	}
	next := 0.0
	if i+1 < len(ch) {
		next = ch[i+1]
	}
	t := x - float64(i)
	return ch[i]*(1-t) + next*t
}

// Render implements kantera.AudioRender.
func (b *BufferRender) Render(ro kantera.AudioRenderOpt) []float64 {
	size := ro.SampleRange.Len()
	out := make([]float64, b.buf.ChannelNum*size)
	r := float64(b.buf.SampleRate) / float64(ro.SampleRate)
	for c, ch := range b.buf.Channels {
		dst := out[c*size : (c+1)*size]
		for i := range dst {
			dst[i] = b.at(ch, float64(ro.SampleRange.Start+int64(i))*r)
		}
	}
	return out
}

// ChannelNum implements kantera.AudioRender.
func (b *BufferRender) ChannelNum() int { return b.buf.ChannelNum }

// Duration implements kantera.AudioRender.
func (b *BufferRender) Duration() float64 { return b.buf.Duration() }
