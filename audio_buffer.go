package kantera

import (
	"encoding/binary"
	"fmt"
	"math"
)

// AudioBuffer is channel-planar PCM: Channels holds ChannelNum slices of
// SampleNum samples each.
type AudioBuffer[T any] struct {
	ChannelNum int
	SampleNum  int
	SampleRate int
	Channels   [][]T
}

// NewAudioBuffer allocates a silent buffer.
func NewAudioBuffer[T any](channels, samples, sampleRate int) (*AudioBuffer[T], error) {
	if channels < 1 || samples < 0 || sampleRate < 1 {
		return nil, ErrInvalidDimensions
	}
	chs := make([][]T, channels)
	for i := range chs {
		chs[i] = make([]T, samples)
	}
	return &AudioBuffer[T]{ChannelNum: channels, SampleNum: samples, SampleRate: sampleRate, Channels: chs}, nil
}

// AudioBufferFromPlanar splits a planar vector of channels*n samples.
func AudioBufferFromPlanar[T any](channels, sampleRate int, planar []T) (*AudioBuffer[T], error) {
	if channels < 1 || sampleRate < 1 {
		return nil, ErrInvalidDimensions
	}
	if len(planar)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrDataSize, len(planar), channels)
	}
	n := len(planar) / channels
	chs := make([][]T, channels)
	for c := range chs {
		chs[c] = planar[c*n : (c+1)*n : (c+1)*n]
	}
	return &AudioBuffer[T]{ChannelNum: channels, SampleNum: n, SampleRate: sampleRate, Channels: chs}, nil
}

// Duration returns the length in seconds.
func (b *AudioBuffer[T]) Duration() float64 {
	return float64(b.SampleNum) / float64(b.SampleRate)
}

// U16ToFloat maps midpoint-encoded unsigned PCM to [-1, 1].
func U16ToFloat(v uint16) float64 {
	return float64(v)/65535*2 - 1
}

// FloatToU16 maps [-1, 1] to midpoint-encoded unsigned PCM, saturating.
func FloatToU16(v float64) uint16 {
	return uint16(math.Round((Clamp(v, -1, 1) + 1) / 2 * 65535))
}

// AudioU16ToF64 converts a u16 buffer to float samples.
func AudioU16ToF64(src *AudioBuffer[uint16]) *AudioBuffer[float64] {
	chs := make([][]float64, src.ChannelNum)
	for c, ch := range src.Channels {
		out := make([]float64, len(ch))
		for i, v := range ch {
			out[i] = U16ToFloat(v)
		}
		chs[c] = out
	}
	return &AudioBuffer[float64]{ChannelNum: src.ChannelNum, SampleNum: src.SampleNum, SampleRate: src.SampleRate, Channels: chs}
}

// AudioF64ToU16 converts float samples to a u16 buffer.
func AudioF64ToU16(src *AudioBuffer[float64]) *AudioBuffer[uint16] {
	chs := make([][]uint16, src.ChannelNum)
	for c, ch := range src.Channels {
		out := make([]uint16, len(ch))
		for i, v := range ch {
			out[i] = FloatToU16(v)
		}
		chs[c] = out
	}
	return &AudioBuffer[uint16]{ChannelNum: src.ChannelNum, SampleNum: src.SampleNum, SampleRate: src.SampleRate, Channels: chs}
}

// AppendU16LE appends planar float samples as interleaved little-endian
// u16 PCM, one channel group per sample time.
func AppendU16LE(dst []byte, planar []float64, channels int) []byte {
	n := len(planar) / channels
	for i := 0; i < n; i++ {
		for c := 0; c < channels; c++ {
			dst = binary.LittleEndian.AppendUint16(dst, FloatToU16(planar[c*n+i]))
		}
	}
	return dst
}

// DecodeU16LE parses interleaved little-endian u16 PCM into a planar buffer.
// A trailing partial sample group is dropped.
func DecodeU16LE(data []byte, channels, sampleRate int) (*AudioBuffer[uint16], error) {
	if channels < 1 || sampleRate < 1 {
		return nil, ErrInvalidDimensions
	}
	n := len(data) / (2 * channels)
	buf, err := NewAudioBuffer[uint16](channels, n, sampleRate)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for c := 0; c < channels; c++ {
			off := (i*channels + c) * 2
			buf.Channels[c][i] = binary.LittleEndian.Uint16(data[off:])
		}
	}
	return buf, nil
}

// PanMono places a mono sample in the stereo field with an equal-power law.
// pan -1 is full left, +1 full right, 0 centre (both at cos(pi/4)).
func PanMono(v, pan float64) (left, right float64) {
	pan = Clamp(pan, -1, 1)
	switch pan {
	case -1:
		return v, 0
	case 1:
		return 0, v
	}
	theta := (pan + 1) * math.Pi / 4
	return v * math.Cos(theta), v * math.Sin(theta)
}

// Pan shifts a stereo pair with an equal-power balance. Negative pan folds
// the right channel into the left, positive pan folds left into right; 0
// is the identity.
func Pan(left, right, pan float64) (float64, float64) {
	pan = Clamp(pan, -1, 1)
	theta := math.Abs(pan) * math.Pi / 2
	if pan <= 0 {
		return left + right*math.Sin(theta), right * math.Cos(theta)
	}
	return left * math.Cos(theta), right + left*math.Sin(theta)
}
