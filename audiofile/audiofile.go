// Package audiofile reads and writes WAV files as kantera audio buffers.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/gogpu/kantera"
)

// ErrInvalidWAV is returned for input that is not a PCM WAV file.
var ErrInvalidWAV = errors.New("audiofile: invalid WAV data")

// Decode reads a PCM WAV stream into a planar float buffer in [-1, 1].
func Decode(r io.ReadSeeker) (*kantera.AudioBuffer[float64], error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	depth := int(dec.BitDepth)
	if depth == 0 || pcm.Format == nil || pcm.Format.NumChannels <= 0 {
		return nil, ErrInvalidWAV
	}
	ch := pcm.Format.NumChannels
	n := len(pcm.Data) / ch
	out, err := kantera.NewAudioBuffer[float64](ch, n, pcm.Format.SampleRate)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(2, float64(depth-1))
	for i := 0; i < n; i++ {
		for c := 0; c < ch; c++ {
			out.Channels[c][i] = float64(pcm.Data[i*ch+c]) / scale
		}
	}
	kantera.Logger().Debug("decoded wav", "channels", ch, "samples", n, "rate", pcm.Format.SampleRate, "bits", depth)
	return out, nil
}

// Load decodes the WAV file at path.
func Load(path string) (*kantera.AudioBuffer[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes buf as 16-bit PCM. Samples are clamped to [-1, 1].
func Encode(w io.WriteSeeker, buf *kantera.AudioBuffer[float64]) error {
	enc := wav.NewEncoder(w, buf.SampleRate, 16, buf.ChannelNum, 1)
	data := make([]int, buf.SampleNum*buf.ChannelNum)
	for i := 0; i < buf.SampleNum; i++ {
		for c := 0; c < buf.ChannelNum; c++ {
			data[i*buf.ChannelNum+c] = int(math.Round(kantera.Clamp(buf.Channels[c][i], -1, 1) * 32767))
		}
	}
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: buf.ChannelNum, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	return nil
}

// Save writes buf to a WAV file at path.
func Save(path string, buf *kantera.AudioBuffer[float64]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("audiofile: %w", cerr)
		}
	}()
	return Encode(f, buf)
}
