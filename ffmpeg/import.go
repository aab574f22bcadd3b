package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/kantera"
)

// ImportVideo decodes every frame of the first video stream of path.
func ImportVideo(ctx context.Context, path string, opts ...Option) (*kantera.Buffer[kantera.Rgba], error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	info, err := Probe(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	v, ok := info.Video()
	if !ok {
		return nil, fmt.Errorf("%w: video in %s", ErrNoStream, path)
	}
	p, err := startProcess(ctx, o.ffmpeg, videoDecodeArgs(path), false, true)
	if err != nil {
		return nil, err
	}
	buf, rerr := ReadRGB24(p.stdout, v.Width, v.Height, v.FrameNum, v.Framerate)
	if rerr != nil {
		p.kill()
		return nil, rerr
	}
	// ffmpeg may still be flushing frames past the probed count.
	io.Copy(io.Discard, p.stdout)
	if err := p.wait(); err != nil {
		return nil, err
	}
	kantera.Logger().Debug("ffmpeg: imported video", "path", path, "frames", buf.FrameNum, "width", buf.Width, "height", buf.Height)
	return buf, nil
}

// ReadRGB24 reads up to frames packed rgb24 frames of width×height from r.
// A stream that ends early yields the whole frames read so far; a stream
// with no whole frame is an error.
func ReadRGB24(r io.Reader, width, height, frames, fps int) (*kantera.Buffer[kantera.Rgba], error) {
	if width < 1 || height < 1 || frames < 1 {
		return nil, kantera.ErrInvalidDimensions
	}
	if fps < 1 {
		fps = 1
	}
	size := width * height
	raw := make([]byte, size*3)
	pix := make([]kantera.Rgba, 0, size*frames)
	n := 0
	for ; n < frames; n++ {
		if _, err := io.ReadFull(r, raw); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("ffmpeg: read frame %d: %w", n, err)
		}
		for i := 0; i < size; i++ {
			pix = append(pix, kantera.RgbU8ToRgba(kantera.RgbU8{R: raw[i*3], G: raw[i*3+1], B: raw[i*3+2]}))
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("ffmpeg: decoder produced no frames: %w", io.ErrUnexpectedEOF)
	}
	return kantera.BufferFrom(width, height, n, fps, pix)
}

// ImportAudio decodes the first audio stream of path at its own rate and
// channel count.
func ImportAudio(ctx context.Context, path string, opts ...Option) (*kantera.AudioBuffer[uint16], error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	info, err := Probe(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	a, ok := info.Audio()
	if !ok {
		return nil, fmt.Errorf("%w: audio in %s", ErrNoStream, path)
	}
	if a.Channels < 1 || a.SampleRate < 1 {
		return nil, fmt.Errorf("%w: audio stream of %s has %d channels at %d Hz", ErrProbeParse, path, a.Channels, a.SampleRate)
	}
	data, err := output(ctx, o.ffmpeg, audioDecodeArgs(path, a.SampleRate, a.Channels))
	if err != nil {
		return nil, err
	}
	buf, err := kantera.DecodeU16LE(data, a.Channels, a.SampleRate)
	if err != nil {
		return nil, err
	}
	kantera.Logger().Debug("ffmpeg: imported audio", "path", path, "channels", buf.ChannelNum, "samples", buf.SampleNum)
	return buf, nil
}
