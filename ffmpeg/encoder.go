package ffmpeg

import (
	"context"
	"fmt"

	"github.com/gogpu/kantera"
)

// VideoEncoder streams frames into an ffmpeg child that writes path.
type VideoEncoder struct {
	width, height int
	p             *process
	buf           []byte
	closed        bool
}

// NewVideoEncoder starts ffmpeg for a width×height video at fps frames per
// second. The child is killed if ctx is cancelled before Close.
func NewVideoEncoder(ctx context.Context, path string, width, height, fps int, opts ...Option) (*VideoEncoder, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	return newVideoEncoder(ctx, path, width, height, fps, o)
}

func newVideoEncoder(ctx context.Context, path string, width, height, fps int, o options) (*VideoEncoder, error) {
	if width < 1 || height < 1 || fps < 1 {
		return nil, kantera.ErrInvalidDimensions
	}
	p, err := startProcess(ctx, o.ffmpeg, videoEncodeArgs(path, width, height, fps, o.extra), true, false)
	if err != nil {
		return nil, err
	}
	return &VideoEncoder{width: width, height: height, p: p}, nil
}

// Push writes one or more frames. len(frames) must be a multiple of
// width*height.
func (e *VideoEncoder) Push(frames []kantera.Rgba) error {
	if e.closed {
		return ErrClosed
	}
	size := e.width * e.height
	if len(frames)%size != 0 {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrFrameSize, len(frames), e.width, e.height)
	}
	for off := 0; off < len(frames); off += size {
		e.buf = AppendBGRA(e.buf[:0], frames[off:off+size])
		if _, err := e.p.stdin.Write(e.buf); err != nil {
			return e.p.wrap(err)
		}
	}
	return nil
}

// Close finishes the stream and waits for ffmpeg to exit.
func (e *VideoEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.p.wait()
}

func (e *VideoEncoder) abort() {
	if !e.closed {
		e.closed = true
		e.p.kill()
	}
}

// AudioEncoder streams planar float samples into an ffmpeg child.
type AudioEncoder struct {
	channels int
	p        *process
	buf      []byte
	closed   bool
}

// NewAudioEncoder starts ffmpeg for a stream of the given rate and channel
// count.
func NewAudioEncoder(ctx context.Context, path string, sampleRate, channels int, opts ...Option) (*AudioEncoder, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	return newAudioEncoder(ctx, path, sampleRate, channels, o)
}

func newAudioEncoder(ctx context.Context, path string, sampleRate, channels int, o options) (*AudioEncoder, error) {
	if sampleRate < 1 || channels < 1 {
		return nil, kantera.ErrInvalidDimensions
	}
	p, err := startProcess(ctx, o.ffmpeg, audioEncodeArgs(path, sampleRate, channels), true, false)
	if err != nil {
		return nil, err
	}
	return &AudioEncoder{channels: channels, p: p}, nil
}

// Push writes a channel-planar block of samples.
func (e *AudioEncoder) Push(planar []float64) error {
	if e.closed {
		return ErrClosed
	}
	if len(planar)%e.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrFrameSize, len(planar), e.channels)
	}
	e.buf = kantera.AppendU16LE(e.buf[:0], planar, e.channels)
	if _, err := e.p.stdin.Write(e.buf); err != nil {
		return e.p.wrap(err)
	}
	return nil
}

// Close finishes the stream and waits for ffmpeg to exit.
func (e *AudioEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.p.wait()
}

func (e *AudioEncoder) abort() {
	if !e.closed {
		e.closed = true
		e.p.kill()
	}
}

// AppendBGRA appends px as B,G,R,A bytes quantised with kantera.ToU8.
func AppendBGRA(dst []byte, px []kantera.Rgba) []byte {
	for _, c := range px {
		r, g, b, a := c.U8()
		dst = append(dst, b, g, r, a)
	}
	return dst
}

// Combine muxes an audio file and a video file into out without
// re-encoding.
func Combine(ctx context.Context, audio, video, out string, opts ...Option) error {
	o, err := collect(opts)
	if err != nil {
		return err
	}
	p, err := startProcess(ctx, o.ffmpeg, combineArgs(audio, video, out), false, false)
	if err != nil {
		return err
	}
	return p.wait()
}
