package ffmpeg

import (
	"context"
	"fmt"

	"github.com/gogpu/kantera"
)

type framePusher interface {
	Push([]kantera.Rgba) error
}

type samplePusher interface {
	Push([]float64) error
}

// RenderToMP4 renders frames [0, frames) of r at width×height and encodes
// them to path. Frames are rendered in chunks of WithBufferFrames with the
// parallel evaluator into one reused buffer. Render contract violations come
// back as errors.
func RenderToMP4(ctx context.Context, r kantera.Render[kantera.Rgba], path string, width, height, fps, frames int, opts ...Option) error {
	o, err := collect(opts)
	if err != nil {
		return err
	}
	if frames < 0 {
		return kantera.ErrInvalidDimensions
	}
	if err := kantera.Canvas(width, height, kantera.Range{End: frames}, fps).Validate(); err != nil {
		return err
	}
	enc, err := newVideoEncoder(ctx, path, width, height, fps, o)
	if err != nil {
		return err
	}
	if err := pushFrames(ctx, enc, r, width, height, fps, frames, o); err != nil {
		enc.abort()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	kantera.Logger().Info("ffmpeg: wrote video", "path", path, "frames", frames, "fps", fps)
	return nil
}

func pushFrames(ctx context.Context, dst framePusher, r kantera.Render[kantera.Rgba], width, height, fps, frames int, o options) (err error) {
	defer kantera.Recover(&err)
	buf := make([]kantera.Rgba, min(o.bufferFrames, frames)*width*height)
	for start := 0; start < frames; start += o.bufferFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+o.bufferFrames, frames)
		ro := kantera.Canvas(width, height, kantera.Range{Start: start, End: end}, fps)
		pix := buf[:ro.Len()]
		kantera.RenderIntoParallel(ro, r, pix, kantera.WithWorkers(o.workers))
		if err := dst.Push(pix); err != nil {
			return err
		}
		kantera.Logger().Debug("ffmpeg: chunk", "start", start, "end", end)
	}
	return nil
}

// audioChunk is the number of samples rendered per push.
const audioChunk = 1 << 14

// RenderAudio renders samples [0, samples) of a at sampleRate and encodes
// them to path.
func RenderAudio(ctx context.Context, a kantera.AudioRender, path string, sampleRate int, samples int64, opts ...Option) error {
	o, err := collect(opts)
	if err != nil {
		return err
	}
	if samples < 0 {
		return kantera.ErrInvalidDimensions
	}
	enc, err := newAudioEncoder(ctx, path, sampleRate, a.ChannelNum(), o)
	if err != nil {
		return err
	}
	if err := pushSamples(ctx, enc, a, sampleRate, samples); err != nil {
		enc.abort()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	kantera.Logger().Info("ffmpeg: wrote audio", "path", path, "samples", samples, "rate", sampleRate)
	return nil
}

func pushSamples(ctx context.Context, dst samplePusher, a kantera.AudioRender, sampleRate int, samples int64) (err error) {
	defer kantera.Recover(&err)
	ch := a.ChannelNum()
	for start := int64(0); start < samples; start += audioChunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		ro := kantera.AudioRenderOpt{
			SampleRange: kantera.Range64{Start: start, End: min(start+audioChunk, samples)},
			SampleRate:  sampleRate,
		}
		planar := a.Render(ro)
		if len(planar) != ch*ro.SampleRange.Len() {
			return fmt.Errorf("%w: audio node returned %d samples, want %d", ErrFrameSize, len(planar), ch*ro.SampleRange.Len())
		}
		if err := dst.Push(planar); err != nil {
			return err
		}
	}
	return nil
}
