package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/audiofile"
	"github.com/gogpu/kantera/ffmpeg"
	"github.com/gogpu/kantera/internal/config"
	"github.com/gogpu/kantera/preview"
	"github.com/gogpu/kantera/renders"
)

var (
	errNothing   = errors.New("script binds neither video nor audio")
	errUnbounded = errors.New("scene has no end; set end_frame")
)

func run(ctx context.Context, scriptPath string, cfg config.Config, wav bool, logger *slog.Logger) error {
	path, err := homedir.Expand(scriptPath)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	eng := preview.NewEngine(filepath.Dir(path), preview.WithLogger(logger), preview.WithWorkers(cfg.Workers))
	if err := eng.LoadSource(string(src)); err != nil {
		return err
	}
	sc, _ := eng.Scene()
	frames, err := frameCount(sc)
	if err != nil {
		return err
	}
	if wav {
		return writeWAV(sc, frames, cfg.Output)
	}
	return encode(ctx, sc, frames, cfg)
}

// frameCount returns the number of frames from Start to End. A scene
// without end_frame uses the length of its audio when that is finite.
func frameCount(sc preview.Scene) (int, error) {
	if sc.Video == nil && sc.Audio == nil {
		return 0, errNothing
	}
	if sc.End >= 0 {
		return max(sc.End-sc.Start, 0), nil
	}
	if sc.Audio != nil {
		if d := sc.Audio.Duration(); !math.IsInf(d, 0) && !math.IsNaN(d) {
			return max(int(math.Ceil(d*float64(sc.Framerate)))-sc.Start, 0), nil
		}
	}
	return 0, errUnbounded
}

func sampleCount(sc preview.Scene, frames int) int64 {
	return int64(frames) * int64(sc.SampleRate) / int64(sc.Framerate)
}

// video returns the scene's video starting at its first frame.
func video(sc preview.Scene) kantera.Render[kantera.Rgba] {
	if sc.Start == 0 {
		return sc.Video
	}
	fps := float64(sc.Framerate)
	return renders.NewClip(sc.Video, float64(sc.Start)/fps, math.Inf(1))
}

// audio returns the scene's audio starting at its first frame.
func audio(sc preview.Scene) kantera.AudioRender {
	off := int64(sc.Start) * int64(sc.SampleRate) / int64(sc.Framerate)
	if off == 0 {
		return sc.Audio
	}
	return offsetAudio{AudioRender: sc.Audio, offset: off, duration: sc.Audio.Duration() - float64(sc.Start)/float64(sc.Framerate)}
}

type offsetAudio struct {
	kantera.AudioRender
	offset   int64
	duration float64
}

func (a offsetAudio) Render(ro kantera.AudioRenderOpt) []float64 {
	ro.SampleRange.Start += a.offset
	ro.SampleRange.End += a.offset
	return a.AudioRender.Render(ro)
}

func (a offsetAudio) Duration() float64 { return a.duration }

func writeWAV(sc preview.Scene, frames int, out string) error {
	if sc.Audio == nil {
		return fmt.Errorf("-wav: %w", errNothing)
	}
	ro := kantera.AudioRenderOpt{
		SampleRange: kantera.Range64{End: sampleCount(sc, frames)},
		SampleRate:  sc.SampleRate,
	}
	buf, err := renderAudio(audio(sc), ro)
	if err != nil {
		return err
	}
	return audiofile.Save(out, buf)
}

func renderAudio(a kantera.AudioRender, ro kantera.AudioRenderOpt) (buf *kantera.AudioBuffer[float64], err error) {
	defer kantera.Recover(&err)
	return kantera.RenderAudioToBuffer(a, ro)
}

func encode(ctx context.Context, sc preview.Scene, frames int, cfg config.Config) error {
	samples := sampleCount(sc, frames)
	switch {
	case sc.Video != nil && sc.Audio != nil:
		tmp, err := os.MkdirTemp("", "kantera-*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		v, a := filepath.Join(tmp, "video.mp4"), filepath.Join(tmp, "audio.m4a")
		if err := ffmpeg.RenderToMP4(ctx, video(sc), v, sc.Width, sc.Height, sc.Framerate, frames, cfg.FFmpegOptions()...); err != nil {
			return err
		}
		if err := ffmpeg.RenderAudio(ctx, audio(sc), a, sc.SampleRate, samples, cfg.BinaryOptions()...); err != nil {
			return err
		}
		return ffmpeg.Combine(ctx, a, v, cfg.Output, cfg.BinaryOptions()...)
	case sc.Video != nil:
		return ffmpeg.RenderToMP4(ctx, video(sc), cfg.Output, sc.Width, sc.Height, sc.Framerate, frames, cfg.FFmpegOptions()...)
	default:
		return ffmpeg.RenderAudio(ctx, audio(sc), cfg.Output, sc.SampleRate, samples, cfg.BinaryOptions()...)
	}
}
