package ffmpeg

import (
	"fmt"

	"github.com/mattn/go-shellwords"
)

// Option configures a call into this package.
type Option func(*options)

type options struct {
	ffmpeg       string
	ffprobe      string
	extra        []string
	bufferFrames int
	workers      int
	err          error
}

func defaultOptions() options {
	return options{ffmpeg: "ffmpeg", ffprobe: "ffprobe", bufferFrames: 16}
}

func collect(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// WithBinary sets the ffmpeg executable. The default is "ffmpeg" on PATH.
func WithBinary(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffmpeg = path
		}
	}
}

// WithProbeBinary sets the ffprobe executable.
func WithProbeBinary(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffprobe = path
		}
	}
}

// WithExtraArgs adds encoder arguments written as a shell would split
// them, e.g. `-crf 18 -preset slow`. They are placed before the output
// file.
func WithExtraArgs(s string) Option {
	return func(o *options) {
		args, err := shellwords.Parse(s)
		if err != nil {
			o.err = fmt.Errorf("ffmpeg: extra args %q: %w", s, err)
			return
		}
		o.extra = append(o.extra, args...)
	}
}

// WithBufferFrames sets how many frames RenderToMP4 renders per chunk.
func WithBufferFrames(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferFrames = n
		}
	}
}

// WithWorkers sets the worker count of the parallel evaluator used by
// RenderToMP4. Zero uses one worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}
