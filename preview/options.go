package preview

import (
	"log/slog"

	"github.com/gogpu/kantera/script"
)

// Option configures an Engine.
type Option func(*Engine)

// WithFramerate sets the frame rate used until a script sets framerate.
func WithFramerate(fps int) Option {
	return func(e *Engine) { e.defaults.framerate = clamp(fps, minFramerate, maxFramerate) }
}

// WithSampleRate sets the sample rate used until a script sets samplerate.
func WithSampleRate(sr int) Option {
	return func(e *Engine) { e.defaults.samplerate = clamp(sr, minSampleRate, maxSampleRate) }
}

// WithFrameSize sets the canvas size used until a script sets frame_size.
func WithFrameSize(w, h int) Option {
	return func(e *Engine) { e.defaults.width, e.defaults.height = max(w, 0), max(h, 0) }
}

// WithWorkers sets the worker count of the parallel evaluator.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithCache shares a script cache with other runtimes.
func WithCache(c *script.Cache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithLogger sets the logger for reloads and script output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
