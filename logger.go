package kantera

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent = slog.New(slog.DiscardHandler)
	active atomic.Pointer[slog.Logger]
)

// SetLogger installs the logger shared by kantera and its sub-packages.
// Nothing is logged until it is called; nil restores the silent default.
// It may be called while renders are running.
//
// Levels:
//   - [slog.LevelDebug]: render strips, encoder chunks, decoded inputs
//   - [slog.LevelInfo]: finished outputs, preview reloads
//   - [slog.LevelWarn]: script print output
//   - [slog.LevelError]: scripts that failed to load or render
func SetLogger(l *slog.Logger) {
	active.Store(l)
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	if l := active.Load(); l != nil {
		return l
	}
	return silent
}
