package preview

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 150 * time.Millisecond

// Run steps the engine at the scene frame rate until ctx is done. Ticks
// that fall behind by more than a frame are dropped instead of replayed.
func (e *Engine) Run(ctx context.Context) error {
	next := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		// Errors are already logged and broadcast; playback stops until
		// the next load.
		e.Step()

		period := time.Second / time.Duration(e.Framerate())
		now := time.Now()
		next = next.Add(period)
		if floor := now.Add(-period); next.Before(floor) {
			next = floor
		}
		wait := next.Sub(now)
		if wait <= 0 {
			wait = time.Millisecond
		}
		timer.Reset(wait)
	}
}

// Watch reloads the script whenever a .ks file in the project directory
// is written or created, until ctx is done.
func (e *Engine) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(e.dir); err != nil {
		return err
	}
	e.logger.Info("preview: watching", "dir", e.dir)

	var (
		pending <-chan time.Time
		timer   *time.Timer
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !reloadEvent(ev) {
				continue
			}
			e.logger.Debug("preview: change", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			pending = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("preview: watch error", "err", err)
		case <-pending:
			pending = nil
			e.Load()
		}
	}
}

func reloadEvent(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".ks" {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
