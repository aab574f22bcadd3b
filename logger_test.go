package kantera

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLoggerSilentByDefault(t *testing.T) {
	prev := active.Load()
	t.Cleanup(func() { active.Store(prev) })
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	for _, lv := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), lv) {
			t.Errorf("silent logger enabled at %v", lv)
		}
	}
}

func TestSetLoggerRoutesOutput(t *testing.T) {
	prev := active.Load()
	t.Cleanup(func() { active.Store(prev) })

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	if Logger() != l {
		t.Fatal("Logger() did not return the installed logger")
	}
	Logger().Debug("strip done", "width", 16)
	if out := buf.String(); !strings.Contains(out, "strip done") || !strings.Contains(out, "width=16") {
		t.Errorf("output = %q", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
}

func TestLoggerRace(t *testing.T) {
	prev := active.Load()
	t.Cleanup(func() { active.Store(prev) })

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() { Logger().Info("render") })
		wg.Go(func() {
			SetLogger(slog.New(slog.DiscardHandler))
			SetLogger(nil)
		})
	}
	wg.Wait()
}
