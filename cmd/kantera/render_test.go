package main

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/audiofile"
	"github.com/gogpu/kantera/audiorenders"
	"github.com/gogpu/kantera/internal/config"
	"github.com/gogpu/kantera/preview"
	"github.com/gogpu/kantera/renders"
)

func TestFrameCount(t *testing.T) {
	note := audiorenders.NewNote(440, 1, 2, 0)
	plain := renders.NewPlain(kantera.White)
	tests := []struct {
		name string
		sc   preview.Scene
		want int
		err  error
	}{
		{"explicit end", preview.Scene{Video: plain, Framerate: 30, Start: 5, End: 35}, 30, nil},
		{"end before start", preview.Scene{Video: plain, Framerate: 30, Start: 10, End: 3}, 0, nil},
		{"audio length", preview.Scene{Audio: note, Framerate: 24, End: -1}, 48, nil},
		{"audio length from start", preview.Scene{Video: plain, Audio: note, Framerate: 24, Start: 8, End: -1}, 40, nil},
		{"unbounded", preview.Scene{Video: plain, Framerate: 30, End: -1}, 0, errUnbounded},
		{"empty", preview.Scene{Framerate: 30, End: 10}, 0, errNothing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := frameCount(tt.sc)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("frameCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAudioOffset(t *testing.T) {
	note := audiorenders.NewNote(440, 1, 2, 0)
	sc := preview.Scene{Audio: note, Framerate: 10, SampleRate: 100, Start: 5}
	a := audio(sc)
	if d := a.Duration(); math.Abs(d-1.5) > 1e-12 {
		t.Errorf("Duration = %v, want 1.5", d)
	}
	got := a.Render(kantera.AudioRenderOpt{SampleRange: kantera.Range64{End: 4}, SampleRate: 100})
	want := note.Render(kantera.AudioRenderOpt{SampleRange: kantera.Range64{Start: 50, End: 54}, SampleRate: 100})
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if audio(preview.Scene{Audio: note, Framerate: 10, SampleRate: 100}) != kantera.AudioRender(note) {
		t.Error("zero start wrapped the audio")
	}
}

func TestRunWAV(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.ks")
	src := "(def samplerate 8000)\n(def audio (note 440 0.5 1))\n"
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.wav")
	logger := slog.New(slog.DiscardHandler)
	if err := run(context.Background(), script, config.Config{Output: out}, true, logger); err != nil {
		t.Fatal(err)
	}
	buf, err := audiofile.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if buf.ChannelNum != 2 || buf.SampleRate != 8000 || buf.SampleNum != 8000 {
		t.Errorf("wav = %d ch, %d Hz, %d samples", buf.ChannelNum, buf.SampleRate, buf.SampleNum)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)
	cfg := config.Config{Output: filepath.Join(dir, "out.wav")}
	if err := run(context.Background(), filepath.Join(dir, "missing.ks"), cfg, true, logger); err == nil {
		t.Error("missing script accepted")
	}
	script := filepath.Join(dir, "main.ks")
	if err := os.WriteFile(script, []byte("(def end_frame 10)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), script, cfg, true, logger); !errors.Is(err, errNothing) {
		t.Errorf("empty scene: err = %v", err)
	}
}
