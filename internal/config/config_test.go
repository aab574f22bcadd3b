package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := write(t, `
ffmpeg = "/usr/local/bin/ffmpeg"
encoder_args = "-crf 18"
workers = 4
buffer_frames = 32
output = "out/movie.mp4"
`)
	c, err := Load(p, false)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		FFmpeg:       "/usr/local/bin/ffmpeg",
		EncoderArgs:  "-crf 18",
		Workers:      4,
		BufferFrames: 32,
		Output:       "out/movie.mp4",
	}
	if c != want {
		t.Errorf("Load = %+v, want %+v", c, want)
	}
}

func TestLoadMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if c, err := Load(missing, true); err != nil || c != (Config{}) {
		t.Errorf("optional missing file: %+v, %v", c, err)
	}
	if _, err := Load(missing, false); err == nil {
		t.Error("required missing file accepted")
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, body, msg string
	}{
		{"unknown key", "framerate = 30\n", "framerate"},
		{"wrong type", "workers = \"many\"\n", "workers"},
		{"syntax", "ffmpeg = \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.body), false)
			if err == nil {
				t.Fatal("accepted")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.msg) {
				t.Errorf("err = %v, want mention of %q", err, tt.msg)
			}
		})
	}
}

func TestHomeExpansion(t *testing.T) {
	t.Setenv("HOME", "/home/k")
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	c, err := Load(write(t, "output = \"~/renders/a.mp4\"\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	if c.Output != filepath.Join("/home/k", "renders/a.mp4") {
		t.Errorf("Output = %q", c.Output)
	}
}

func TestMerge(t *testing.T) {
	base := Config{FFmpeg: "ffmpeg", Workers: 2, Output: "a.mp4"}
	got := base.Merge(Config{Workers: 8, EncoderArgs: "-crf 20"})
	want := Config{FFmpeg: "ffmpeg", Workers: 8, Output: "a.mp4", EncoderArgs: "-crf 20"}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if n := len(got.FFmpegOptions()); n != 5 {
		t.Errorf("FFmpegOptions = %d options, want 5", n)
	}
	if n := len(got.BinaryOptions()); n != 4 {
		t.Errorf("BinaryOptions = %d options, want 4", n)
	}
}
