package audiofile

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/kantera"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	src, err := kantera.AudioBufferFromPlanar(2, 8000, []float64{
		0, 0.5, -0.5, 1,
		-1, 0.25, 0, 2, // 2 is clamped
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.wav")
	if err := Save(path, src); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.ChannelNum != 2 || got.SampleNum != 4 || got.SampleRate != 8000 {
		t.Fatalf("got %d channels, %d samples at %d Hz", got.ChannelNum, got.SampleNum, got.SampleRate)
	}
	for c := range src.Channels {
		for i, v := range src.Channels[c] {
			want := kantera.Clamp(v, -1, 1)
			if math.Abs(got.Channels[c][i]-want) > 1.0/16384 {
				t.Errorf("channel %d sample %d = %v, want %v", c, i, got.Channels[c][i], want)
			}
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("RIFF but not really a wave file")))
	if !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("err = %v, want ErrInvalidWAV", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.wav")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}
