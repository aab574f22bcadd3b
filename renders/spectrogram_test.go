package renders

import (
	"math"
	"testing"

	"github.com/gogpu/kantera"
)

func sineBuffer(t *testing.T, freq float64, rate, n int) *kantera.AudioBuffer[float64] {
	t.Helper()
	b, err := kantera.NewAudioBuffer[float64](2, n, rate)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
		b.Channels[0][i] = v
		b.Channels[1][i] = v
	}
	return b
}

func TestSpectrogramPeak(t *testing.T) {
	s, err := NewSpectrogram(sineBuffer(t, 1000, 8000, 8000), 256)
	if err != nil {
		t.Fatal(err)
	}
	lv := s.levels(0.25)
	if len(lv) != 129 {
		t.Fatalf("len(levels) = %d, want 129", len(lv))
	}
	peak := 0
	for i, v := range lv {
		if v > lv[peak] {
			peak = i
		}
	}
	if peak != 32 {
		t.Errorf("peak bin = %d, want 32", peak)
	}

	// Past the end of the buffer everything is silent.
	for i, v := range s.levels(2) {
		if v != 0 {
			t.Fatalf("level[%d] after end = %v", i, v)
		}
	}
}

func TestSpectrogramRender(t *testing.T) {
	s, err := NewSpectrogram(sineBuffer(t, 1000, 8000, 8000), 256)
	if err != nil {
		t.Fatal(err)
	}
	const w, h = 64, 32
	out := render[kantera.Rgba](s, canvas(w, h, 1, 30))
	// 1 kHz lands at u = log(50)/log(200), column 47.
	col := 47
	if out[(h-1)*w+col] == kantera.Black {
		t.Error("peak column has no bar")
	}
	if out[col] != kantera.Black {
		t.Error("bar reaches the top row")
	}
	if d := s.Duration(); d != 1 {
		t.Errorf("Duration() = %v, want 1", d)
	}
	expectContractPanic(t, func() { s.Sample(0, 0, 0, kantera.Res{X: 1, Y: 1}) })
}
