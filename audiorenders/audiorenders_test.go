package audiorenders

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/kantera"
)

func opt(start, end int64, rate int) kantera.AudioRenderOpt {
	return kantera.AudioRenderOpt{SampleRange: kantera.Range64{Start: start, End: end}, SampleRate: rate}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// ramp is a mono signal whose value is the time in seconds.
func ramp() *Timed {
	return NewTimed(kantera.TimedFunc[float64](func(t float64) float64 { return t }))
}

// constant is a mono signal of v.
func constant(v float64) *Timed {
	return NewTimed(kantera.TimedFunc[float64](func(float64) float64 { return v }))
}

func TestNote(t *testing.T) {
	out := NewNote(440, 1, 1, 0).Render(opt(0, 8000, 8000))
	if len(out) != 16000 {
		t.Fatalf("len = %d, want 16000", len(out))
	}
	for i := 0; i < 8000; i++ {
		want := math.Sin(float64(i)*440*2*math.Pi/8000) * 0.5
		if !near(out[i], want) {
			t.Fatalf("left[%d] = %v, want %v", i, out[i], want)
		}
		if out[8000+i] != out[i] {
			t.Fatalf("right[%d] = %v, want %v", i, out[8000+i], out[i])
		}
	}
}

func TestNotePan(t *testing.T) {
	tests := []struct {
		pan         float64
		left, right float64
	}{
		{-1, 1, 0},
		{1, 0, 1},
		{0.5, 0.25, 0.75},
	}
	for _, tt := range tests {
		// sin at a quarter period is 1.
		out := NewNote(1, 1, 1, tt.pan).Render(opt(1, 2, 4))
		if !near(out[0], tt.left) || !near(out[1], tt.right) {
			t.Errorf("pan %v: (%v, %v), want (%v, %v)", tt.pan, out[0], out[1], tt.left, tt.right)
		}
	}
}

func TestBufferRender(t *testing.T) {
	buf, err := kantera.AudioBufferFromPlanar(2, 4, []float64{0, 1, 2, 3, 10, 20, 30, 40})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		interp Interpolation
		ro     kantera.AudioRenderOpt
		want   []float64
	}{
		{"same rate", InterpNearest, opt(0, 4, 4), []float64{0, 1, 2, 3, 10, 20, 30, 40}},
		{"past end and before start", InterpNearest, opt(-1, 1, 4), []float64{0, 0, 0, 10}},
		{"upsample nearest", InterpNearest, opt(0, 4, 8), []float64{0, 0, 1, 1, 10, 10, 20, 20}},
		{"upsample linear", InterpLinear, opt(0, 4, 8), []float64{0, 0.5, 1, 1.5, 10, 15, 20, 25}},
		{"linear tail fades to silence", InterpLinear, opt(7, 8, 8), []float64{1.5, 20}},
		{"downsample", InterpNearest, opt(0, 2, 2), []float64{0, 2, 10, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBufferRender(buf, tt.interp).Render(tt.ro)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Errorf("out[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
	if d := NewBufferRender(buf, InterpNearest).Duration(); d != 1 {
		t.Errorf("Duration() = %v, want sample_num/sample_rate = 1", d)
	}
}

func TestBufferRenderU16(t *testing.T) {
	buf, _ := kantera.AudioBufferFromPlanar(1, 2, []uint16{0, 65535})
	got := NewBufferRenderU16(buf, InterpNearest).Render(opt(0, 2, 2))
	if !near(got[0], -1) || !near(got[1], 1) {
		t.Errorf("got %v, want [-1 1]", got)
	}
}

func TestClipChannelLayout(t *testing.T) {
	buf, _ := kantera.NewAudioBuffer[float64](3, 4, 4)
	if _, err := NewClip(NewBufferRender(buf, InterpNearest), ClipOptions{Duration: 1, Gain: 1}); !errors.Is(err, ErrChannelLayout) {
		t.Errorf("err = %v, want ErrChannelLayout", err)
	}
}

func TestClipMono(t *testing.T) {
	c, err := NewClip(constant(1), ClipOptions{Duration: 2, Gain: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	out := c.Render(opt(0, 4, 4))
	want := 0.5 * math.Cos(math.Pi/4)
	for i, v := range out {
		if !near(v, want) {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
	if c.ChannelNum() != 2 || c.Duration() != 2 {
		t.Errorf("ChannelNum %d, Duration %v", c.ChannelNum(), c.Duration())
	}
}

func TestClipStartAndPitch(t *testing.T) {
	tests := []struct {
		name     string
		opts     ClipOptions
		ro       kantera.AudioRenderOpt
		want     []float64
		duration float64
	}{
		{"start offset", ClipOptions{Start: 1, Duration: 2, Gain: 1, Pan: -1}, opt(0, 2, 2), []float64{1, 1.5}, 2},
		{"octave up", ClipOptions{Duration: 4, Pitch: 2, Gain: 1, Pan: -1}, opt(2, 4, 4), []float64{1, 1.5}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClip(ramp(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			out := c.Render(tt.ro)
			for i, w := range tt.want {
				if !near(out[i], w) {
					t.Errorf("left[%d] = %v, want %v", i, out[i], w)
				}
				if out[len(tt.want)+i] != 0 {
					t.Errorf("right[%d] = %v, want silence", i, out[len(tt.want)+i])
				}
			}
			if d := c.Duration(); d != tt.duration {
				t.Errorf("Duration() = %v, want %v", d, tt.duration)
			}
		})
	}
}

func TestClipFades(t *testing.T) {
	c, err := NewClip(constant(1), ClipOptions{Duration: 4, Gain: 1, Pan: -1, FadeIn: 1, FadeOut: 1})
	if err != nil {
		t.Fatal(err)
	}
	out := c.Render(opt(0, 4, 1))
	// The last sample sits one fade length before the end, so only the
	// first is attenuated.
	want := []float64{0.01, 1, 1, 1}
	for i, w := range want {
		if !near(out[i], w) {
			t.Errorf("left[%d] = %v, want %v", i, out[i], w)
		}
	}

	out = c.Render(opt(0, 8, 2))
	if !near(out[1], math.Pow(10, -1)) {
		t.Errorf("half-way fade-in = %v, want 0.1", out[1])
	}
	if !near(out[7], math.Pow(10, -1)) {
		t.Errorf("half-way fade-out = %v, want 0.1", out[7])
	}
}

func TestSequencer(t *testing.T) {
	s, err := NewSequencer(
		SequencerEntry{Start: 1, Render: NewNote(1, 1, 1, -1)},
		SequencerEntry{Start: 0.5, Render: NewNote(1, 1, 1, -1)},
	)
	if err != nil {
		t.Fatal(err)
	}
	const sr = 4
	out := s.Render(opt(0, 12, sr))
	note := NewNote(1, 1, 1, -1).Render(opt(0, sr, sr))
	want := make([]float64, 12)
	for i := 0; i < sr; i++ {
		want[2+i] += note[i]
		want[4+i] += note[i]
	}
	for i := range want {
		if !near(out[i], want[i]) {
			t.Errorf("left[%d] = %v, want %v", i, out[i], want[i])
		}
		if out[12+i] != 0 {
			t.Errorf("right[%d] = %v, want 0", i, out[12+i])
		}
	}
	if d := s.Duration(); d != 2 {
		t.Errorf("Duration() = %v, want 2", d)
	}

	// A window that starts inside an entry.
	part := s.Render(opt(5, 7, sr))
	if !near(part[0], out[5]) || !near(part[1], out[6]) {
		t.Errorf("partial window = %v, want %v", part[:2], out[5:7])
	}
}

func TestSequencerChannels(t *testing.T) {
	s, err := NewSequencer()
	if err != nil {
		t.Fatal(err)
	}
	if s.ChannelNum() != 2 {
		t.Errorf("empty sequencer has %d channels, want 2", s.ChannelNum())
	}
	if _, err := s.Append(0, ramp()); err != nil {
		t.Fatal(err)
	}
	mono, _ := NewSequencer(SequencerEntry{Render: ramp()})
	if _, err := mono.Append(1, NewNote(1, 1, 1, 0)); !errors.Is(err, ErrChannelLayout) {
		t.Errorf("err = %v, want ErrChannelLayout", err)
	}
}

func TestTimed(t *testing.T) {
	out := ramp().Render(opt(-2, 2, 4))
	for i, w := range []float64{-0.5, -0.25, 0, 0.25} {
		if !near(out[i], w) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], w)
		}
	}
	if ramp().Duration() != kantera.Infinite || ramp().ChannelNum() != 1 {
		t.Error("Timed should be endless mono")
	}
}

func TestRenderAudioToBuffer(t *testing.T) {
	buf, err := kantera.RenderAudioToBuffer(NewNote(440, 1, 1, 0), opt(0, 8000, 8000))
	if err != nil {
		t.Fatal(err)
	}
	if buf.ChannelNum != 2 || buf.SampleNum != 8000 || buf.SampleRate != 8000 {
		t.Fatalf("buffer %d ch x %d @ %d", buf.ChannelNum, buf.SampleNum, buf.SampleRate)
	}
	if !near(buf.Channels[1][2000], math.Sin(2000*440*2*math.Pi/8000)*0.5) {
		t.Errorf("right[2000] = %v", buf.Channels[1][2000])
	}
}
