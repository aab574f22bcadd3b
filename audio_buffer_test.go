package kantera

import (
	"errors"
	"math"
	"testing"
)

func TestU16Conversion(t *testing.T) {
	tests := []struct {
		u uint16
		f float64
	}{
		{0, -1},
		{65535, 1},
	}
	for _, tt := range tests {
		if got := U16ToFloat(tt.u); got != tt.f {
			t.Errorf("U16ToFloat(%d) = %v, want %v", tt.u, got, tt.f)
		}
		if got := FloatToU16(tt.f); got != tt.u {
			t.Errorf("FloatToU16(%v) = %d, want %d", tt.f, got, tt.u)
		}
	}
	if got := FloatToU16(3); got != 65535 {
		t.Errorf("FloatToU16 should saturate, got %d", got)
	}
	if got := U16ToFloat(FloatToU16(0.25)); math.Abs(got-0.25) > 1e-4 {
		t.Errorf("round trip 0.25 = %v", got)
	}
}

func TestPanMono(t *testing.T) {
	tests := []struct {
		name        string
		pan         float64
		left, right float64
	}{
		{"full left", -1, 1, 0},
		{"full right", 1, 0, 1},
		{"centre", 0, math.Cos(math.Pi / 4), math.Sin(math.Pi / 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := PanMono(1, tt.pan)
			if math.Abs(l-tt.left) > 1e-12 || math.Abs(r-tt.right) > 1e-12 {
				t.Errorf("PanMono(1, %v) = (%v, %v), want (%v, %v)", tt.pan, l, r, tt.left, tt.right)
			}
		})
	}
}

func TestPan(t *testing.T) {
	l, r := Pan(0.3, 0.7, 0)
	if l != 0.3 || r != 0.7 {
		t.Errorf("Pan(.., 0) = (%v, %v), want identity", l, r)
	}
	l, r = Pan(0.3, 0.7, -1)
	if math.Abs(l-1) > 1e-12 || math.Abs(r) > 1e-12 {
		t.Errorf("Pan(.., -1) = (%v, %v), want (1, 0)", l, r)
	}
	l, r = Pan(0.3, 0.7, 1)
	if math.Abs(l) > 1e-12 || math.Abs(r-1) > 1e-12 {
		t.Errorf("Pan(.., 1) = (%v, %v), want (0, 1)", l, r)
	}
	h := math.Sqrt2 / 2
	l, r = Pan(0.3, 0.7, 0.5)
	if math.Abs(l-0.3*h) > 1e-12 || math.Abs(r-(0.7+0.3*h)) > 1e-12 {
		t.Errorf("Pan(.., 0.5) = (%v, %v)", l, r)
	}
	l, r = Pan(0.3, 0.7, -0.5)
	if math.Abs(l-(0.3+0.7*h)) > 1e-12 || math.Abs(r-0.7*h) > 1e-12 {
		t.Errorf("Pan(.., -0.5) = (%v, %v)", l, r)
	}
}

func TestU16LERoundTrip(t *testing.T) {
	planar := []float64{-1, 0, 1, 1, 0, -1}
	data := AppendU16LE(nil, planar, 2)
	if len(data) != 12 {
		t.Fatalf("len = %d, want 12", len(data))
	}
	// First sample group is (left[0], right[0]) = (-1, 1).
	if data[0] != 0 || data[1] != 0 || data[2] != 0xff || data[3] != 0xff {
		t.Errorf("first group = % x", data[:4])
	}
	buf, err := DecodeU16LE(data, 2, 8000)
	if err != nil {
		t.Fatal(err)
	}
	if buf.SampleNum != 3 || buf.Channels[1][0] != 65535 || buf.Channels[0][2] != 65535 {
		t.Errorf("decoded %+v", buf)
	}
}

func TestAudioBufferFromPlanar(t *testing.T) {
	b, err := AudioBufferFromPlanar(2, 4, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if b.SampleNum != 2 || b.Channels[1][0] != 3 {
		t.Errorf("got %+v", b)
	}
	if got := b.Duration(); got != 0.5 {
		t.Errorf("Duration() = %v, want 0.5", got)
	}
	if _, err := AudioBufferFromPlanar(2, 4, []float64{1, 2, 3}); !errors.Is(err, ErrDataSize) {
		t.Errorf("err = %v, want ErrDataSize", err)
	}
}
