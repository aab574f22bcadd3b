package kantera

import (
	"math"
	"testing"
)

func TestNoise(t *testing.T) {
	if got := Noise(1, 2, 3); got != 0 {
		t.Errorf("Noise at lattice point = %v, want 0", got)
	}
	for i := range 200 {
		x := float64(i) * 0.173
		v := Noise(x, x*0.5, 0.25)
		if v < -1 || v > 1 || math.IsNaN(v) {
			t.Fatalf("Noise(%v) = %v out of range", x, v)
		}
		if Noise(x, x*0.5, 0.25) != v {
			t.Fatal("Noise must be deterministic")
		}
	}
	// Continuity.
	if d := math.Abs(Noise(0.5, 0.5, 0.5) - Noise(0.5001, 0.5, 0.5)); d > 1e-2 {
		t.Errorf("Noise jumps by %v over a small step", d)
	}
}

func TestU32Noise(t *testing.T) {
	if U32Noise(1) == U32Noise(2) {
		t.Error("U32Noise should separate neighbouring inputs")
	}
	if U32Noise(7) != U32Noise(7) {
		t.Error("U32Noise must be deterministic")
	}
}
