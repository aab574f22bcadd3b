package kantera

import (
	"math"
	"testing"
)

func TestParam(t *testing.T) {
	c := Const(3.0)
	if !c.IsConst() || c.Value(10) != 3 {
		t.Errorf("Const(3).Value = %v", c.Value(10))
	}

	v := Varying[float64](NewPath(0.0).Append(2, 4, PointLinear))
	if v.IsConst() || v.Value(1) != 2 {
		t.Errorf("Varying(path).Value(1) = %v, want 2", v.Value(1))
	}

	var zero Param[Rgba]
	if zero.Value(1) != (Rgba{}) {
		t.Error("zero Param should evaluate to the zero value")
	}
}

func TestParamConstDoesNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		p := Const(RGB(1, 0, 0))
		_ = p.Value(0.5)
	})
	if allocs != 0 {
		t.Errorf("Const allocates %v times per run", allocs)
	}
}

func TestTimedWrappers(t *testing.T) {
	ramp := TimedFunc[float64](func(t float64) float64 { return t })

	tests := []struct {
		name string
		sig  Timed[float64]
		time float64
		want float64
	}{
		{"cycle", Cycle[float64]{Src: ramp, Period: 2}, 5.5, 1.5},
		{"cycle negative", Cycle[float64]{Src: ramp, Period: 2}, -0.5, 1.5},
		{"sine zero", Sine{Frequency: 1, Amplitude: 2}, 0, 0},
		{"sine quarter", Sine{Frequency: 1, Amplitude: 2}, 0.25, 2},
		{"add", Add[float64]{A: ramp, B: Const(1.0)}, 2, 3},
		{"mul", Mul[float64]{Src: ramp, Factor: Const(3.0)}, 2, 6},
		{"map", Map[float64, float64]{Src: ramp, F: math.Sqrt}, 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.Value(tt.time); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Value(%v) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestTimedVec2(t *testing.T) {
	s := Add[Vec2]{A: Const(V2(1, 2)), B: Const(V2(3, 4))}
	if got := s.Value(0); got != V2(4, 6) {
		t.Errorf("Add[Vec2] = %v, want (4, 6)", got)
	}
	m := Mul[Vec2]{Src: Const(V2(1, 2)), Factor: Const(0.5)}
	if got := m.Value(0); got != V2(0.5, 1) {
		t.Errorf("Mul[Vec2] = %v, want (0.5, 1)", got)
	}
}
