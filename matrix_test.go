package kantera

import (
	"math"
	"testing"
)

func TestMatChainOrder(t *testing.T) {
	// Scale first, then translate.
	m := Identity().Scale(2, 2).Translate(10, 0)
	got := m.Apply(V2(1, 1))
	if !got.Approx(V2(12, 2), 1e-12) {
		t.Errorf("Apply() = %v, want (12, 2)", got)
	}
}

func TestMatInvert(t *testing.T) {
	m := Identity().Rotate(0.3).Scale(2, 3).Translate(5, -7)
	p := V2(4, 9)
	back := m.Invert().Apply(m.Apply(p))
	if !back.Approx(p, 1e-9) {
		t.Errorf("Invert round trip = %v, want %v", back, p)
	}

	singular := ScaleMat(0, 1)
	if !singular.Invert().IsIdentity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestMatTransformer(t *testing.T) {
	tests := []struct {
		name   string
		m      Mat
		u, v   float64
		wu, wv float64
	}{
		{"identity", Identity(), 0.3, 0.7, 0.3, 0.7},
		{"scale half shows child at half size", Identity().Scale(0.5, 0.5), 0.25, 0.25, 0.5, 0.5},
		{"translate right", Identity().Translate(50, 0), 0.75, 0.5, 0.5, 0.5},
		{"rotate half turn", Identity().Rotate(math.Pi), -0.5, -0.5, 0.5, 0.5},
	}
	res := Res{X: 200, Y: 100}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v, time := tt.m.Transformer()(tt.u, tt.v, 1.5, res)
			if math.Abs(u-tt.wu) > 1e-9 || math.Abs(v-tt.wv) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", u, v, tt.wu, tt.wv)
			}
			if time != 1.5 {
				t.Errorf("time = %v, want 1.5", time)
			}
		})
	}
}
