package kantera

import "math"

// Mat is an affine map of pixel coordinates:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Translate, Scale, Rotate and Then each append a step that runs after the
// steps already in m.
type Mat struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the map that leaves every point in place.
func Identity() Mat { return Mat{A: 1, E: 1} }

// TranslateMat moves by (x, y) pixels.
func TranslateMat(x, y float64) Mat { return Mat{A: 1, C: x, E: 1, F: y} }

// ScaleMat scales about the origin.
func ScaleMat(x, y float64) Mat { return Mat{A: x, E: y} }

// RotateMat rotates counter-clockwise about the origin by angle radians.
func RotateMat(angle float64) Mat {
	s, c := math.Sincos(angle)
	return Mat{A: c, B: -s, D: s, E: c}
}

// Multiply returns the composition m∘n: n runs first.
func (m Mat) Multiply(n Mat) Mat {
	return Mat{
		A: m.A*n.A + m.B*n.D, B: m.A*n.B + m.B*n.E, C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D, E: m.D*n.B + m.E*n.E, F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Then appends n.
func (m Mat) Then(n Mat) Mat { return n.Multiply(m) }

// Translate appends a move by (x, y) pixels.
func (m Mat) Translate(x, y float64) Mat { return m.Then(TranslateMat(x, y)) }

// Scale appends a scale about the origin.
func (m Mat) Scale(x, y float64) Mat { return m.Then(ScaleMat(x, y)) }

// Rotate appends a counter-clockwise rotation by angle radians.
func (m Mat) Rotate(angle float64) Mat { return m.Then(RotateMat(angle)) }

// Apply maps p.
func (m Mat) Apply(p Vec2) Vec2 {
	return Vec2{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// Invert returns the inverse map. A singular m collapses the canvas, and
// its inverse is taken to be the identity.
func (m Mat) Invert() Mat {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	k := 1 / det
	return Mat{
		A: m.E * k, B: -m.B * k, C: (m.B*m.F - m.C*m.E) * k,
		D: -m.D * k, E: m.A * k, F: (m.C*m.D - m.A*m.F) * k,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Mat) IsIdentity() bool { return m == Identity() }

// Transformer returns a coordinate remap for Transform nodes. The chain
// describes where the child's content moves on the canvas, so the remap
// applies its inverse: (u, v) is taken to pixel space with res, mapped back
// through the inverse matrix, and normalized again. Time passes through.
func (m Mat) Transformer() func(u, v, t float64, res Res) (float64, float64, float64) {
	inv := m.Invert()
	return func(u, v, t float64, res Res) (float64, float64, float64) {
		w, h := float64(res.X), float64(res.Y)
		p := inv.Apply(Vec2{X: u * w, Y: v * h})
		return p.X / w, p.Y / h, t
	}
}
