package kantera

import "math"

// Vec2 is a point or offset in canvas space, where the shorter canvas side
// spans one unit. It is also the value type of positional Paths.
type Vec2 struct {
	X, Y float64
}

// V2 returns Vec2{x, y}.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(w Vec2) Vec2    { return Vec2{X: v.X + w.X, Y: v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2    { return Vec2{X: v.X - w.X, Y: v.Y - w.Y} }
func (v Vec2) Mul(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }
func (v Vec2) Length() float64    { return math.Hypot(v.X, v.Y) }

// Rotate turns v counter-clockwise by angle radians about the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// Approx reports whether both components differ by less than eps.
func (v Vec2) Approx(w Vec2, eps float64) bool {
	return math.Abs(v.X-w.X) < eps && math.Abs(v.Y-w.Y) < eps
}

// Vec3 is a triple of reals, used for colour-space vectors such as Y'PbPr.
type Vec3 struct {
	X, Y, Z float64
}

// V3 returns Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(w Vec3) Vec3    { return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z} }
func (v Vec3) Sub(w Vec3) Vec3    { return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z} }
func (v Vec3) Mul(s float64) Vec3 { return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Approx reports whether every component differs by less than eps.
func (v Vec3) Approx(w Vec3, eps float64) bool {
	return math.Abs(v.X-w.X) < eps && math.Abs(v.Y-w.Y) < eps && math.Abs(v.Z-w.Z) < eps
}
