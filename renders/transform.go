package renders

import (
	"math"

	"github.com/gogpu/kantera"
)

// TransformFunc remaps a query before it reaches the child. It is the
// inverse of the visible motion: to show the child at scale k, return
// u/k.
type TransformFunc func(u, v, time float64, res kantera.Res) (float64, float64, float64)

// Transform samples its child through a coordinate remap.
type Transform[T any] struct {
	child kantera.Render[T]
	fn    TransformFunc
}

// NewTransform wraps child with fn.
func NewTransform[T any](child kantera.Render[T], fn TransformFunc) *Transform[T] {
	return &Transform[T]{child: child, fn: fn}
}

// NewMatTransform shows child moved by the affine chain m.
func NewMatTransform[T any](child kantera.Render[T], m kantera.Mat) *Transform[T] {
	return NewTransform(child, m.Transformer())
}

// Sample implements kantera.Render.
func (t *Transform[T]) Sample(u, v, time float64, res kantera.Res) T {
	u, v, time = t.fn(u, v, time, res)
	return t.child.Sample(u, v, time, res)
}

// Render implements kantera.Render.
func (t *Transform[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.SampleAll[T](t, ro, out)
}

// Duration implements kantera.Render.
func (t *Transform[T]) Duration() float64 { return t.child.Duration() }

// PathToTransformer builds a time-varying affine remap. The child is scaled
// by scale, rotated by rotation (radians) and moved by translation (in
// canvas units), all about the canvas centre (0.5, 0.5).
func PathToTransformer(translation, scale kantera.Timed[kantera.Vec2], rotation kantera.Timed[float64]) TransformFunc {
	return func(u, v, time float64, res kantera.Res) (float64, float64, float64) {
		w, h := float64(res.X), float64(res.Y)
		cx, cy := w/2, h/2
		tr := translation.Value(time)
		sc := scale.Value(time)
		m := kantera.Identity().
			Translate(-cx, -cy).
			Scale(sc.X, sc.Y).
			Rotate(rotation.Value(time)).
			Translate(cx+tr.X*w, cy+tr.Y*h)
		p := m.Invert().Apply(kantera.V2(u*w, v*h))
		return p.X / w, p.Y / h, time
	}
}

// CameraShake jitters the frame by up to size canvas units with a smooth
// quasi-periodic motion.
func CameraShake(size float64) TransformFunc {
	return func(u, v, time float64, _ kantera.Res) (float64, float64, float64) {
		r := time
		du := math.Sin(r*0.523+math.Sin(r*2)*3) * math.Cos(r) * size
		dv := math.Sin(r*0.525+math.Sin(r*2.1)*3) * math.Cos(r*1.001) * size
		return u + du, v + dv, time
	}
}

// RgbTransform remaps each colour channel independently, as for chromatic
// aberration. The output is opaque.
type RgbTransform struct {
	child   kantera.Render[kantera.Rgba]
	r, g, b TransformFunc
}

// NewRgbTransform wraps child with one remap per channel.
func NewRgbTransform(child kantera.Render[kantera.Rgba], r, g, b TransformFunc) *RgbTransform {
	return &RgbTransform{child: child, r: r, g: g, b: b}
}

// Sample implements kantera.Render.
func (t *RgbTransform) Sample(u, v, time float64, res kantera.Res) kantera.Rgba {
	sample := func(fn TransformFunc) kantera.Rgba {
		u, v, time := fn(u, v, time, res)
		return t.child.Sample(u, v, time, res)
	}
	return kantera.Rgba{R: sample(t.r).R, G: sample(t.g).G, B: sample(t.b).B, A: 1}
}

// Render implements kantera.Render.
func (t *RgbTransform) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.SampleAll[kantera.Rgba](t, ro, out)
}

// Duration implements kantera.Render.
func (t *RgbTransform) Duration() float64 { return t.child.Duration() }
