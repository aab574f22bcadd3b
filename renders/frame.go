package renders

import (
	"fmt"
	"math"

	"github.com/gogpu/kantera"
)

// FramePolicy says what a Frame shows outside [0, 1]².
type FramePolicy uint8

const (
	// FrameConstant shows a fixed value.
	FrameConstant FramePolicy = iota
	// FrameExtend clamps to the nearest edge.
	FrameExtend
	// FrameRepeat tiles the child.
	FrameRepeat
	// FrameReflect mirrors the child on every other tile.
	FrameReflect
)

// String implements fmt.Stringer.
func (p FramePolicy) String() string {
	switch p {
	case FrameConstant:
		return "constant"
	case FrameExtend:
		return "extend"
	case FrameRepeat:
		return "repeat"
	case FrameReflect:
		return "reflect"
	default:
		return fmt.Sprintf("FramePolicy(%d)", p)
	}
}

// ParseFramePolicy parses the names returned by FramePolicy.String.
func ParseFramePolicy(s string) (FramePolicy, error) {
	for _, p := range []FramePolicy{FrameConstant, FrameExtend, FrameRepeat, FrameReflect} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("renders: unknown frame policy %q", s)
}

// edgeMax is the largest coordinate Extend clamps to; it keeps the query
// inside the last pixel instead of on the far edge.
const edgeMax = 0.9999999

// Frame defines its child outside the unit square.
type Frame[T any] struct {
	child    kantera.Render[T]
	policy   FramePolicy
	constant T
}

// NewFrame wraps child with policy. For FrameConstant the outside value
// is the zero value; use NewFrameConstant to choose it.
func NewFrame[T any](child kantera.Render[T], policy FramePolicy) *Frame[T] {
	return &Frame[T]{child: child, policy: policy}
}

// NewFrameConstant shows c outside the unit square.
func NewFrameConstant[T any](child kantera.Render[T], c T) *Frame[T] {
	return &Frame[T]{child: child, policy: FrameConstant, constant: c}
}

// Sample implements kantera.Render.
func (f *Frame[T]) Sample(u, v, time float64, res kantera.Res) T {
	if 0 <= u && u <= 1 && 0 <= v && v <= 1 {
		return f.child.Sample(u, v, time, res)
	}
	switch f.policy {
	case FrameExtend:
		u, v = kantera.Clamp(u, 0, edgeMax), kantera.Clamp(v, 0, edgeMax)
	case FrameRepeat:
		u, v = u-math.Floor(u), v-math.Floor(v)
	case FrameReflect:
		u, v = reflect(u), reflect(v)
	default:
		return f.constant
	}
	return f.child.Sample(u, v, time, res)
}

// reflect folds x into [0, 1], mirroring odd tiles.
func reflect(x float64) float64 {
	fl := math.Floor(x)
	if int64(fl)%2 == 0 {
		return x - fl
	}
	return 1 - x + fl
}

// Render implements kantera.Render.
func (f *Frame[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.SampleAll[T](f, ro, out)
}

// Duration implements kantera.Render.
func (f *Frame[T]) Duration() float64 { return f.child.Duration() }
