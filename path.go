package kantera

import (
	"fmt"
	"sort"
)

// PointKind selects how the segment ending at a control point is evaluated.
type PointKind uint8

const (
	// PointConstant holds the previous value until the point is reached.
	PointConstant PointKind = iota
	// PointLinear interpolates linearly from the previous value.
	PointLinear
	// PointBezier2 is a quadratic Bezier with one control point.
	PointBezier2
	// PointBezier3 is a cubic Bezier with two control points.
	PointBezier3
)

// String implements fmt.Stringer.
func (k PointKind) String() string {
	switch k {
	case PointConstant:
		return "constant"
	case PointLinear:
		return "linear"
	case PointBezier2:
		return "bezier2"
	case PointBezier3:
		return "bezier3"
	default:
		return fmt.Sprintf("PointKind(%d)", k)
	}
}

// ParsePointKind parses the names returned by PointKind.String.
func ParsePointKind(s string) (PointKind, error) {
	switch s {
	case "constant":
		return PointConstant, nil
	case "linear":
		return PointLinear, nil
	case "bezier2":
		return PointBezier2, nil
	case "bezier", "bezier3":
		return PointBezier3, nil
	}
	return 0, fmt.Errorf("kantera: unknown point kind %q", s)
}

// PathPoint is one control point of a Path. Kind, H1 and H2 describe the
// segment that ends at this point; H1 is the Bezier2 control point and
// H1, H2 are the Bezier3 control points.
type PathPoint[T any] struct {
	Time  float64
	Value T
	Kind  PointKind
	H1    T
	H2    T
}

// Path is a piecewise keyframe curve. The first point is at time 0 and
// times never decrease. Path implements Timed and is immutable once handed
// to a render tree.
type Path[T any] struct {
	points []PathPoint[T]
}

// NewPath starts a path at time 0 with the given value.
func NewPath[T any](first T) *Path[T] {
	return &Path[T]{points: []PathPoint[T]{{Time: 0, Value: first, Kind: PointConstant}}}
}

// Append adds a point dt seconds after the last one. dt must be >= 0.
func (p *Path[T]) Append(dt float64, v T, kind PointKind) *Path[T] {
	return p.push(dt, PathPoint[T]{Value: v, Kind: kind})
}

// AppendBezier2 adds a quadratic Bezier segment with control point h.
func (p *Path[T]) AppendBezier2(dt float64, v, h T) *Path[T] {
	return p.push(dt, PathPoint[T]{Value: v, Kind: PointBezier2, H1: h})
}

// AppendBezier3 adds a cubic Bezier segment with control points h1, h2.
func (p *Path[T]) AppendBezier3(dt float64, v, h1, h2 T) *Path[T] {
	return p.push(dt, PathPoint[T]{Value: v, Kind: PointBezier3, H1: h1, H2: h2})
}

func (p *Path[T]) push(dt float64, pt PathPoint[T]) *Path[T] {
	if dt < 0 {
		panic(&ContractError{Node: "Path", Msg: fmt.Sprintf("negative time step %v", dt)})
	}
	pt.Time = p.points[len(p.points)-1].Time + dt
	p.points = append(p.points, pt)
	return p
}

// Points returns the control points. The slice must not be modified.
func (p *Path[T]) Points() []PathPoint[T] { return p.points }

// Duration returns the time of the last point.
func (p *Path[T]) Duration() float64 { return p.points[len(p.points)-1].Time }

// Value evaluates the path at time t.
func (p *Path[T]) Value(t float64) T {
	pts := p.points
	if t < pts[0].Time {
		return pts[0].Value
	}
	last := pts[len(pts)-1]
	if t >= last.Time {
		return last.Value
	}
	// First point strictly after t; its segment is [k-1, k).
	k := sort.Search(len(pts), func(i int) bool { return pts[i].Time > t })
	left, right := pts[k-1], pts[k]
	x := (t - left.Time) / (right.Time - left.Time)
	switch right.Kind {
	case PointLinear:
		return Lerp(left.Value, right.Value, x)
	case PointBezier2:
		return Bezier2(left.Value, right.H1, right.Value, x)
	case PointBezier3:
		return Bezier3(left.Value, right.H1, right.H2, right.Value, x)
	default:
		return left.Value
	}
}
