package shape

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/kantera"
)

// ErrEmptyRect is returned when the target rectangle has no area.
var ErrEmptyRect = errors.New("shape: empty rectangle")

// curveSteps is the number of line pieces a Bezier segment is flattened
// into for stroking.
const curveSteps = 16

// ClosedPathToImage closes path, fills it with fill and strokes it with
// stroke at lineWidth pixels, drawing the part of the plane inside rect.
// Path times are ignored; only the control points and segment kinds are
// used. Constant segments are drawn as lines.
func ClosedPathToImage(rect image.Rectangle, stroke, fill kantera.Rgba, lineWidth float64, path *kantera.Path[kantera.Vec2]) (*kantera.Image[kantera.Rgba], error) {
	if rect.Empty() {
		return nil, ErrEmptyRect
	}
	w, h := rect.Dx(), rect.Dy()
	pts := path.Points()
	origin := kantera.V2(float64(rect.Min.X), float64(rect.Min.Y))

	fillMask := image.NewAlpha(image.Rect(0, 0, w, h))
	if len(pts) > 1 {
		r := vector.NewRasterizer(w, h)
		at := func(p kantera.Vec2) (float32, float32) {
			q := p.Sub(origin)
			return float32(q.X), float32(q.Y)
		}
		r.MoveTo(at(pts[0].Value))
		for _, p := range pts[1:] {
			switch p.Kind {
			case kantera.PointBezier2:
				x1, y1 := at(p.H1)
				x, y := at(p.Value)
				r.QuadTo(x1, y1, x, y)
			case kantera.PointBezier3:
				x1, y1 := at(p.H1)
				x2, y2 := at(p.H2)
				x, y := at(p.Value)
				r.CubeTo(x1, y1, x2, y2, x, y)
			default:
				r.LineTo(at(p.Value))
			}
		}
		r.ClosePath()
		r.Draw(fillMask, fillMask.Bounds(), image.Opaque, image.Point{})
	}

	line := flatten(pts)
	half := lineWidth / 2
	pix := make([]kantera.Rgba, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := kantera.Transparent.NormalBlend(fill, float64(fillMask.Pix[y*fillMask.Stride+x])/255)
			if half > 0 && len(line) > 0 {
				px := float64(x) + 0.5 + origin.X
				py := float64(y) + 0.5 + origin.Y
				c = c.NormalBlend(stroke, coverage(polylineDistance(px, py, line)-half))
			}
			pix[y*w+x] = c
		}
	}
	return kantera.ImageFrom(w, h, pix)
}

// flatten turns a path into a closed polyline.
func flatten(pts []kantera.PathPoint[kantera.Vec2]) []kantera.Vec2 {
	if len(pts) == 0 {
		return nil
	}
	line := []kantera.Vec2{pts[0].Value}
	for i := 1; i < len(pts); i++ {
		prev, p := pts[i-1].Value, pts[i]
		switch p.Kind {
		case kantera.PointBezier2:
			for s := 1; s <= curveSteps; s++ {
				line = append(line, kantera.Bezier2(prev, p.H1, p.Value, float64(s)/curveSteps))
			}
		case kantera.PointBezier3:
			for s := 1; s <= curveSteps; s++ {
				line = append(line, kantera.Bezier3(prev, p.H1, p.H2, p.Value, float64(s)/curveSteps))
			}
		default:
			line = append(line, p.Value)
		}
	}
	return append(line, pts[0].Value)
}

func polylineDistance(px, py float64, line []kantera.Vec2) float64 {
	if len(line) == 1 {
		return math.Hypot(px-line[0].X, py-line[0].Y)
	}
	d := math.Inf(1)
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		d = min(d, segmentDistance(px, py, a.X, a.Y, b.X, b.Y))
	}
	return d
}
