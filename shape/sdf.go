package shape

import "math"

// aaWidth is the half width of the antialiasing ramp in pixels.
const aaWidth = 0.7

// coverage maps a signed distance (negative inside) to [0, 1] with a
// Hermite smoothstep across the edge.
func coverage(sdf float64) float64 {
	if sdf >= aaWidth {
		return 0
	}
	if sdf <= -aaWidth {
		return 1
	}
	t := (sdf + aaWidth) / (2 * aaWidth)
	return 1 - t*t*(3-2*t)
}

// segmentDistance returns the distance from (px, py) to the segment a-b.
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = max(0, min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
