package renders

import (
	"sort"

	"github.com/gogpu/kantera"
)

// MapFunc mutates one rendered w x h frame in place.
type MapFunc[T any] func(w, h int, frame []T)

// Map post-processes every rendered frame of its child.
type Map[T any] struct {
	child kantera.Render[T]
	fn    MapFunc[T]
}

// NewMap returns child followed by fn.
func NewMap[T any](child kantera.Render[T], fn MapFunc[T]) *Map[T] {
	return &Map[T]{child: child, fn: fn}
}

// Sample panics: fn works on whole frames.
func (m *Map[T]) Sample(_, _, _ float64, _ kantera.Res) T {
	kantera.NotSamplable("Map")
	var zero T
	return zero
}

// Render always runs fn on whole canvas frames, so a request for part of
// the canvas sees the same pixels as a full render. Window pixels outside
// the canvas are passed through from the child unmapped.
func (m *Map[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.CheckLen("Map", ro, out)
	want, full := windowOf(ro), canvasWindow(ro)
	wide := want.union(full)

	buf := out
	if wide != want {
		buf = make([]T, wide.size()*ro.FrameRange.Len())
	}
	m.child.Render(wide.with(ro), buf)

	n := wide.size()
	var scratch []T
	if wide != full {
		scratch = make([]T, full.size())
	}
	for i := 0; i < ro.FrameRange.Len(); i++ {
		frame := buf[i*n : (i+1)*n]
		if scratch == nil {
			m.fn(ro.ResX, ro.ResY, frame)
			continue
		}
		copyWindow(frame, wide, scratch, full)
		m.fn(ro.ResX, ro.ResY, scratch)
		copyWindow(scratch, full, frame, wide)
	}
	if wide != want {
		cropFrames(buf, wide, out, want)
	}
}

// Duration implements kantera.Render.
func (m *Map[T]) Duration() float64 { return m.child.Duration() }

// brightness weights red over green over blue so sorted runs keep a
// stable hue order.
func brightness(p kantera.Rgba) float64 {
	return (p.R*100 + p.G*10 + p.B) / 111
}

// PixelSort sorts, brightest first, every horizontal run of pixels whose
// brightness is at most threshold.
func PixelSort(threshold float64) MapFunc[kantera.Rgba] {
	return func(w, h int, frame []kantera.Rgba) {
		for y := 0; y < h; y++ {
			row := frame[y*w : (y+1)*w]
			left := 0
			for left < w {
				for left < w && brightness(row[left]) > threshold {
					left++
				}
				if left == w {
					break
				}
				right := left + 1
				for right < w && brightness(row[right]) <= threshold {
					right++
				}
				span := row[left:right]
				sort.SliceStable(span, func(i, j int) bool { return brightness(span[i]) > brightness(span[j]) })
				left = right
			}
		}
	}
}

// Pixelate replaces each size x size block with its average. Blocks at the
// right and bottom edges may be smaller.
func Pixelate(size int) MapFunc[kantera.Rgba] {
	size = max(size, 1)
	return func(w, h int, frame []kantera.Rgba) {
		for by := 0; by < h; by += size {
			bh := min(size, h-by)
			for bx := 0; bx < w; bx += size {
				bw := min(size, w-bx)
				var sum kantera.Rgba
				for y := by; y < by+bh; y++ {
					for _, p := range frame[y*w+bx : y*w+bx+bw] {
						sum = sum.Add(p)
					}
				}
				avg := sum.Mul(1 / float64(bw*bh))
				for y := by; y < by+bh; y++ {
					row := frame[y*w+bx : y*w+bx+bw]
					for i := range row {
						row[i] = avg
					}
				}
			}
		}
	}
}
