package renders

import "github.com/gogpu/kantera"

// window is the pixel rectangle of one frame of a request.
type window struct {
	x, y kantera.Range
}

func windowOf(ro kantera.RenderOpt) window { return window{x: ro.XRange, y: ro.YRange} }

func canvasWindow(ro kantera.RenderOpt) window {
	return window{x: kantera.Range{End: ro.ResX}, y: kantera.Range{End: ro.ResY}}
}

func (w window) size() int { return w.x.Len() * w.y.Len() }

func (w window) union(o window) window {
	return window{
		x: kantera.Range{Start: min(w.x.Start, o.x.Start), End: max(w.x.End, o.x.End)},
		y: kantera.Range{Start: min(w.y.Start, o.y.Start), End: max(w.y.End, o.y.End)},
	}
}

// with returns ro restricted to the window w.
func (w window) with(ro kantera.RenderOpt) kantera.RenderOpt {
	ro.XRange, ro.YRange = w.x, w.y
	return ro
}

// copyWindow copies the pixels where the two windows overlap from the
// frame src laid out over from into the frame dst laid out over to.
func copyWindow[T any](src []T, from window, dst []T, to window) {
	xs, ys := from.x.Intersect(to.x), from.y.Intersect(to.y)
	n := xs.Len()
	if n == 0 {
		return
	}
	fw, tw := from.x.Len(), to.x.Len()
	for y := ys.Start; y < ys.End; y++ {
		s := (y-from.y.Start)*fw + xs.Start - from.x.Start
		d := (y-to.y.Start)*tw + xs.Start - to.x.Start
		copy(dst[d:d+n], src[s:s+n])
	}
}

// cropFrames copies every frame of src, rendered over from, into dst laid
// out over to. to must lie inside from.
func cropFrames[T any](src []T, from window, dst []T, to window) {
	fn, tn := from.size(), to.size()
	if tn == 0 {
		return
	}
	for i := 0; i*tn < len(dst); i++ {
		copyWindow(src[i*fn:(i+1)*fn], from, dst[i*tn:(i+1)*tn], to)
	}
}

// alignDown rounds v down to a multiple of step, also for negative v.
func alignDown(v, step int) int {
	m := v % step
	if m < 0 {
		m += step
	}
	return v - m
}
