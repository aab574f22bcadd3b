package text

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"

	"github.com/gogpu/kantera"
)

// Margin is the empty border around a rendered mask, in pixels.
const Margin = 20

// Render shapes s at size pixels per em and returns its coverage mask in
// [0, 1]. Lines are split at '\n', left-aligned and spaced by the font's
// line height.
func (f *Font) Render(s string, size float64) (*kantera.Image[float64], error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, ErrInvalidSize
	}
	m := f.Metrics(size)

	type line struct {
		glyphs   []glyph
		baseline float64
	}
	var (
		lines   []line
		advance float64
		count   int
	)
	for i, text := range strings.Split(s, "\n") {
		gs, adv := f.shape(text, size)
		lines = append(lines, line{gs, Margin + m.Ascent + float64(i)*m.LineHeight()})
		advance = max(advance, adv)
		count += len(gs)
	}

	w := int(math.Ceil(advance)) + 2*Margin
	h := int(math.Ceil(m.Ascent+m.Descent+float64(len(lines)-1)*m.LineHeight())) + 2*Margin

	kantera.Logger().Debug("text render", "lines", len(lines), "glyphs", count, "width", w, "height", h)

	r := vector.NewRasterizer(w, h)
	buf := f.bufs.Get().(*sfnt.Buffer)
	defer f.bufs.Put(buf)
	for _, l := range lines {
		f.outline(r, buf, l.glyphs, l.baseline, size)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	pix := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, a := range row {
			pix[y*w+x] = float64(a) / 255
		}
	}
	return kantera.ImageFrom(w, h, pix)
}

// outline adds the outlines of one shaped line to r.
func (f *Font) outline(r *vector.Rasterizer, buf *sfnt.Buffer, glyphs []glyph, baseline, size float64) {
	for _, g := range glyphs {
		segs, err := f.outlines.LoadGlyph(buf, g.id, toFixed(size), nil)
		if err != nil {
			continue
		}
		ox, oy := float32(Margin+g.x), float32(baseline+g.y)
		pt := func(i int, seg sfnt.Segment) (float32, float32) {
			return ox + float32(fromFixed(seg.Args[i].X)), oy + float32(fromFixed(seg.Args[i].Y))
		}
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				r.ClosePath()
				x, y := pt(0, seg)
				r.MoveTo(x, y)
			case sfnt.SegmentOpLineTo:
				x, y := pt(0, seg)
				r.LineTo(x, y)
			case sfnt.SegmentOpQuadTo:
				x1, y1 := pt(0, seg)
				x, y := pt(1, seg)
				r.QuadTo(x1, y1, x, y)
			case sfnt.SegmentOpCubeTo:
				x1, y1 := pt(0, seg)
				x2, y2 := pt(1, seg)
				x, y := pt(2, seg)
				r.CubeTo(x1, y1, x2, y2, x, y)
			}
		}
		r.ClosePath()
	}
}
