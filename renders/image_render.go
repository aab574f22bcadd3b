package renders

import (
	"fmt"

	"github.com/gogpu/kantera"
)

// Sizing maps the canvas onto an image.
type Sizing uint8

const (
	// SizingFit stretches the image over the canvas.
	SizingFit Sizing = iota
	// SizingContain shows the whole image centred, keeping its aspect.
	SizingContain
	// SizingCover fills the canvas, keeping the aspect and cropping.
	SizingCover
	// SizingDotByDot shows one image pixel per canvas pixel from the
	// upper-left corner.
	SizingDotByDot
)

// String implements fmt.Stringer.
func (s Sizing) String() string {
	switch s {
	case SizingFit:
		return "fit"
	case SizingContain:
		return "contain"
	case SizingCover:
		return "cover"
	case SizingDotByDot:
		return "dot_by_dot"
	default:
		return fmt.Sprintf("Sizing(%d)", s)
	}
}

// ParseSizing parses the names returned by Sizing.String.
func ParseSizing(s string) (Sizing, error) {
	for z := SizingFit; z <= SizingDotByDot; z++ {
		if z.String() == s {
			return z, nil
		}
	}
	return 0, fmt.Errorf("renders: unknown sizing %q", s)
}

// ImageRender samples a static image.
type ImageRender[T any] struct {
	image  *kantera.Image[T]
	sizing Sizing
	interp kantera.Interpolation
	def    T
}

// NewImageRender returns a node showing img. Queries that land outside the
// image return def.
func NewImageRender[T any](img *kantera.Image[T], sizing Sizing, interp kantera.Interpolation, def T) *ImageRender[T] {
	return &ImageRender[T]{image: img, sizing: sizing, interp: interp, def: def}
}

// pixel maps normalized coordinates to continuous image coordinates.
func (r *ImageRender[T]) pixel(u, v float64, res kantera.Res) (float64, float64) {
	w, h := float64(r.image.Width), float64(r.image.Height)
	cw, ch := float64(res.X), float64(res.Y)
	switch r.sizing {
	case SizingContain, SizingCover:
		s := min(cw/w, ch/h)
		if r.sizing == SizingCover {
			s = max(cw/w, ch/h)
		}
		ox := (cw - w*s) / 2
		oy := (ch - h*s) / 2
		return (u*cw - ox) / s, (v*ch - oy) / s
	case SizingDotByDot:
		return u * cw, v * ch
	default:
		return u * w, v * h
	}
}

// Sample implements kantera.Render.
func (r *ImageRender[T]) Sample(u, v, _ float64, res kantera.Res) T {
	if r.image.Width == 0 || r.image.Height == 0 {
		return r.def
	}
	x, y := r.pixel(u, v, res)
	if x < 0 || y < 0 || x >= float64(r.image.Width) || y >= float64(r.image.Height) {
		return r.def
	}
	return kantera.Interpolate(r.image, x, y, r.interp)
}

// Render implements kantera.Render.
func (r *ImageRender[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.SampleAll[T](r, ro, out)
}

// Duration implements kantera.Render.
func (r *ImageRender[T]) Duration() float64 { return kantera.Infinite }
