package renders

import (
	"fmt"

	"github.com/gogpu/kantera"
)

// Subsampling selects a chroma subsampling scheme by its block size.
type Subsampling uint8

const (
	// T444 keeps full chroma (1x1 blocks).
	T444 Subsampling = iota
	// T422 shares chroma across 2x1 blocks.
	T422
	// T420 shares chroma across 2x2 blocks.
	T420
	// T411 shares chroma across 4x1 blocks.
	T411
)

// String implements fmt.Stringer.
func (s Subsampling) String() string {
	switch s {
	case T444:
		return "444"
	case T422:
		return "422"
	case T420:
		return "420"
	case T411:
		return "411"
	default:
		return fmt.Sprintf("Subsampling(%d)", s)
	}
}

// ParseSubsampling accepts "444", "422", "420" and "411".
func ParseSubsampling(s string) (Subsampling, error) {
	for k := T444; k <= T411; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("renders: unknown subsampling %q", s)
}

func (s Subsampling) block() (int, int) {
	switch s {
	case T422:
		return 2, 1
	case T420:
		return 2, 2
	case T411:
		return 4, 1
	default:
		return 1, 1
	}
}

// ColorSampling simulates chroma subsampling of its child.
type ColorSampling struct {
	child kantera.Render[kantera.Rgba]
	kind  Subsampling
}

// NewColorSampling returns child with chroma shared per block of kind.
func NewColorSampling(child kantera.Render[kantera.Rgba], kind Subsampling) *ColorSampling {
	return &ColorSampling{child: child, kind: kind}
}

// Sample panics: chroma is taken from a neighbour.
func (c *ColorSampling) Sample(_, _, _ float64, _ kantera.Res) kantera.Rgba {
	kantera.NotSamplable("ColorSampling")
	return kantera.Rgba{}
}

// Render keeps every pixel's luma and replaces its chroma with that of
// the top-left pixel of its block. Blocks sit on a grid anchored at canvas
// pixel (0, 0), whatever window is requested. Alpha is left untouched.
func (c *ColorSampling) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.CheckLen("ColorSampling", ro, out)
	bw, bh := c.kind.block()
	want := windowOf(ro)
	grid := want
	grid.x.Start = alignDown(want.x.Start, bw)
	grid.y.Start = alignDown(want.y.Start, bh)

	buf := out
	if grid != want {
		buf = make([]kantera.Rgba, grid.size()*ro.FrameRange.Len())
	}
	c.child.Render(grid.with(ro), buf)

	w, h, n := grid.x.Len(), grid.y.Len(), grid.size()
	for i := 0; i < ro.FrameRange.Len(); i++ {
		frame := buf[i*n : (i+1)*n]
		for by := 0; by < h; by += bh {
			for bx := 0; bx < w; bx += bw {
				chroma := rgbToYPbPr(frame[by*w+bx])
				for y := by; y < min(by+bh, h); y++ {
					for x := bx; x < min(bx+bw, w); x++ {
						p := &frame[y*w+x]
						chroma.X = rgbToYPbPr(*p).X
						p.R, p.G, p.B = yPbPrToRgb(chroma)
					}
				}
			}
		}
	}
	if grid != want {
		cropFrames(buf, grid, out, want)
	}
}

// Duration implements kantera.Render.
func (c *ColorSampling) Duration() float64 { return c.child.Duration() }

// BT.601 coefficients.
const (
	kr = 0.299
	kg = 0.587
	kb = 0.114
)

var lumaWeights = kantera.V3(kr, kg, kb)

// rgbToYPbPr returns (Y', Pb, Pr) as X, Y, Z.
func rgbToYPbPr(p kantera.Rgba) kantera.Vec3 {
	y := lumaWeights.Dot(p.Vec3())
	return kantera.V3(y, 0.5*(p.B-y)/(1-kb), 0.5*(p.R-y)/(1-kr))
}

func yPbPrToRgb(v kantera.Vec3) (r, g, b float64) {
	r = v.Z*(1-kr)*2 + v.X
	b = v.Y*(1-kb)*2 + v.X
	g = (v.X - kr*r - kb*b) / kg
	return r, g, b
}
