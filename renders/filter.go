package renders

import (
	"errors"
	"fmt"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/internal/filter"
)

// ErrKernelSize is returned for kernels without a centre tap.
var ErrKernelSize = errors.New("renders: kernel dimensions must be odd")

// Filter convolves its child with a per-channel kernel.
type Filter struct {
	child  kantera.Render[kantera.Rgba]
	kernel *kantera.Image[kantera.Rgba]
}

// NewFilter returns a convolution of child with kernel. The kernel is not
// flipped; symmetric kernels are unaffected.
func NewFilter(child kantera.Render[kantera.Rgba], kernel *kantera.Image[kantera.Rgba]) (*Filter, error) {
	if kernel.Width%2 == 0 || kernel.Height%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrKernelSize, kernel.Width, kernel.Height)
	}
	return &Filter{child: child, kernel: kernel}, nil
}

// MakeGaussianFilter returns a normalized w x h Gaussian kernel with the
// same weights on every channel. A side <= 0 is sized to cover three
// standard deviations.
func MakeGaussianFilter(w, h int, sigma float64) *kantera.Image[kantera.Rgba] {
	if w <= 0 {
		w = filter.GaussianSize(sigma)
	}
	if h <= 0 {
		h = filter.GaussianSize(sigma)
	}
	return kernelImage(filter.Gaussian(w, sigma), filter.Gaussian(h, sigma))
}

// MakeBoxFilter returns a (2rx+1) x (2ry+1) kernel of equal weights.
func MakeBoxFilter(rx, ry int) *kantera.Image[kantera.Rgba] {
	return kernelImage(filter.Box(rx), filter.Box(ry))
}

func kernelImage(kx, ky []float64) *kantera.Image[kantera.Rgba] {
	weights := filter.Outer(kx, ky)
	pix := make([]kantera.Rgba, len(weights))
	for i, k := range weights {
		pix[i] = kantera.Rgba{R: k, G: k, B: k, A: k}
	}
	return &kantera.Image[kantera.Rgba]{Width: len(kx), Height: len(ky), Pix: pix}
}

// Sample panics: convolution needs neighbouring pixels.
func (f *Filter) Sample(_, _, _ float64, _ kantera.Res) kantera.Rgba {
	kantera.NotSamplable("Filter")
	return kantera.Rgba{}
}

// Render asks the child for the window grown by half the kernel and
// convolves each frame.
func (f *Filter) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.CheckLen("Filter", ro, out)
	kw, kh := f.kernel.Width, f.kernel.Height
	exp := ro.Expand(kw/2, kh/2)
	src := make([]kantera.Rgba, exp.Len())
	f.child.Render(exp, src)

	w, h := ro.Width(), ro.Height()
	n, en := ro.FrameSize(), exp.FrameSize()
	for i := 0; i < ro.FrameRange.Len(); i++ {
		filter.Convolve(src[i*en:(i+1)*en], f.kernel.Pix, kw, kh, w, h, out[i*n:(i+1)*n])
	}
}

// Duration implements kantera.Render.
func (f *Filter) Duration() float64 { return f.child.Duration() }
