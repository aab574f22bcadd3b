package renders

import (
	"math"

	"github.com/gogpu/kantera"
)

// BlendMode says how a Composite layer is merged with the layers below it.
type BlendMode struct {
	normal bool
	alpha  kantera.Param[float64]
}

// BlendNone overwrites the accumulator with the layer.
func BlendNone() BlendMode { return BlendMode{} }

// BlendNormal alpha-blends the layer with extra opacity alpha(t).
func BlendNormal(alpha kantera.Param[float64]) BlendMode {
	return BlendMode{normal: true, alpha: alpha}
}

// IsNormal reports whether the mode blends.
func (m BlendMode) IsNormal() bool { return m.normal }

// CompositeLayer is one layer of a Composite.
type CompositeLayer struct {
	Render kantera.Render[kantera.Rgba]
	Mode   BlendMode
}

// Layer is a convenience constructor for CompositeLayer.
func Layer(r kantera.Render[kantera.Rgba], mode BlendMode) CompositeLayer {
	return CompositeLayer{Render: r, Mode: mode}
}

// Composite stacks layers bottom to top.
type Composite struct {
	layers []CompositeLayer
}

// NewComposite returns a stack of layers; the first is the bottom.
func NewComposite(layers ...CompositeLayer) *Composite {
	return &Composite{layers: append([]CompositeLayer(nil), layers...)}
}

// Sample implements kantera.Render.
func (c *Composite) Sample(u, v, time float64, res kantera.Res) kantera.Rgba {
	var acc kantera.Rgba
	for _, l := range c.layers {
		p := l.Render.Sample(u, v, time, res)
		if l.Mode.normal {
			acc = acc.NormalBlend(p, l.Mode.alpha.Value(time))
		} else {
			acc = p
		}
	}
	return acc
}

// Render renders each layer once over the whole request and blends it
// frame by frame.
func (c *Composite) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.CheckLen("Composite", ro, out)
	clear(out)
	n := ro.FrameSize()
	var scratch []kantera.Rgba
	for _, l := range c.layers {
		if !l.Mode.normal {
			l.Render.Render(ro, out)
			continue
		}
		if scratch == nil {
			scratch = make([]kantera.Rgba, len(out))
		}
		l.Render.Render(ro, scratch)
		for i, f := 0, ro.FrameRange.Start; f < ro.FrameRange.End; i, f = i+1, f+1 {
			alpha := l.Mode.alpha.Value(ro.Time(f))
			dst, src := out[i*n:(i+1)*n], scratch[i*n:(i+1)*n]
			for j, p := range src {
				dst[j] = dst[j].NormalBlend(p, alpha)
			}
		}
	}
}

// Duration is the shortest layer duration.
func (c *Composite) Duration() float64 {
	d := math.Inf(1)
	for _, l := range c.layers {
		d = min(d, l.Render.Duration())
	}
	return d
}
