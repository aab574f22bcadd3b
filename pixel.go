package kantera

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Rgba is a linear floating-point colour. Channels are nominally in [0, 1]
// but may leave that range while a frame is composed; they are clamped only
// when encoded.
type Rgba struct {
	R, G, B, A float64
}

// RGBA creates a colour from its four channels.
func RGBA(r, g, b, a float64) Rgba {
	return Rgba{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque colour.
func RGB(r, g, b float64) Rgba {
	return Rgba{R: r, G: g, B: b, A: 1}
}

// Add returns the componentwise sum.
func (c Rgba) Add(o Rgba) Rgba {
	return Rgba{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Mul returns the colour with every channel scaled by s.
func (c Rgba) Mul(s float64) Rgba {
	return Rgba{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Lerp performs linear interpolation between two colours.
func (c Rgba) Lerp(o Rgba, t float64) Rgba {
	return Rgba{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NormalBlend composites src over c with the extra opacity alpha:
//
//	a   = src.A * alpha
//	out = c*(1-a) + src*a
//	out.A = 1 - (1-c.A)*(1-a)
func (c Rgba) NormalBlend(src Rgba, alpha float64) Rgba {
	a := src.A * alpha
	return Rgba{
		R: c.R*(1-a) + src.R*a,
		G: c.G*(1-a) + src.G*a,
		B: c.B*(1-a) + src.B*a,
		A: 1 - (1-c.A)*(1-a),
	}
}

// Vec3 returns the colour channels as (R, G, B), dropping alpha.
func (c Rgba) Vec3() Vec3 { return Vec3{X: c.R, Y: c.G, Z: c.B} }

// Luma returns the Rec. 601 luma of the colour.
func (c Rgba) Luma() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Color converts Rgba to an 8-bit color.NRGBA quantised with ToU8.
func (c Rgba) Color() color.Color {
	r, g, b, a := c.U8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to a straight-alpha Rgba.
func FromColor(c color.Color) Rgba {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Rgba{
		R: float64(n.R) / 65535,
		G: float64(n.G) / 65535,
		B: float64(n.B) / 65535,
		A: float64(n.A) / 65535,
	}
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", optionally prefixed
// with '#'. Malformed input yields opaque black.
func Hex(s string) Rgba {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 || len(s) == 4 {
		long := make([]byte, 0, 2*len(s))
		for i := range len(s) {
			long = append(long, s[i], s[i])
		}
		s = string(long)
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}
	ch := func(shift uint) float64 { return float64(v>>shift&0xff) / 255 }
	return Rgba{R: ch(24), G: ch(16), B: ch(8), A: ch(0)}
}

// ToU8 saturates v to [0, 1] and scales it by 255.99 with floor. This is
// the quantisation used for every 8-bit output.
func ToU8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(math.Floor(min(v, 1) * 255.99))
}

// U8 returns the four channels quantised with ToU8.
func (c Rgba) U8() (r, g, b, a uint8) {
	return ToU8(c.R), ToU8(c.G), ToU8(c.B), ToU8(c.A)
}

// HSL creates an opaque colour. h is in turns and wraps; s and l are in
// [0, 1].
func HSL(h, s, l float64) Rgba {
	h -= math.Floor(h)
	if s == 0 {
		return RGB(l, l, l)
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return RGB(hueChannel(p, q, h+1.0/3), hueChannel(p, q, h), hueChannel(p, q, h-1.0/3))
}

func hueChannel(p, q, t float64) float64 {
	t -= math.Floor(t)
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// RgbU8 is an 8-bit RGB pixel as produced by video decoders.
type RgbU8 struct {
	R, G, B uint8
}

// RgbU8ToRgba converts an 8-bit pixel to an opaque Rgba.
func RgbU8ToRgba(p RgbU8) Rgba {
	return Rgba{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255, A: 1}
}

// GrayToRgba converts a coverage value to an opaque grey.
func GrayToRgba(v float64) Rgba {
	return Rgba{R: v, G: v, B: v, A: 1}
}

// AlphaToRgba converts a coverage value to white with that opacity.
func AlphaToRgba(v float64) Rgba {
	return Rgba{R: 1, G: 1, B: 1, A: v}
}

// Common colours.
var (
	Black, White     = RGB(0, 0, 0), RGB(1, 1, 1)
	Red, Green, Blue = RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)
	Transparent      = Rgba{}
)
