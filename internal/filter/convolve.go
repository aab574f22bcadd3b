package filter

import "github.com/gogpu/kantera"

// Convolve correlates src with a kw x kh kernel of per-channel weights.
// src is a (w+kw-1) x (h+kh-1) window whose margin surrounds the w x h
// output; dst receives w*h values.
func Convolve(src []kantera.Rgba, kernel []kantera.Rgba, kw, kh, w, h int, dst []kantera.Rgba) {
	sw := w + kw - 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc kantera.Rgba
			for j := 0; j < kh; j++ {
				row := src[(y+j)*sw+x : (y+j)*sw+x+kw]
				krow := kernel[j*kw : (j+1)*kw]
				for i, p := range row {
					k := krow[i]
					acc.R += p.R * k.R
					acc.G += p.G * k.G
					acc.B += p.B * k.B
					acc.A += p.A * k.A
				}
			}
			dst[y*w+x] = acc
		}
	}
}

// BoxBlur applies a (2r+1) box filter horizontally then vertically with a
// sliding accumulator, so each pass costs O(1) per pixel regardless of r.
// src is a (w+2*pad) x (h+2*pad) window with pad >= r; dst receives the
// w x h interior. tmp must hold (h+2*pad)*w values.
func BoxBlur(src []kantera.Rgba, w, h, pad, r int, tmp, dst []kantera.Rgba) {
	sw, sh := w+2*pad, h+2*pad
	inv := 1 / float64(2*r+1)

	// Horizontal pass over every row of the window, interior columns only.
	for y := 0; y < sh; y++ {
		row := src[y*sw : (y+1)*sw]
		var sum kantera.Rgba
		for x := pad - r; x <= pad+r; x++ {
			sum = addRgba(sum, row[x])
		}
		for x := 0; x < w; x++ {
			tmp[y*w+x] = sum.Mul(inv)
			if x+1 < w {
				sum = addRgba(sum, row[pad+x+1+r])
				sum = subRgba(sum, row[pad+x-r])
			}
		}
	}

	// Vertical pass over interior rows.
	for x := 0; x < w; x++ {
		var sum kantera.Rgba
		for y := pad - r; y <= pad+r; y++ {
			sum = addRgba(sum, tmp[y*w+x])
		}
		for y := 0; y < h; y++ {
			dst[y*w+x] = sum.Mul(inv)
			if y+1 < h {
				sum = addRgba(sum, tmp[(pad+y+1+r)*w+x])
				sum = subRgba(sum, tmp[(pad+y-r)*w+x])
			}
		}
	}
}

// Crop copies the w x h interior of a window padded by pad on each side.
func Crop(src []kantera.Rgba, w, h, pad int, dst []kantera.Rgba) {
	sw := w + 2*pad
	for y := 0; y < h; y++ {
		copy(dst[y*w:(y+1)*w], src[(y+pad)*sw+pad:(y+pad)*sw+pad+w])
	}
}

func addRgba(a, b kantera.Rgba) kantera.Rgba {
	return kantera.Rgba{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B, A: a.A + b.A}
}

func subRgba(a, b kantera.Rgba) kantera.Rgba {
	return kantera.Rgba{R: a.R - b.R, G: a.G - b.G, B: a.B - b.B, A: a.A - b.A}
}
