package text

import (
	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
)

// glyph is a shaped glyph positioned on the baseline, in pixels.
type glyph struct {
	id   sfnt.GlyphIndex
	x, y float64
}

// shape lays out s on one line starting at x = 0 and returns the glyphs and
// the total advance.
func (f *Font) shape(s string, size float64) ([]glyph, float64) {
	var out []glyph
	pen := 0.0
	for _, r := range visualRuns(s) {
		dir := di.DirectionLTR
		if r.rtl {
			dir = di.DirectionRTL
		}
		in := shaping.Input{
			Text:      r.runes,
			RunStart:  0,
			RunEnd:    len(r.runes),
			Direction: dir,
			// Face keeps glyph caches and is cheap to create; one per call.
			Face:     gtfont.NewFace(f.shaping),
			Size:     toFixed(size),
			Script:   detectScript(r.runes),
			Language: language.NewLanguage("en"),
		}
		hb := f.shapers.Get().(*shaping.HarfbuzzShaper)
		res := hb.Shape(in)
		f.shapers.Put(hb)

		for _, g := range res.Glyphs {
			out = append(out, glyph{
				id: sfnt.GlyphIndex(g.GlyphID),
				x:  pen + fromFixed(g.XOffset),
				y:  -fromFixed(g.YOffset),
			})
			pen += fromFixed(g.Advance)
		}
	}
	return out, pen
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
