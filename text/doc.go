// Package text turns strings into coverage masks.
//
// A Font is parsed twice from the same bytes: go-text/typesetting shapes
// each bidi run into positioned glyphs (kerning, ligatures, complex
// scripts) and golang.org/x/image/font/sfnt supplies the outlines, which
// are filled with golang.org/x/image/vector.
//
//	f, err := text.LoadFont("ipaexg.ttf")
//	mask, err := f.Render("にゃはは", 32)
//
// The mask is a kantera.Image[float64] with 1 for fully covered pixels. It
// has a 20 pixel margin on every side and the baseline sits at
// 20 + ascent.
package text
