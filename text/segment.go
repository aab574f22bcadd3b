package text

import (
	"golang.org/x/text/unicode/bidi"
)

// run is a maximal substring with one bidi direction.
type run struct {
	runes []rune
	rtl   bool
}

// visualRuns splits s into bidi runs in display order. Plain left-to-right
// text is a single run.
func visualRuns(s string) []run {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []run{{runes: runes}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []run{{runes: runes}}
	}
	out := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		// Pos is an inclusive rune range.
		start, end := r.Pos()
		if start < 0 || end >= len(runes) || start > end {
			continue
		}
		out = append(out, run{
			runes: runes[start : end+1],
			rtl:   r.Direction() == bidi.RightToLeft,
		})
	}
	if len(out) == 0 {
		return []run{{runes: runes}}
	}
	return out
}
