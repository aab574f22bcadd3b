package renders

import (
	"math"
	"sort"

	"github.com/gogpu/kantera"
)

// SequencerEntry is one clip on a Sequencer track.
type SequencerEntry struct {
	Start  float64
	Z      int
	Render kantera.Render[kantera.Rgba]
}

// Sequencer is a multi-track timeline. Every entry is visible over
// [Start, Start+Duration) and entries are normal-blended over the
// background in (Z, Start) order.
type Sequencer struct {
	background kantera.Rgba
	entries    []SequencerEntry
}

// NewSequencer returns a sequencer over a background colour.
func NewSequencer(background kantera.Rgba, entries ...SequencerEntry) *Sequencer {
	s := &Sequencer{background: background, entries: append([]SequencerEntry(nil), entries...)}
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i], s.entries[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.Start < b.Start
	})
	return s
}

// Append returns a new sequencer with one more entry.
func (s *Sequencer) Append(start float64, z int, r kantera.Render[kantera.Rgba]) *Sequencer {
	return NewSequencer(s.background, append(append([]SequencerEntry(nil), s.entries...), SequencerEntry{start, z, r})...)
}

// Sample implements kantera.Render.
func (s *Sequencer) Sample(u, v, time float64, res kantera.Res) kantera.Rgba {
	c := s.background
	for _, e := range s.entries {
		local := time - e.Start
		if local < 0 || local >= e.Render.Duration() {
			continue
		}
		c = c.NormalBlend(e.Render.Sample(u, v, local, res), 1)
	}
	return c
}

// Render fills the background, renders each entry over the frames it
// covers into a scratch buffer and blends it in.
func (s *Sequencer) Render(ro kantera.RenderOpt, out []kantera.Rgba) {
	kantera.CheckLen("Sequencer", ro, out)
	for i := range out {
		out[i] = s.background
	}

	n := ro.FrameSize()
	fr := float64(ro.Framerate)
	var scratch []kantera.Rgba
	for _, e := range s.entries {
		sf := int(math.Round(e.Start * fr))
		local := ro.FrameRange.Shift(-sf)
		local.Start = max(local.Start, 0)
		if d := e.Render.Duration(); !math.IsInf(d, 1) {
			local.End = min(local.End, int(math.Ceil(d*fr-1e-9)))
		}
		if local.Len() == 0 {
			continue
		}

		size := local.Len() * n
		if cap(scratch) < size {
			scratch = make([]kantera.Rgba, size)
		}
		scratch = scratch[:size]
		e.Render.Render(ro.WithFrames(local), scratch)

		dst := out[(local.Start+sf-ro.FrameRange.Start)*n:]
		for i, p := range scratch {
			dst[i] = dst[i].NormalBlend(p, 1)
		}
	}
}

// Duration is the latest end of any entry.
func (s *Sequencer) Duration() float64 {
	d := 0.0
	for _, e := range s.entries {
		d = max(d, e.Start+e.Render.Duration())
	}
	return d
}
