package audiorenders

import (
	"fmt"
	"math"

	"github.com/viterin/vek"

	"github.com/gogpu/kantera"
)

// SequencerEntry schedules a child at Start seconds.
type SequencerEntry struct {
	Start  float64
	Render kantera.AudioRender
}

// Sequencer mixes children, each over [Start, Start+Duration).
type Sequencer struct {
	entries  []SequencerEntry
	channels int
}

// NewSequencer returns a mix of entries. All children must have the same
// channel count; an empty sequencer is stereo silence.
func NewSequencer(entries ...SequencerEntry) (*Sequencer, error) {
	s := &Sequencer{entries: append([]SequencerEntry(nil), entries...), channels: 2}
	for i, e := range s.entries {
		n := e.Render.ChannelNum()
		if i == 0 {
			s.channels = n
			continue
		}
		if n != s.channels {
			return nil, fmt.Errorf("%w: entry %d has %d channels, want %d", ErrChannelLayout, i, n, s.channels)
		}
	}
	return s, nil
}

// Append returns a new sequencer with one more entry.
func (s *Sequencer) Append(start float64, r kantera.AudioRender) (*Sequencer, error) {
	return NewSequencer(append(append([]SequencerEntry(nil), s.entries...), SequencerEntry{start, r})...)
}

// Render implements kantera.AudioRender.
func (s *Sequencer) Render(ro kantera.AudioRenderOpt) []float64 {
	size := ro.SampleRange.Len()
	out := make([]float64, s.channels*size)
	sr := float64(ro.SampleRate)
	for _, e := range s.entries {
		off := int64(math.Round(e.Start * sr))
		local := kantera.Range64{
			Start: max(ro.SampleRange.Start-off, 0),
			End:   ro.SampleRange.End - off,
		}
		if d := e.Render.Duration(); !math.IsInf(d, 1) {
			local.End = min(local.End, int64(math.Floor(d*sr)))
		}
		n := local.Len()
		if n == 0 {
			continue
		}
		src := e.Render.Render(kantera.AudioRenderOpt{SampleRange: local, SampleRate: ro.SampleRate})
		at := int(local.Start + off - ro.SampleRange.Start)
		for c := 0; c < s.channels; c++ {
			vek.Add_Inplace(out[c*size+at:c*size+at+n], src[c*n:(c+1)*n])
		}
	}
	return out
}

// ChannelNum implements kantera.AudioRender.
func (s *Sequencer) ChannelNum() int { return s.channels }

// Duration is the latest end of any entry.
func (s *Sequencer) Duration() float64 {
	d := 0.0
	for _, e := range s.entries {
		d = max(d, e.Start+e.Render.Duration())
	}
	return d
}
