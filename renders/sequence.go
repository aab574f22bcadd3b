package renders

import (
	"math"
	"sort"

	"github.com/gogpu/kantera"
)

// SequenceEntry is one page of a Sequence.
type SequenceEntry[T any] struct {
	Start   float64
	Restart bool
	Render  kantera.Render[T]
}

// Sequence is a one-track timeline: at time t the entry with the greatest
// Start <= t is shown. Entries that restart reset the child clock, so the
// active child sees t minus the Start of the latest restarting entry at or
// before it.
type Sequence[T any] struct {
	entries []SequenceEntry[T]
}

// NewSequence returns a sequence of the given entries ordered by Start.
// Entries with equal Start keep their order; the later one wins.
func NewSequence[T any](entries ...SequenceEntry[T]) *Sequence[T] {
	s := &Sequence[T]{entries: append([]SequenceEntry[T](nil), entries...)}
	sort.SliceStable(s.entries, func(i, j int) bool { return s.entries[i].Start < s.entries[j].Start })
	return s
}

// Append returns a new sequence with one more entry.
func (s *Sequence[T]) Append(start float64, restart bool, r kantera.Render[T]) *Sequence[T] {
	return NewSequence(append(append([]SequenceEntry[T](nil), s.entries...), SequenceEntry[T]{start, restart, r})...)
}

// Entries returns the ordered entries. The slice must not be modified.
func (s *Sequence[T]) Entries() []SequenceEntry[T] { return s.entries }

// active returns the index of the entry shown at time t, or -1.
func (s *Sequence[T]) active(t float64) int {
	return sort.Search(len(s.entries), func(i int) bool { return s.entries[i].Start > t }) - 1
}

// offset returns the clock origin of entry i.
func (s *Sequence[T]) offset(i int) float64 {
	for ; i >= 0; i-- {
		if s.entries[i].Restart {
			return s.entries[i].Start
		}
	}
	return 0
}

// Sample implements kantera.Render. Before the first entry it returns the
// zero value.
func (s *Sequence[T]) Sample(u, v, time float64, res kantera.Res) T {
	i := s.active(time)
	if i < 0 {
		var zero T
		return zero
	}
	return s.entries[i].Render.Sample(u, v, time-s.offset(i), res)
}

// Render partitions the frame range at entry boundaries and hands each run
// of frames to the active child with its frame range shifted by the
// entry's clock origin.
func (s *Sequence[T]) Render(ro kantera.RenderOpt, out []T) {
	kantera.CheckLen("Sequence", ro, out)
	n := ro.FrameSize()
	fr := float64(ro.Framerate)

	startFrame := make([]int, len(s.entries))
	for i, e := range s.entries {
		startFrame[i] = int(math.Ceil(e.Start*fr - 1e-9))
	}

	f := ro.FrameRange.Start
	for f < ro.FrameRange.End {
		// Active entry: greatest i with startFrame[i] <= f.
		i := sort.Search(len(startFrame), func(k int) bool { return startFrame[k] > f }) - 1
		end := ro.FrameRange.End
		if i+1 < len(startFrame) {
			end = min(end, startFrame[i+1])
		}
		seg := out[(f-ro.FrameRange.Start)*n : (end-ro.FrameRange.Start)*n]
		if i < 0 {
			clear(seg)
		} else {
			shift := int(math.Round(s.offset(i) * fr))
			s.entries[i].Render.Render(ro.WithFrames(kantera.Range{Start: f - shift, End: end - shift}), seg)
		}
		f = end
	}
}

// Duration is the latest time any entry is still shown with a defined
// child, or +Inf when the last child is infinite.
func (s *Sequence[T]) Duration() float64 {
	d := 0.0
	for i, e := range s.entries {
		end := s.offset(i) + e.Render.Duration()
		if i+1 < len(s.entries) {
			end = min(end, s.entries[i+1].Start)
		}
		d = max(d, end)
	}
	return d
}
