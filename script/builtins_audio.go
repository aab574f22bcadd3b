package script

import (
	"fmt"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/audiorenders"
)

func defineAudio(env *Env) {
	define(env, "note", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 3, 4); err != nil {
			return Nil, err
		}
		f, err := floats(args[:3], 3)
		if err != nil {
			return Nil, err
		}
		pan := 0.0
		if len(args) == 4 {
			if pan, err = argFloat(args, 3); err != nil {
				return Nil, err
			}
		}
		return AudioValue(audiorenders.NewNote(f[0], f[1], f[2], pan)), nil
	})
	define(env, "audio_clip", audioClip)
	define(env, "audio_sequencer", func(_ *Interp, args []Value) (Value, error) {
		entries := make([]audiorenders.SequencerEntry, len(args))
		for i := range args {
			xs, ok := args[i].Items()
			if !ok || len(xs) != 2 {
				return Nil, wantErr(i, "[start audio]", args[i])
			}
			start, err := argFloat(xs, 0)
			if err != nil {
				return Nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
			a, err := argAudio(xs, 1)
			if err != nil {
				return Nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
			entries[i] = audiorenders.SequencerEntry{Start: start, Render: a}
		}
		s, err := audiorenders.NewSequencer(entries...)
		if err != nil {
			return Nil, err
		}
		return AudioValue(s), nil
	})
	define(env, "audio_timed", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		s, ok := args[0].AsSignal()
		if !ok {
			return Nil, wantErr(0, "number signal", args[0])
		}
		t, ok := s.(kantera.Timed[float64])
		if !ok {
			return Nil, wantErr(0, "number signal", args[0])
		}
		return AudioValue(audiorenders.NewTimed(t)), nil
	})
}

// audioClip is (audio_clip audio start duration pitch? pan? gain? fadein? fadeout?).
func audioClip(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 3, 8); err != nil {
		return Nil, err
	}
	a, err := argAudio(args, 0)
	if err != nil {
		return Nil, err
	}
	// start duration pitch pan gain fadein fadeout
	vals := []float64{0, 0, 1, 0, 1, 0, 0}
	for i := 1; i < len(args); i++ {
		if vals[i-1], err = argFloat(args, i); err != nil {
			return Nil, err
		}
	}
	c, err := audiorenders.NewClip(a, audiorenders.ClipOptions{
		Start:    vals[0],
		Duration: vals[1],
		Pitch:    vals[2],
		Pan:      vals[3],
		Gain:     vals[4],
		FadeIn:   vals[5],
		FadeOut:  vals[6],
	})
	if err != nil {
		return Nil, err
	}
	return AudioValue(c), nil
}
