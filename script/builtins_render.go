package script

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/audiorenders"
	"github.com/gogpu/kantera/renders"
	"github.com/gogpu/kantera/shape"
)

// spectrogramRate is the rate non-buffer audio is rendered at before
// analysis.
const spectrogramRate = 44100

func defineRender(env *Env) {
	define(env, "rgb", colorCtor(3))
	define(env, "rgba", colorCtor(4))
	define(env, "hex", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		s, err := argString(args, 0)
		return Color(kantera.Hex(s)), err
	})
	define(env, "hsl", func(_ *Interp, args []Value) (Value, error) {
		f, err := floats(args, 3)
		if err != nil {
			return Nil, err
		}
		return Color(kantera.HSL(f[0], f[1], f[2])), nil
	})
	define(env, "vec2", func(_ *Interp, args []Value) (Value, error) {
		f, err := floats(args, 2)
		if err != nil {
			return Nil, err
		}
		return Vec(kantera.V2(f[0], f[1])), nil
	})

	define(env, "path", makePath)
	define(env, "cycle", cycle)
	define(env, "sine", func(_ *Interp, args []Value) (Value, error) {
		f, err := floats(args, 3)
		if err != nil {
			return Nil, err
		}
		return SignalValue(kantera.Timed[float64](kantera.Sine{Phase: f[0], Frequency: f[1], Amplitude: f[2]})), nil
	})
	define(env, "signal_add", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		a, err := argFloatParam(args, 0)
		if err != nil {
			return Nil, err
		}
		b, err := argFloatParam(args, 1)
		if err != nil {
			return Nil, err
		}
		return SignalValue(kantera.Timed[float64](kantera.Add[float64]{A: a, B: b})), nil
	})
	define(env, "signal_mul", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		a, err := argFloatParam(args, 0)
		if err != nil {
			return Nil, err
		}
		b, err := argFloatParam(args, 1)
		if err != nil {
			return Nil, err
		}
		return SignalValue(kantera.Timed[float64](kantera.Mul[float64]{Src: a, Factor: b})), nil
	})

	define(env, "plain", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		c, err := argColorParam(args, 0)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewPlainTimed(c)), nil
	})
	define(env, "linear_gradient", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 3); err != nil {
			return Nil, err
		}
		a, err := argColor(args, 0)
		if err != nil {
			return Nil, err
		}
		b, err := argColor(args, 1)
		if err != nil {
			return Nil, err
		}
		vertical := false
		if len(args) == 3 {
			if vertical, err = argBool(args, 2); err != nil {
				return Nil, err
			}
		}
		return RenderValue(renders.NewSample(func(u, v, _ float64, _ kantera.Res) kantera.Rgba {
			if vertical {
				u = v
			}
			return a.Lerp(b, kantera.Clamp(u, 0, 1))
		})), nil
	})
	define(env, "sequence", sequence)
	define(env, "sequencer", sequencer)
	define(env, "composite", composite)
	define(env, "transform", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 4, 4); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		tr, err := argVecParam(args, 1)
		if err != nil {
			return Nil, err
		}
		sc, err := scaleParam(args, 2)
		if err != nil {
			return Nil, err
		}
		rot, err := argFloatParam(args, 3)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewTransform(r, renders.PathToTransformer(tr, sc, rot))), nil
	})
	define(env, "camera_shake", func(_ *Interp, args []Value) (Value, error) {
		r, size, err := renderAndFloat(args)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewTransform(r, renders.CameraShake(size))), nil
	})
	define(env, "rgb_shift", func(_ *Interp, args []Value) (Value, error) {
		r, d, err := renderAndFloat(args)
		if err != nil {
			return Nil, err
		}
		shift := func(du float64) renders.TransformFunc {
			return func(u, v, time float64, _ kantera.Res) (float64, float64, float64) {
				return u + du, v, time
			}
		}
		return RenderValue(renders.NewRgbTransform(r, shift(d), shift(0), shift(-d))), nil
	})
	define(env, "image", imageRender)
	define(env, "frame", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 3); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		name, err := argString(args, 1)
		if err != nil {
			return Nil, err
		}
		policy, err := renders.ParseFramePolicy(name)
		if err != nil {
			return Nil, err
		}
		if policy == renders.FrameConstant {
			if len(args) != 3 {
				return Nil, fmt.Errorf("constant policy needs a color")
			}
			c, err := argColor(args, 2)
			if err != nil {
				return Nil, err
			}
			return RenderValue(renders.NewFrameConstant(r, c)), nil
		}
		return RenderValue(renders.NewFrame(r, policy)), nil
	})
	define(env, "time_extrapolate", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 3, 4); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		d, err := argFloat(args, 1)
		if err != nil {
			return Nil, err
		}
		name, err := argString(args, 2)
		if err != nil {
			return Nil, err
		}
		policy, err := renders.ParseExtrapolatePolicy(name)
		if err != nil {
			return Nil, err
		}
		if policy == renders.ExtrapolateConstant {
			if len(args) != 4 {
				return Nil, fmt.Errorf("constant policy needs a color")
			}
			c, err := argColor(args, 3)
			if err != nil {
				return Nil, err
			}
			return RenderValue(renders.NewTimeExtrapolateConstant(r, d, c)), nil
		}
		return RenderValue(renders.NewTimeExtrapolate(r, d, policy)), nil
	})
	define(env, "clip", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 3, 3); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		f, err := floats(args[1:], 2)
		if err != nil {
			return Nil, err
		}
		if f[1] < f[0] {
			return Nil, fmt.Errorf("end %g before start %g", f[1], f[0])
		}
		return RenderValue(renders.NewClip(r, f[0], f[1])), nil
	})
	define(env, "gaussian", func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 2 {
			if err := arity(args, 4, 4); err != nil {
				return Nil, err
			}
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		var w, h int
		if len(args) == 4 {
			if w, err = argInt(args, 1); err != nil {
				return Nil, err
			}
			if h, err = argInt(args, 2); err != nil {
				return Nil, err
			}
		}
		sigma, err := argFloat(args, len(args)-1)
		if err != nil {
			return Nil, err
		}
		f, err := renders.NewFilter(r, renders.MakeGaussianFilter(w, h, sigma))
		if err != nil {
			return Nil, err
		}
		return RenderValue(f), nil
	})
	define(env, "box_blur", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 3); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		rx, err := argInt(args, 1)
		if err != nil {
			return Nil, err
		}
		ry := rx
		if len(args) == 3 {
			if ry, err = argInt(args, 2); err != nil {
				return Nil, err
			}
		}
		f, err := renders.NewFilter(r, renders.MakeBoxFilter(rx, ry))
		if err != nil {
			return Nil, err
		}
		return RenderValue(f), nil
	})
	define(env, "filter", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		k, err := argImage(args, 1)
		if err != nil {
			return Nil, err
		}
		f, err := renders.NewFilter(r, k)
		if err != nil {
			return Nil, err
		}
		return RenderValue(f), nil
	})
	define(env, "bokeh", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 3, 3); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		max, err := argInt(args, 1)
		if err != nil {
			return Nil, err
		}
		if max < 0 {
			return Nil, fmt.Errorf("negative max size %d", max)
		}
		size, err := argFloatParam(args, 2)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewBokeh(r, max, size)), nil
	})
	define(env, "color_sampling", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		r, err := argRender(args, 0)
		if err != nil {
			return Nil, err
		}
		name := args[1].display()
		kind, err := renders.ParseSubsampling(name)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewColorSampling(r, kind)), nil
	})
	define(env, "pixel_sort", func(_ *Interp, args []Value) (Value, error) {
		r, threshold, err := renderAndFloat(args)
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewMap(r, renders.PixelSort(threshold))), nil
	})
	define(env, "pixelate", func(_ *Interp, args []Value) (Value, error) {
		r, size, err := renderAndFloat(args)
		if err != nil {
			return Nil, err
		}
		if size < 1 {
			return Nil, fmt.Errorf("block size %g below 1", size)
		}
		return RenderValue(renders.NewMap(r, renders.Pixelate(int(size)))), nil
	})
	define(env, "prerender", prerender)
	define(env, "spectrogram", spectrogram)
	define(env, "text", textImage)
	define(env, "closed_path", closedPath)
}

func colorCtor(n int) nativeFn {
	return func(_ *Interp, args []Value) (Value, error) {
		f, err := floats(args, n)
		if err != nil {
			return Nil, err
		}
		if n == 3 {
			return Color(kantera.RGB(f[0], f[1], f[2])), nil
		}
		return Color(kantera.RGBA(f[0], f[1], f[2], f[3])), nil
	}
}

// floats checks that args are exactly n numbers.
func floats(args []Value, n int) ([]float64, error) {
	if err := arity(args, n, n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		f, err := argFloat(args, i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func renderAndFloat(args []Value) (kantera.Render[kantera.Rgba], float64, error) {
	if err := arity(args, 2, 2); err != nil {
		return nil, 0, err
	}
	r, err := argRender(args, 0)
	if err != nil {
		return nil, 0, err
	}
	f, err := argFloat(args, 1)
	return r, f, err
}

// scaleParam accepts a vec2, a vec2 signal or a uniform number.
func scaleParam(args []Value, i int) (kantera.Param[kantera.Vec2], error) {
	if f, ok := args[i].AsFloat(); ok {
		return kantera.Const(kantera.V2(f, f)), nil
	}
	return argVecParam(args, i)
}

// makePath builds a path from an initial value and [dt value kind handles...]
// segments. The kind defaults to linear; the value type of the path follows
// the initial value.
func makePath(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, -1); err != nil {
		return Nil, err
	}
	switch first := args[0]; first.Kind {
	case KindInt, KindFloat:
		return buildPath(args, func(v Value) (float64, bool) { return v.AsFloat() })
	case KindColor:
		return buildPath(args, func(v Value) (kantera.Rgba, bool) { return v.AsColor() })
	default:
		if _, ok := first.AsVec(); ok {
			return buildPath(args, func(v Value) (kantera.Vec2, bool) { return v.AsVec() })
		}
	}
	return Nil, wantErr(0, "number, vec2 or color", args[0])
}

func buildPath[T any](args []Value, conv func(Value) (T, bool)) (Value, error) {
	first, _ := conv(args[0])
	p := kantera.NewPath(first)
	for i := 1; i < len(args); i++ {
		seg, ok := args[i].Items()
		if !ok || len(seg) < 2 {
			return Nil, wantErr(i, "[dt value kind...]", args[i])
		}
		dt, ok := seg[0].AsFloat()
		if !ok || dt < 0 {
			return Nil, fmt.Errorf("argument %d: bad time step %s", i+1, seg[0])
		}
		v, ok := conv(seg[1])
		if !ok {
			return Nil, fmt.Errorf("argument %d: value %s does not match the path type", i+1, seg[1])
		}
		kind := kantera.PointLinear
		if len(seg) > 2 {
			var err error
			if kind, err = kantera.ParsePointKind(seg[2].display()); err != nil {
				return Nil, err
			}
		}
		handles := make([]T, 0, 2)
		for _, h := range seg[min(len(seg), 3):] {
			hv, ok := conv(h)
			if !ok {
				return Nil, fmt.Errorf("argument %d: handle %s does not match the path type", i+1, h)
			}
			handles = append(handles, hv)
		}
		switch {
		case kind == kantera.PointBezier2 && len(handles) == 1:
			p.AppendBezier2(dt, v, handles[0])
		case kind == kantera.PointBezier3 && len(handles) == 2:
			p.AppendBezier3(dt, v, handles[0], handles[1])
		case kind == kantera.PointBezier2 || kind == kantera.PointBezier3:
			return Nil, fmt.Errorf("argument %d: %s needs %d handles", i+1, kind, int(kind)-1)
		case len(handles) > 0:
			return Nil, fmt.Errorf("argument %d: %s takes no handles", i+1, kind)
		default:
			p.Append(dt, v, kind)
		}
	}
	return SignalValue(kantera.Timed[T](p)), nil
}

func cycle(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 2, 2); err != nil {
		return Nil, err
	}
	period, err := argFloat(args, 1)
	if err != nil {
		return Nil, err
	}
	if period <= 0 {
		return Nil, fmt.Errorf("period %g must be positive", period)
	}
	s, ok := args[0].AsSignal()
	if !ok {
		return Nil, wantErr(0, "signal", args[0])
	}
	switch x := s.(type) {
	case kantera.Timed[float64]:
		return SignalValue(kantera.Timed[float64](kantera.Cycle[float64]{Src: x, Period: period})), nil
	case kantera.Timed[kantera.Vec2]:
		return SignalValue(kantera.Timed[kantera.Vec2](kantera.Cycle[kantera.Vec2]{Src: x, Period: period})), nil
	case kantera.Timed[kantera.Rgba]:
		return SignalValue(kantera.Timed[kantera.Rgba](kantera.Cycle[kantera.Rgba]{Src: x, Period: period})), nil
	}
	return Nil, wantErr(0, "signal", args[0])
}

// sequence takes [start restart render] entries.
func sequence(_ *Interp, args []Value) (Value, error) {
	entries := make([]renders.SequenceEntry[kantera.Rgba], len(args))
	for i := range args {
		xs, ok := args[i].Items()
		if !ok || len(xs) != 3 {
			return Nil, wantErr(i, "[start restart render]", args[i])
		}
		start, err := argFloat(xs, 0)
		if err != nil {
			return Nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		restart, err := argBool(xs, 1)
		if err != nil {
			return Nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		r, err := argRender(xs, 2)
		if err != nil {
			return Nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries[i] = renders.SequenceEntry[kantera.Rgba]{Start: start, Restart: restart, Render: r}
	}
	return RenderValue(renders.NewSequence(entries...)), nil
}

// sequencer takes a background colour and [start z render] entries.
func sequencer(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, -1); err != nil {
		return Nil, err
	}
	bg, err := argColor(args, 0)
	if err != nil {
		return Nil, err
	}
	entries := make([]renders.SequencerEntry, 0, len(args)-1)
	for i := 1; i < len(args); i++ {
		xs, ok := args[i].Items()
		if !ok || len(xs) != 3 {
			return Nil, wantErr(i, "[start z render]", args[i])
		}
		start, err := argFloat(xs, 0)
		if err != nil {
			return Nil, fmt.Errorf("entry %d: %w", i, err)
		}
		z, err := argInt(xs, 1)
		if err != nil {
			return Nil, fmt.Errorf("entry %d: %w", i, err)
		}
		r, err := argRender(xs, 2)
		if err != nil {
			return Nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, renders.SequencerEntry{Start: start, Z: z, Render: r})
	}
	return RenderValue(renders.NewSequencer(bg, entries...)), nil
}

// composite takes layers bottom to top, each a render or
// [render mode alpha?] with mode "none" or "normal".
func composite(_ *Interp, args []Value) (Value, error) {
	layers := make([]renders.CompositeLayer, len(args))
	for i := range args {
		if r, ok := args[i].AsRender(); ok {
			layers[i] = renders.Layer(r, renders.BlendNormal(kantera.Const(1.0)))
			continue
		}
		xs, ok := args[i].Items()
		if !ok || len(xs) < 2 || len(xs) > 3 {
			return Nil, wantErr(i, "render or [render mode alpha]", args[i])
		}
		r, err := argRender(xs, 0)
		if err != nil {
			return Nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		switch mode := xs[1].display(); mode {
		case "none":
			layers[i] = renders.Layer(r, renders.BlendNone())
		case "normal":
			alpha := kantera.Const(1.0)
			if len(xs) == 3 {
				if alpha, err = argFloatParam(xs, 2); err != nil {
					return Nil, fmt.Errorf("layer %d: %w", i+1, err)
				}
			}
			layers[i] = renders.Layer(r, renders.BlendNormal(alpha))
		default:
			return Nil, fmt.Errorf("layer %d: unknown blend mode %q", i+1, mode)
		}
	}
	return RenderValue(renders.NewComposite(layers...)), nil
}

// imageRender takes an image and optional sizing and interpolation names.
func imageRender(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, 3); err != nil {
		return Nil, err
	}
	img, err := argImage(args, 0)
	if err != nil {
		return Nil, err
	}
	sizing, interp := renders.SizingContain, kantera.InterpBilinear
	if len(args) > 1 {
		if sizing, err = renders.ParseSizing(args[1].display()); err != nil {
			return Nil, err
		}
	}
	if len(args) > 2 {
		if interp, err = kantera.ParseInterpolation(args[2].display()); err != nil {
			return Nil, err
		}
	}
	return RenderValue(renders.NewImageRender(img, sizing, interp, kantera.Transparent)), nil
}

// prerender renders a subtree once into memory and plays it back:
// (prerender render width height frames framerate).
func prerender(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 5, 5); err != nil {
		return Nil, err
	}
	r, err := argRender(args, 0)
	if err != nil {
		return Nil, err
	}
	var dims [4]int
	for i := range dims {
		if dims[i], err = argInt(args, i+1); err != nil {
			return Nil, err
		}
	}
	ro := kantera.Canvas(dims[0], dims[1], kantera.Range{Start: 0, End: dims[2]}, dims[3])
	if err := ro.Validate(); err != nil {
		return Nil, err
	}
	buf, err := kantera.BufferFrom(dims[0], dims[1], dims[2], dims[3], kantera.RenderToBufferParallel(ro, r))
	if err != nil {
		return Nil, err
	}
	return RenderValue(renders.NewPlayback(buf)), nil
}

// spectrogram takes audio and an FFT size. Audio that is not backed by a
// buffer is rendered first, so it must have a finite duration.
func spectrogram(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 2, 2); err != nil {
		return Nil, err
	}
	a, err := argAudio(args, 0)
	if err != nil {
		return Nil, err
	}
	size, err := argInt(args, 1)
	if err != nil {
		return Nil, err
	}
	var buf *kantera.AudioBuffer[float64]
	if br, ok := a.(*audiorenders.BufferRender); ok {
		buf = br.Buffer()
	} else {
		d := a.Duration()
		if math.IsInf(d, 0) || math.IsNaN(d) {
			return Nil, fmt.Errorf("audio has no finite duration")
		}
		ro := kantera.AudioRenderOpt{
			SampleRange: kantera.Range64{Start: 0, End: int64(math.Ceil(d * spectrogramRate))},
			SampleRate:  spectrogramRate,
		}
		if buf, err = kantera.RenderAudioToBuffer(a, ro); err != nil {
			return Nil, err
		}
	}
	s, err := renders.NewSpectrogram(buf, size)
	if err != nil {
		return Nil, err
	}
	return RenderValue(s), nil
}

// textImage renders a string to an image: (text font string size color?).
func textImage(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 3, 4); err != nil {
		return Nil, err
	}
	font, ok := args[0].AsFont()
	if !ok {
		return Nil, wantErr(0, "font", args[0])
	}
	s, err := argString(args, 1)
	if err != nil {
		return Nil, err
	}
	size, err := argFloat(args, 2)
	if err != nil {
		return Nil, err
	}
	c := kantera.White
	if len(args) == 4 {
		if c, err = argColor(args, 3); err != nil {
			return Nil, err
		}
	}
	mask, err := font.Render(s, size)
	if err != nil {
		return Nil, err
	}
	pix := make([]kantera.Rgba, len(mask.Pix))
	for i, a := range mask.Pix {
		pix[i] = kantera.RGBA(c.R, c.G, c.B, c.A*a)
	}
	img, err := kantera.ImageFrom(mask.Width, mask.Height, pix)
	if err != nil {
		return Nil, err
	}
	return ImageValue(img), nil
}

// closedPath fills and strokes a vec2 path:
// (closed_path [x0 y0 x1 y1] stroke fill line_width path).
func closedPath(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 5, 5); err != nil {
		return Nil, err
	}
	rect, err := argItems(args, 0)
	if err != nil {
		return Nil, err
	}
	if len(rect) != 4 {
		return Nil, wantErr(0, "[x0 y0 x1 y1]", args[0])
	}
	var r [4]int
	for i := range r {
		if r[i], err = argInt(rect, i); err != nil {
			return Nil, err
		}
	}
	stroke, err := argColor(args, 1)
	if err != nil {
		return Nil, err
	}
	fill, err := argColor(args, 2)
	if err != nil {
		return Nil, err
	}
	lw, err := argFloat(args, 3)
	if err != nil {
		return Nil, err
	}
	s, _ := args[4].AsSignal()
	p, ok := s.(*kantera.Path[kantera.Vec2])
	if !ok {
		return Nil, wantErr(4, "vec2 path", args[4])
	}
	img, err := shape.ClosedPathToImage(image.Rect(r[0], r[1], r[2], r[3]), stroke, fill, lw, p)
	if err != nil {
		return Nil, err
	}
	return ImageValue(img), nil
}
