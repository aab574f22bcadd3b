package script

import (
	"fmt"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/renders"
)

// scriptFn is a script function called back from render nodes. Nodes may
// run on several workers at once; calls into the interpreter are
// serialized and a failing call panics with a *kantera.ContractError.
// Such a function must not itself render nodes backed by the same runtime.
type scriptFn struct {
	it   *Interp
	fn   Value
	node string
}

func (f scriptFn) call(args ...Value) Value {
	f.it.calls.Lock()
	defer f.it.calls.Unlock()
	v, err := f.it.Apply(f.fn, args)
	if err != nil {
		panic(&kantera.ContractError{Node: f.node, Msg: err.Error()})
	}
	return v
}

func (f scriptFn) float(args ...Value) float64 {
	v := f.call(args...)
	x, ok := v.AsFloat()
	if !ok {
		panic(&kantera.ContractError{Node: f.node, Msg: fmt.Sprintf("function returned %s, want number", v.Kind)})
	}
	return x
}

func (f scriptFn) color(args ...Value) kantera.Rgba {
	v := f.call(args...)
	c, ok := v.AsColor()
	if !ok {
		panic(&kantera.ContractError{Node: f.node, Msg: fmt.Sprintf("function returned %s, want color", v.Kind)})
	}
	return c
}

func argFn(it *Interp, args []Value, i int, node string) (scriptFn, error) {
	if k := args[i].Kind; k != KindClosure && k != KindNative {
		return scriptFn{}, wantErr(i, "function", args[i])
	}
	return scriptFn{it: it, fn: args[i], node: node}, nil
}

func defineFuncs(env *Env) {
	// (signal_map s f): f applied to every value of s.
	define(env, "signal_map", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		src, err := argFloatParam(args, 0)
		if err != nil {
			return Nil, err
		}
		f, err := argFn(it, args, 1, "signal_map")
		if err != nil {
			return Nil, err
		}
		m := kantera.Map[float64, float64]{Src: src, F: func(x float64) float64 { return f.float(Float(x)) }}
		return SignalValue(kantera.Timed[float64](m)), nil
	})
	// (sample f): (f u v t) gives the colour of every point.
	define(env, "sample", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		f, err := argFn(it, args, 0, "sample")
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewSample(func(u, v, t float64, _ kantera.Res) kantera.Rgba {
			return f.color(Float(u), Float(v), Float(t))
		})), nil
	})
	// (functional duration f): (f t) returns an image stretched over the
	// canvas for the frame at t.
	define(env, "functional", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		d, err := argFloat(args, 0)
		if err != nil {
			return Nil, err
		}
		if d <= 0 {
			d = kantera.Infinite
		}
		f, err := argFn(it, args, 1, "functional")
		if err != nil {
			return Nil, err
		}
		return RenderValue(renders.NewFunctional(d, func(ro kantera.RenderOpt, t float64, frame []kantera.Rgba) {
			v := f.call(Float(t))
			img, ok := v.AsImage()
			if !ok || img.Width == 0 || img.Height == 0 {
				panic(&kantera.ContractError{Node: "functional", Msg: fmt.Sprintf("function returned %s, want non-empty image", v.Kind)})
			}
			sx := float64(img.Width) / float64(ro.ResX)
			sy := float64(img.Height) / float64(ro.ResY)
			i := 0
			for y := ro.YRange.Start; y < ro.YRange.End; y++ {
				for x := ro.XRange.Start; x < ro.XRange.End; x++ {
					frame[i] = kantera.SampleNearest(img, (float64(x)+0.5)*sx, (float64(y)+0.5)*sy)
					i++
				}
			}
		})), nil
	})
}
