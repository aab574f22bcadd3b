package script

import (
	"fmt"

	"github.com/gogpu/kantera"
)

type nativeFn = func(it *Interp, args []Value) (Value, error)

func define(env *Env, name string, fn nativeFn) {
	env.Define(Intern(name), NativeValue(name, fn))
}

// arity checks len(args) against [lo, hi]; hi < 0 means unbounded.
func arity(args []Value, lo, hi int) error {
	n := len(args)
	switch {
	case hi == lo && n != lo:
		return fmt.Errorf("want %d arguments, got %d", lo, n)
	case n < lo:
		return fmt.Errorf("want at least %d arguments, got %d", lo, n)
	case hi >= 0 && n > hi:
		return fmt.Errorf("want at most %d arguments, got %d", hi, n)
	}
	return nil
}

func wantErr(i int, want string, got Value) error {
	return fmt.Errorf("argument %d: want %s, got %s", i+1, want, got.Kind)
}

func argFloat(args []Value, i int) (float64, error) {
	f, ok := args[i].AsFloat()
	if !ok {
		return 0, wantErr(i, "number", args[i])
	}
	return f, nil
}

func argInt(args []Value, i int) (int, error) {
	n, ok := args[i].AsInt()
	if !ok {
		return 0, wantErr(i, "integer", args[i])
	}
	return int(n), nil
}

func argBool(args []Value, i int) (bool, error) {
	b, ok := args[i].AsBool()
	if !ok {
		return false, wantErr(i, "bool", args[i])
	}
	return b, nil
}

func argString(args []Value, i int) (string, error) {
	s, ok := args[i].AsString()
	if !ok {
		return "", wantErr(i, "string", args[i])
	}
	return s, nil
}

func argItems(args []Value, i int) ([]Value, error) {
	xs, ok := args[i].Items()
	if !ok {
		return nil, wantErr(i, "list or vector", args[i])
	}
	return xs, nil
}

func argRender(args []Value, i int) (kantera.Render[kantera.Rgba], error) {
	r, ok := args[i].AsRender()
	if !ok {
		return nil, wantErr(i, "render", args[i])
	}
	return r, nil
}

func argAudio(args []Value, i int) (kantera.AudioRender, error) {
	a, ok := args[i].AsAudio()
	if !ok {
		return nil, wantErr(i, "audio", args[i])
	}
	return a, nil
}

func argImage(args []Value, i int) (*kantera.Image[kantera.Rgba], error) {
	img, ok := args[i].AsImage()
	if !ok {
		return nil, wantErr(i, "image", args[i])
	}
	return img, nil
}

func argColor(args []Value, i int) (kantera.Rgba, error) {
	c, ok := args[i].AsColor()
	if !ok {
		return kantera.Rgba{}, wantErr(i, "color", args[i])
	}
	return c, nil
}

func argVec(args []Value, i int) (kantera.Vec2, error) {
	v, ok := args[i].AsVec()
	if !ok {
		return kantera.Vec2{}, wantErr(i, "vec2", args[i])
	}
	return v, nil
}

// argFloatParam accepts a number or a number signal.
func argFloatParam(args []Value, i int) (kantera.Param[float64], error) {
	if f, ok := args[i].AsFloat(); ok {
		return kantera.Const(f), nil
	}
	if s, ok := args[i].AsSignal(); ok {
		if t, ok := s.(kantera.Timed[float64]); ok {
			return kantera.Varying(t), nil
		}
	}
	return kantera.Param[float64]{}, wantErr(i, "number or number signal", args[i])
}

func argVecParam(args []Value, i int) (kantera.Param[kantera.Vec2], error) {
	if v, ok := args[i].AsVec(); ok {
		return kantera.Const(v), nil
	}
	if s, ok := args[i].AsSignal(); ok {
		if t, ok := s.(kantera.Timed[kantera.Vec2]); ok {
			return kantera.Varying(t), nil
		}
	}
	return kantera.Param[kantera.Vec2]{}, wantErr(i, "vec2 or vec2 signal", args[i])
}

func argColorParam(args []Value, i int) (kantera.Param[kantera.Rgba], error) {
	if c, ok := args[i].AsColor(); ok {
		return kantera.Const(c), nil
	}
	if s, ok := args[i].AsSignal(); ok {
		if t, ok := s.(kantera.Timed[kantera.Rgba]); ok {
			return kantera.Varying(t), nil
		}
	}
	return kantera.Param[kantera.Rgba]{}, wantErr(i, "color or color signal", args[i])
}
