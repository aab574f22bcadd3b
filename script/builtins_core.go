package script

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gogpu/kantera"
)

var errDivZero = errors.New("division by zero")

var gensymCounter atomic.Int64

func defineCore(env *Env) {
	define(env, "+", arith(func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }, 0))
	define(env, "*", arith(func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }, 1))
	define(env, "-", minus)
	define(env, "/", divide)
	define(env, "mod", mod)
	define(env, "min", extremum(func(a, b float64) bool { return a < b }))
	define(env, "max", extremum(func(a, b float64) bool { return a > b }))
	define(env, "=", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, -1); err != nil {
			return Nil, err
		}
		for _, a := range args[1:] {
			if !equal(args[0], a) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	})
	define(env, "<", compare(func(a, b float64) bool { return a < b }))
	define(env, ">", compare(func(a, b float64) bool { return a > b }))
	define(env, "<=", compare(func(a, b float64) bool { return a <= b }))
	define(env, ">=", compare(func(a, b float64) bool { return a >= b }))
	define(env, "not", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		return Bool(!args[0].Truthy()), nil
	})

	define(env, "list", func(_ *Interp, args []Value) (Value, error) {
		return List(append([]Value(nil), args...)...), nil
	})
	define(env, "vec", func(_ *Interp, args []Value) (Value, error) {
		return Vector(append([]Value(nil), args...)...), nil
	})
	define(env, "first", func(_ *Interp, args []Value) (Value, error) {
		xs, err := oneSeq(args)
		if err != nil || len(xs) == 0 {
			return Nil, err
		}
		return xs[0], nil
	})
	define(env, "rest", func(_ *Interp, args []Value) (Value, error) {
		xs, err := oneSeq(args)
		if err != nil || len(xs) == 0 {
			return List(), err
		}
		return List(xs[1:]...), nil
	})
	define(env, "nth", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		xs, err := argItems(args, 0)
		if err != nil {
			return Nil, err
		}
		i, err := argInt(args, 1)
		if err != nil {
			return Nil, err
		}
		if i < 0 || i >= len(xs) {
			return Nil, fmt.Errorf("index %d out of range [0, %d)", i, len(xs))
		}
		return xs[i], nil
	})
	define(env, "len", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		if s, ok := args[0].AsString(); ok {
			return Int(int64(len(s))), nil
		}
		xs, err := argItems(args, 0)
		return Int(int64(len(xs))), err
	})
	define(env, "empty?", func(_ *Interp, args []Value) (Value, error) {
		xs, err := oneSeq(args)
		return Bool(len(xs) == 0), err
	})
	define(env, "concat", func(_ *Interp, args []Value) (Value, error) {
		var out []Value
		for i := range args {
			if args[i].Kind == KindNil {
				continue
			}
			xs, err := argItems(args, i)
			if err != nil {
				return Nil, err
			}
			out = append(out, xs...)
		}
		return List(out...), nil
	})
	define(env, "map", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		xs, err := argItems(args, 1)
		if err != nil {
			return Nil, err
		}
		out := make([]Value, len(xs))
		for i, x := range xs {
			if out[i], err = it.Apply(args[0], []Value{x}); err != nil {
				return Nil, err
			}
		}
		return Value{Kind: args[1].Kind, data: out}, nil
	})
	define(env, "apply", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		xs, err := argItems(args, 1)
		if err != nil {
			return Nil, err
		}
		return it.Apply(args[0], xs)
	})
	define(env, "range", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 2); err != nil {
			return Nil, err
		}
		lo, hi := 0, 0
		var err error
		if len(args) == 1 {
			hi, err = argInt(args, 0)
		} else if lo, err = argInt(args, 0); err == nil {
			hi, err = argInt(args, 1)
		}
		if err != nil {
			return Nil, err
		}
		var out []Value
		for i := lo; i < hi; i++ {
			out = append(out, Int(int64(i)))
		}
		return List(out...), nil
	})

	define(env, "str", func(_ *Interp, args []Value) (Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.display())
		}
		return String(b.String()), nil
	})
	define(env, "print", func(it *Interp, args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.display()
		}
		it.logger.Info(strings.Join(parts, " "))
		return Nil, nil
	})
	define(env, "parse_f64", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		s, err := argString(args, 0)
		if err != nil {
			return Nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Nil, err
		}
		return Float(f), nil
	})
	define(env, "float", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		f, err := argFloat(args, 0)
		return Float(f), err
	})
	define(env, "int", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		f, err := argFloat(args, 0)
		return Int(int64(f)), err
	})

	env.Define(Intern("pi"), Float(math.Pi))
	define(env, "sin", unary(math.Sin))
	define(env, "cos", unary(math.Cos))
	define(env, "sqrt", unary(math.Sqrt))
	define(env, "floor", unary(math.Floor))
	define(env, "abs", unary(math.Abs))
	define(env, "pow", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		x, err := argFloat(args, 0)
		if err != nil {
			return Nil, err
		}
		y, err := argFloat(args, 1)
		return Float(math.Pow(x, y)), err
	})
	define(env, "noise", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 3, 3); err != nil {
			return Nil, err
		}
		var p [3]float64
		for i := range p {
			f, err := argFloat(args, i)
			if err != nil {
				return Nil, err
			}
			p[i] = f
		}
		return Float(kantera.Noise(p[0], p[1], p[2])), nil
	})
	define(env, "u32noise", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		n, err := argInt(args, 0)
		return Int(int64(kantera.U32Noise(uint32(n)))), err
	})

	define(env, "gensym", func(_ *Interp, args []Value) (Value, error) {
		return Sym(fmt.Sprintf("__g%d", gensymCounter.Add(1))), nil
	})
	define(env, "cache_get_or", func(it *Interp, args []Value) (Value, error) {
		if err := arity(args, 3, 3); err != nil {
			return Nil, err
		}
		c, ok := args[0].AsCache()
		if !ok {
			return Nil, wantErr(0, "cache", args[0])
		}
		key := args[1].display()
		return c.GetOrCreate(key, func() (Value, error) {
			return it.Apply(args[2], nil)
		})
	})
	define(env, "cache_remove", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, 2); err != nil {
			return Nil, err
		}
		c, ok := args[0].AsCache()
		if !ok {
			return Nil, wantErr(0, "cache", args[0])
		}
		return Bool(c.Delete(args[1].display())), nil
	})
	define(env, "cache_clear", func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		c, ok := args[0].AsCache()
		if !ok {
			return Nil, wantErr(0, "cache", args[0])
		}
		c.Clear()
		return Nil, nil
	})
}

func oneSeq(args []Value) ([]Value, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	if args[0].Kind == KindNil {
		return nil, nil
	}
	return argItems(args, 0)
}

func unary(f func(float64) float64) nativeFn {
	return func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, 1); err != nil {
			return Nil, err
		}
		x, err := argFloat(args, 0)
		return Float(f(x)), err
	}
}

// arith folds args with integer arithmetic while every argument is an
// integer and with float arithmetic otherwise.
func arith(fi func(a, b int64) int64, ff func(a, b float64) float64, unit int64) nativeFn {
	return func(_ *Interp, args []Value) (Value, error) {
		acc := Int(unit)
		for i, a := range args {
			switch {
			case acc.Kind == KindInt && a.Kind == KindInt:
				acc = Int(fi(acc.data.(int64), a.data.(int64)))
			default:
				x, _ := acc.AsFloat()
				y, err := argFloat(args, i)
				if err != nil {
					return Nil, err
				}
				acc = Float(ff(x, y))
			}
		}
		return acc, nil
	}
}

func minus(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 1, -1); err != nil {
		return Nil, err
	}
	if len(args) == 1 {
		args = []Value{Int(0), args[0]}
	}
	acc := args[0]
	if _, ok := acc.AsFloat(); !ok {
		return Nil, wantErr(0, "number", acc)
	}
	for i, a := range args[1:] {
		if acc.Kind == KindInt && a.Kind == KindInt {
			acc = Int(acc.data.(int64) - a.data.(int64))
			continue
		}
		x, _ := acc.AsFloat()
		y, err := argFloat(args, i+1)
		if err != nil {
			return Nil, err
		}
		acc = Float(x - y)
	}
	return acc, nil
}

// divide returns an integer only when both operands are integers and the
// division is exact.
func divide(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 2, 2); err != nil {
		return Nil, err
	}
	if args[0].Kind == KindInt && args[1].Kind == KindInt {
		a, b := args[0].data.(int64), args[1].data.(int64)
		if b == 0 {
			return Nil, errDivZero
		}
		if a%b == 0 {
			return Int(a / b), nil
		}
	}
	a, err := argFloat(args, 0)
	if err != nil {
		return Nil, err
	}
	b, err := argFloat(args, 1)
	if err != nil {
		return Nil, err
	}
	if b == 0 {
		return Nil, errDivZero
	}
	return Float(a / b), nil
}

func mod(_ *Interp, args []Value) (Value, error) {
	if err := arity(args, 2, 2); err != nil {
		return Nil, err
	}
	if args[0].Kind == KindInt && args[1].Kind == KindInt {
		a, b := args[0].data.(int64), args[1].data.(int64)
		if b == 0 {
			return Nil, errDivZero
		}
		return Int(((a % b) + b) % b), nil
	}
	a, err := argFloat(args, 0)
	if err != nil {
		return Nil, err
	}
	b, err := argFloat(args, 1)
	if err != nil {
		return Nil, err
	}
	if b == 0 {
		return Nil, errDivZero
	}
	return Float(a - b*math.Floor(a/b)), nil
}

func extremum(better func(a, b float64) bool) nativeFn {
	return func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 1, -1); err != nil {
			return Nil, err
		}
		best := 0
		bf, err := argFloat(args, 0)
		if err != nil {
			return Nil, err
		}
		for i := 1; i < len(args); i++ {
			f, err := argFloat(args, i)
			if err != nil {
				return Nil, err
			}
			if better(f, bf) {
				best, bf = i, f
			}
		}
		return args[best], nil
	}
}

func compare(ok func(a, b float64) bool) nativeFn {
	return func(_ *Interp, args []Value) (Value, error) {
		if err := arity(args, 2, -1); err != nil {
			return Nil, err
		}
		for i := 0; i+1 < len(args); i++ {
			a, err := argFloat(args, i)
			if err != nil {
				return Nil, err
			}
			b, err := argFloat(args, i+1)
			if err != nil {
				return Nil, err
			}
			if !ok(a, b) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	}
}

func equal(a, b Value) bool {
	if x, ok := a.AsFloat(); ok {
		y, ok := b.AsFloat()
		return ok && x == y
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindList, KindVector:
		xs, _ := a.Items()
		ys, _ := b.Items()
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !equal(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case KindBool, KindString, KindSymbol, KindColor, KindVec2, KindNative, KindClosure, KindMacro:
		return a.data == b.data
	}
	return false
}
