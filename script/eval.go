package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// EvalError is a failure while evaluating a form. Span locates the form in
// the source; Err, when set, is the underlying cause.
type EvalError struct {
	Span Span
	Msg  string
	Err  error
}

func (e *EvalError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	return fmt.Sprintf("script: %d-%d: %s", e.Span.Start, e.Span.End, msg)
}

func (e *EvalError) Unwrap() error { return e.Err }

func evalErrorf(sp Span, format string, args ...any) error {
	return &EvalError{Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// located attaches sp to err unless err already carries a span.
func located(sp Span, err error) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		return err
	}
	return &EvalError{Span: sp, Err: err}
}

var (
	symIf       = Intern("if")
	symDo       = Intern("do")
	symLet      = Intern("let")
	symFn       = Intern("fn")
	symDef      = Intern("def")
	symDefmacro = Intern("defmacro")
	symAmp      = Intern("&")
)

const maxDepth = 2000

// Interp evaluates forms. It is not safe for concurrent use.
type Interp struct {
	global  *Env
	ctx     context.Context
	baseDir string
	logger  *slog.Logger
	depth   int

	// calls serializes script functions invoked from render workers.
	calls sync.Mutex
}

// Global returns the top-level scope.
func (it *Interp) Global() *Env { return it.global }

// Context returns the context of the running evaluation.
func (it *Interp) Context() context.Context {
	if it.ctx == nil {
		return context.Background()
	}
	return it.ctx
}

// Eval evaluates one expanded form in env.
func (it *Interp) Eval(form Value, env *Env) (Value, error) {
	it.depth++
	defer func() { it.depth-- }()
	if it.depth > maxDepth {
		return Nil, evalErrorf(form.Span, "recursion too deep")
	}

	switch form.Kind {
	case KindSymbol:
		s, _ := form.AsSymbol()
		v, ok := env.Lookup(s)
		if !ok {
			return Nil, evalErrorf(form.Span, "undefined symbol %s", s.Name)
		}
		return v, nil
	case KindVector:
		xs, _ := form.Items()
		out := make([]Value, len(xs))
		for i, x := range xs {
			v, err := it.Eval(x, env)
			if err != nil {
				return Nil, err
			}
			out[i] = v
		}
		return Vector(out...), nil
	case KindList:
		return it.evalList(form, env)
	}
	return form, nil
}

func (it *Interp) evalList(form Value, env *Env) (Value, error) {
	xs, _ := form.Items()
	if len(xs) == 0 {
		return form, nil
	}
	if s, ok := xs[0].AsSymbol(); ok {
		switch s {
		case symQuote:
			if len(xs) != 2 {
				return Nil, evalErrorf(form.Span, "quote takes one form")
			}
			return xs[1], nil
		case symQuasiquote:
			if len(xs) != 2 {
				return Nil, evalErrorf(form.Span, "quasiquote takes one form")
			}
			return it.quasi(xs[1], env)
		case symUnquote, symUnquoteSplicing:
			return Nil, evalErrorf(form.Span, "%s outside quasiquote", s.Name)
		case symIf:
			return it.evalIf(form, xs, env)
		case symDo:
			return it.body(xs[1:], env)
		case symLet:
			return it.evalLet(form, xs, env)
		case symFn:
			c, err := makeClosure(form, xs[1:], env)
			if err != nil {
				return Nil, err
			}
			return Value{Kind: KindClosure, data: c}, nil
		case symDef:
			return it.evalDef(form, xs, env)
		case symDefmacro:
			return it.evalDefmacro(form, xs, env)
		}
	}

	head, err := it.Eval(xs[0], env)
	if err != nil {
		return Nil, err
	}
	if head.Kind == KindMacro {
		// Macro produced at run time, e.g. by quasiquote.
		exp, err := it.Expand(form, env)
		if err != nil {
			return Nil, err
		}
		return it.Eval(exp, env)
	}
	args := make([]Value, len(xs)-1)
	for i, x := range xs[1:] {
		if args[i], err = it.Eval(x, env); err != nil {
			return Nil, err
		}
	}
	return it.apply(head, args, form.Span)
}

// Apply calls a function value with evaluated arguments.
func (it *Interp) Apply(fn Value, args []Value) (Value, error) {
	return it.apply(fn, args, fn.Span)
}

func (it *Interp) apply(fn Value, args []Value, sp Span) (Value, error) {
	switch fn.Kind {
	case KindNative:
		n := fn.data.(*Native)
		v, err := n.Fn(it, args)
		if err != nil {
			return Nil, located(sp, fmt.Errorf("%s: %w", n.Name, err))
		}
		return v, nil
	case KindClosure:
		c := fn.data.(*Closure)
		env, err := c.bind(args, sp)
		if err != nil {
			return Nil, err
		}
		return it.body(c.Body, env)
	}
	return Nil, evalErrorf(sp, "%s is not callable", fn)
}

func (c *Closure) bind(args []Value, sp Span) (*Env, error) {
	if len(args) < len(c.Params) || (c.Rest == nil && len(args) > len(c.Params)) {
		name := c.Name
		if name == "" {
			name = "fn"
		}
		return nil, evalErrorf(sp, "%s: want %d arguments, got %d", name, len(c.Params), len(args))
	}
	env := NewEnv(c.Env)
	for i, p := range c.Params {
		env.Define(p, args[i])
	}
	if c.Rest != nil {
		env.Define(c.Rest, List(append([]Value(nil), args[len(c.Params):]...)...))
	}
	return env, nil
}

func (it *Interp) body(forms []Value, env *Env) (Value, error) {
	v := Nil
	for _, f := range forms {
		var err error
		if v, err = it.Eval(f, env); err != nil {
			return Nil, err
		}
	}
	return v, nil
}

func (it *Interp) evalIf(form Value, xs []Value, env *Env) (Value, error) {
	if len(xs) != 3 && len(xs) != 4 {
		return Nil, evalErrorf(form.Span, "if takes a condition and one or two branches")
	}
	c, err := it.Eval(xs[1], env)
	if err != nil {
		return Nil, err
	}
	if c.Truthy() {
		return it.Eval(xs[2], env)
	}
	if len(xs) == 4 {
		return it.Eval(xs[3], env)
	}
	return Nil, nil
}

// evalLet binds sequentially: each value sees the names bound before it.
func (it *Interp) evalLet(form Value, xs []Value, env *Env) (Value, error) {
	if len(xs) < 2 {
		return Nil, evalErrorf(form.Span, "let needs a binding list")
	}
	bindings, ok := xs[1].Items()
	if !ok {
		return Nil, evalErrorf(xs[1].Span, "let bindings must be a list")
	}
	scope := NewEnv(env)
	for _, b := range bindings {
		pair, ok := b.Items()
		if !ok || len(pair) != 2 {
			return Nil, evalErrorf(b.Span, "let binding must be (name value)")
		}
		s, ok := pair[0].AsSymbol()
		if !ok {
			return Nil, evalErrorf(pair[0].Span, "let binding name must be a symbol")
		}
		v, err := it.Eval(pair[1], scope)
		if err != nil {
			return Nil, err
		}
		scope.Define(s, v)
	}
	return it.body(xs[2:], scope)
}

func (it *Interp) evalDef(form Value, xs []Value, env *Env) (Value, error) {
	if len(xs) != 3 {
		return Nil, evalErrorf(form.Span, "def takes a name and a value")
	}
	s, ok := xs[1].AsSymbol()
	if !ok {
		return Nil, evalErrorf(xs[1].Span, "def name must be a symbol")
	}
	v, err := it.Eval(xs[2], env)
	if err != nil {
		return Nil, err
	}
	if c, ok := v.data.(*Closure); ok && c.Name == "" {
		c.Name = s.Name
	}
	env.Define(s, v)
	return v, nil
}

func (it *Interp) evalDefmacro(form Value, xs []Value, env *Env) (Value, error) {
	if len(xs) < 3 {
		return Nil, evalErrorf(form.Span, "defmacro takes a name, parameters and a body")
	}
	s, ok := xs[1].AsSymbol()
	if !ok {
		return Nil, evalErrorf(xs[1].Span, "defmacro name must be a symbol")
	}
	c, err := makeClosure(form, xs[2:], env)
	if err != nil {
		return Nil, err
	}
	c.Name = s.Name
	m := Value{Kind: KindMacro, data: c}
	env.Define(s, m)
	return m, nil
}

// makeClosure builds a closure from (params body...).
func makeClosure(form Value, rest []Value, env *Env) (*Closure, error) {
	if len(rest) == 0 {
		return nil, evalErrorf(form.Span, "missing parameter list")
	}
	params, ok := rest[0].Items()
	if !ok {
		return nil, evalErrorf(rest[0].Span, "parameters must be a list")
	}
	c := &Closure{Body: rest[1:], Env: env}
	for i := 0; i < len(params); i++ {
		s, ok := params[i].AsSymbol()
		if !ok {
			return nil, evalErrorf(params[i].Span, "parameter must be a symbol")
		}
		if s == symAmp {
			if i != len(params)-2 {
				return nil, evalErrorf(params[i].Span, "& must be followed by exactly one name")
			}
			if c.Rest, ok = params[i+1].AsSymbol(); !ok {
				return nil, evalErrorf(params[i+1].Span, "parameter must be a symbol")
			}
			break
		}
		c.Params = append(c.Params, s)
	}
	return c, nil
}

// quasi evaluates the unquoted parts of a quasiquoted template.
func (it *Interp) quasi(form Value, env *Env) (Value, error) {
	xs, ok := form.Items()
	if !ok {
		return form, nil
	}
	if form.Kind == KindList && len(xs) == 2 {
		if s, _ := xs[0].AsSymbol(); s == symUnquote {
			return it.Eval(xs[1], env)
		}
	}
	out := make([]Value, 0, len(xs))
	for _, x := range xs {
		if inner, ok := x.Items(); ok && x.Kind == KindList && len(inner) == 2 {
			if s, _ := inner[0].AsSymbol(); s == symUnquoteSplicing {
				v, err := it.Eval(inner[1], env)
				if err != nil {
					return Nil, err
				}
				items, ok := v.Items()
				if !ok && v.Kind != KindNil {
					return Nil, evalErrorf(x.Span, "unquote-splicing of %s", v.Kind)
				}
				out = append(out, items...)
				continue
			}
		}
		v, err := it.quasi(x, env)
		if err != nil {
			return Nil, err
		}
		out = append(out, v)
	}
	return Value{Kind: form.Kind, data: out, Span: form.Span}, nil
}
