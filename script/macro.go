package script

const maxExpansions = 1000

// Expand rewrites every macro call in form until none remain. Quoted
// templates are left alone; macros built by quasiquote at run time are
// expanded when they are evaluated.
func (it *Interp) Expand(form Value, env *Env) (Value, error) {
	for n := 0; ; n++ {
		xs, ok := form.Items()
		if !ok || form.Kind != KindList || len(xs) == 0 {
			break
		}
		s, ok := xs[0].AsSymbol()
		if !ok {
			break
		}
		if s == symQuote || s == symQuasiquote {
			return form, nil
		}
		m, ok := env.Lookup(s)
		if !ok || m.Kind != KindMacro {
			break
		}
		if n == maxExpansions {
			return Nil, evalErrorf(form.Span, "macro %s expands without end", s.Name)
		}
		exp, err := it.expand1(m.data.(*Closure), xs[1:], form.Span)
		if err != nil {
			return Nil, err
		}
		if exp.Span == (Span{}) {
			exp.Span = form.Span
		}
		form = exp
	}

	xs, ok := form.Items()
	if !ok {
		return form, nil
	}
	var head *Symbol
	if form.Kind == KindList && len(xs) > 0 {
		head, _ = xs[0].AsSymbol()
	}
	out := make([]Value, len(xs))
	for i, x := range xs {
		var (
			v   Value
			err error
		)
		switch {
		case i == 1 && head == symLet:
			v, err = it.expandBindings(x, env)
		case i == 1 && head == symFn, i == 2 && head == symDefmacro:
			// Parameter lists name bindings; they are not calls.
			v = x
		default:
			v, err = it.Expand(x, env)
		}
		if err != nil {
			return Nil, err
		}
		out[i] = v
	}
	return Value{Kind: form.Kind, data: out, Span: form.Span}, nil
}

// expandBindings expands the value forms of a let binding list and keeps
// the bound names as written.
func (it *Interp) expandBindings(bindings Value, env *Env) (Value, error) {
	bs, ok := bindings.Items()
	if !ok {
		return bindings, nil
	}
	out := make([]Value, len(bs))
	for i, b := range bs {
		pair, ok := b.Items()
		if !ok || len(pair) < 2 {
			out[i] = b
			continue
		}
		exp := make([]Value, len(pair))
		exp[0] = pair[0]
		for j := 1; j < len(pair); j++ {
			v, err := it.Expand(pair[j], env)
			if err != nil {
				return Nil, err
			}
			exp[j] = v
		}
		out[i] = Value{Kind: b.Kind, data: exp, Span: b.Span}
	}
	return Value{Kind: bindings.Kind, data: out, Span: bindings.Span}, nil
}

// expand1 applies a macro to unevaluated argument forms.
func (it *Interp) expand1(m *Closure, args []Value, sp Span) (Value, error) {
	env, err := m.bind(args, sp)
	if err != nil {
		return Nil, err
	}
	return it.body(m.Body, env)
}
