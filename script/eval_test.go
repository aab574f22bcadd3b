package script

import (
	"errors"
	"testing"
)

func eval(t *testing.T, rt *Runtime, src string) Value {
	t.Helper()
	v, err := rt.Eval(src)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func TestEval(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"or", "(or false 2)", "2"},
		{"or first truthy", "(or 1 (undefined))", "1"},
		{"or all false", "(or false nil)", "nil"},
		{"or empty", "(or)", "false"},
		{"and", "(and 1 2)", "2"},
		{"and short circuit", "(and 1 false (undefined))", "false"},
		{"if", "(if nil 1 2)", "2"},
		{"if no else", "(if false 1)", "nil"},
		{"do", "(do 1 2 3)", "3"},
		{"let sequential", "(let ((a 1) (b (+ a 1))) (* a b 10))", "20"},
		{"let binds a macro name", "(let ((or 5)) or)", "5"},
		{"let value still expanded", "(let ((x (or false 2))) x)", "2"},
		{"fn param named like a macro", "((fn (or) or) 3)", "3"},
		{"defmacro params named like macros", "(defmacro pick (and or) or) (pick 1 2)", "2"},
		{"closure", "((fn (a) ((fn (b) (+ a b)) 2)) 1)", "3"},
		{"rest params", "((fn (a & r) r) 1 2 3)", "(2 3)"},
		{"rest empty", "((fn (& r) r))", "()"},
		{"quote", "'(a b)", "(a b)"},
		{"quasiquote", "(let ((xs '(2 3)) (y 5)) `(1 ,@xs 4 ,y))", "(1 2 3 4 5)"},
		{"quasiquote vector", "`[a ,(+ 1 1)]", "[a 2]"},
		{"vector literal", "[(+ 1 1) 3]", "[2 3]"},
		{"recursion", "(def fact (fn (n) (if (<= n 1) 1 (* n (fact (- n 1)))))) (fact 5)", "120"},
		{"defmacro", "(defmacro unless (c & body) `(if ,c nil (do ,@body))) (unless false 1 5)", "5"},
		{"nested macros", "(defmacro twice (x) `(+ ,x ,x)) (twice (twice 3))", "12"},
		{"map", "(map (fn (x) (* x x)) (range 4))", "(0 1 4 9)"},
		{"apply", "(apply + '(1 2 3))", "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRuntime()
			if got := eval(t, rt, tt.src).String(); got != tt.want {
				t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name, src string
		span      Span
	}{
		{"undefined symbol", "(+ 1 nope)", Span{5, 9}},
		{"type mismatch", `(+ 1 "a")`, Span{0, 9}},
		{"arity", "((fn (a) a))", Span{0, 12}},
		{"not callable", "(1 2)", Span{0, 5}},
		{"bad let", "(let (a) a)", Span{6, 7}},
		{"unquote outside", "(unquote x)", Span{0, 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuntime().Eval(tt.src)
			var ee *EvalError
			if !errors.As(err, &ee) {
				t.Fatalf("Eval(%q) = %v, want *EvalError", tt.src, err)
			}
			if ee.Span != tt.span {
				t.Errorf("span = %v, want %v (%v)", ee.Span, tt.span, err)
			}
		})
	}
}

func TestEvalErrorUnwrap(t *testing.T) {
	_, err := NewRuntime().Eval("(/ 1 0)")
	if !errors.Is(err, errDivZero) {
		t.Errorf("err = %v, want division by zero", err)
	}
}

func TestRecursionLimit(t *testing.T) {
	_, err := NewRuntime().Eval("(def loop (fn () (loop))) (loop)")
	var ee *EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *EvalError", err)
	}
}

func TestWithCache(t *testing.T) {
	calls := 0
	tick := NativeValue("tick", func(_ *Interp, _ []Value) (Value, error) {
		calls++
		return Int(int64(calls)), nil
	})
	src := `(def v (with_cache "k" (tick)))`

	shared := NewCache()
	for i := 0; i < 2; i++ {
		rt := NewRuntime(WithCache(shared))
		rt.Insert("tick", tick)
		if err := rt.Run(src); err != nil {
			t.Fatal(err)
		}
		v, _ := rt.Get("v")
		if n, _ := v.AsInt(); n != 1 {
			t.Errorf("run %d: v = %s, want 1", i, v)
		}
	}
	if calls != 1 {
		t.Errorf("body evaluated %d times, want 1", calls)
	}

	rt := NewRuntime(WithCache(shared))
	rt.Insert("tick", tick)
	if err := rt.Run(`(def w (with_cache "other" (tick)))`); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("new key: body evaluated %d times in total, want 2", calls)
	}
}

func TestCacheBuiltins(t *testing.T) {
	calls := 0
	rt := NewRuntime()
	rt.Insert("tick", NativeValue("tick", func(_ *Interp, _ []Value) (Value, error) {
		calls++
		return Int(int64(calls)), nil
	}))
	steps := []struct {
		src  string
		want string
	}{
		{`(with_cache "a" (tick))`, "1"},
		{`(with_cache "a" (tick))`, "1"},
		{`(cache_remove __rt_cache "a")`, "true"},
		{`(cache_remove __rt_cache "a")`, "false"},
		{`(with_cache "a" (tick))`, "2"},
		{`(with_cache "b" (tick))`, "3"},
		{`(cache_clear __rt_cache)`, "nil"},
		{`(with_cache "b" (tick))`, "4"},
	}
	for _, st := range steps {
		if got := eval(t, rt, st.src).String(); got != st.want {
			t.Fatalf("%s = %s, want %s", st.src, got, st.want)
		}
	}
	if n := rt.Cache().Len(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
	if _, err := rt.Eval(`(cache_clear 3)`); err == nil {
		t.Error("cache_clear accepted a non-cache")
	}
}

func TestWithCacheErrorNotStored(t *testing.T) {
	rt := NewRuntime()
	if err := rt.Run(`(with_cache "k" (/ 1 0))`); err == nil {
		t.Fatal("expected error")
	}
	v := eval(t, rt, `(with_cache "k" 7)`)
	if n, _ := v.AsInt(); n != 7 {
		t.Errorf("got %s, want 7", v)
	}
}

func TestRunKeepsDefinitions(t *testing.T) {
	rt := NewRuntime()
	if err := rt.Run("(def framerate 24)"); err != nil {
		t.Fatal(err)
	}
	if err := rt.Run("(def doubled (* framerate 2))"); err != nil {
		t.Fatal(err)
	}
	v, ok := rt.Get("doubled")
	if n, _ := v.AsInt(); !ok || n != 48 {
		t.Errorf("doubled = %s, %v", v, ok)
	}
	if _, ok := rt.Get("missing"); ok {
		t.Error("Get found an undefined name")
	}
}
