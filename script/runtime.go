package script

import (
	"context"
	"log/slog"

	"github.com/gogpu/kantera"
)

// CacheSymbol is the name the memo table is bound to.
const CacheSymbol = "__rt_cache"

// Option configures a Runtime.
type Option func(*options)

type options struct {
	cache   *Cache
	baseDir string
	logger  *slog.Logger
}

// WithCache shares c as __rt_cache, so with_cache results survive across
// runtimes built with the same cache.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithBaseDir resolves relative asset paths against dir.
func WithBaseDir(dir string) Option {
	return func(o *options) { o.baseDir = dir }
}

// WithLogger sets the logger used by print. The default is kantera.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Runtime is a global environment with the builtins and prelude loaded.
type Runtime struct {
	it     *Interp
	cache  *Cache
	logger *slog.Logger
}

// NewRuntime returns a runtime ready to run scripts.
func NewRuntime(opts ...Option) *Runtime {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = NewCache()
	}
	if o.logger == nil {
		o.logger = kantera.Logger()
	}
	rt := &Runtime{
		it:     &Interp{global: NewEnv(nil), baseDir: o.baseDir},
		cache:  o.cache,
		logger: o.logger,
	}
	rt.it.logger = o.logger
	g := rt.it.global
	defineCore(g)
	defineRender(g)
	defineAudio(g)
	defineAssets(g)
	defineFuncs(g)
	g.Define(Intern(CacheSymbol), CacheValue(o.cache))
	if err := rt.Run(prelude); err != nil {
		panic("script: prelude: " + err.Error())
	}
	return rt
}

// Insert binds name in the global scope.
func (rt *Runtime) Insert(name string, v Value) {
	rt.it.global.Define(Intern(name), v)
}

// Get looks name up in the global scope.
func (rt *Runtime) Get(name string) (Value, bool) {
	return rt.it.global.Lookup(Intern(name))
}

// Cache returns the memo table bound to __rt_cache.
func (rt *Runtime) Cache() *Cache { return rt.cache }

// Run reads src and evaluates its forms in order.
func (rt *Runtime) Run(src string) error {
	_, err := rt.EvalContext(context.Background(), src)
	return err
}

// RunContext is Run with a context for builtins that start subprocesses.
func (rt *Runtime) RunContext(ctx context.Context, src string) error {
	_, err := rt.EvalContext(ctx, src)
	return err
}

// Eval runs src and returns the value of its last form.
func (rt *Runtime) Eval(src string) (Value, error) {
	return rt.EvalContext(context.Background(), src)
}

// EvalContext is Eval with a context. Render contract panics raised while
// building nodes are returned as errors.
func (rt *Runtime) EvalContext(ctx context.Context, src string) (v Value, err error) {
	forms, err := Read(src)
	if err != nil {
		return Nil, err
	}
	defer kantera.Recover(&err)
	rt.it.ctx = ctx
	defer func() { rt.it.ctx = nil }()
	v = Nil
	for _, f := range forms {
		exp, err := rt.it.Expand(f, rt.it.global)
		if err != nil {
			return Nil, err
		}
		if v, err = rt.it.Eval(exp, rt.it.global); err != nil {
			return Nil, err
		}
	}
	return v, nil
}
