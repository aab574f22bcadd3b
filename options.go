package kantera

import "github.com/gogpu/kantera/internal/parallel"

// EvalOption configures the parallel evaluator.
//
// Example:
//
//	// Default: one strip per GOMAXPROCS worker on the shared pool
//	buf := kantera.RenderToBufferParallel(ro, video)
//
//	// Fixed strip count
//	buf := kantera.RenderToBufferParallel(ro, video, kantera.WithWorkers(4))
type EvalOption func(*evalOptions)

type evalOptions struct {
	workers int
	pool    *parallel.Pool
}

func defaultEvalOptions() evalOptions {
	return evalOptions{}
}

// WithWorkers sets the number of column strips the window is split into.
// Values <= 0 select the pool's worker count.
func WithWorkers(n int) EvalOption {
	return func(o *evalOptions) {
		o.workers = n
	}
}

// withPool runs strips on a dedicated pool. Tests use it to exercise pools
// of a known size.
func withPool(p *parallel.Pool) EvalOption {
	return func(o *evalOptions) {
		o.pool = p
	}
}
