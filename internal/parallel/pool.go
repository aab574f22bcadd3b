// Package parallel runs render strips on a fixed set of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs batches of tasks on long-lived workers. Every worker has its
// own queue and takes work from its siblings when that queue runs dry, so
// strips of uneven cost still finish together.
//
// A Pool is safe for concurrent use.
type Pool struct {
	queues []chan func()
	stop   chan struct{}
	exited sync.WaitGroup

	// mu is held for reading while a batch is queued, so Close cannot stop
	// the workers under a submission.
	mu     sync.RWMutex
	closed bool
}

// New starts a pool of n workers, or GOMAXPROCS workers when n <= 0.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{queues: make([]chan func(), n), stop: make(chan struct{})}
	depth := max(4*n, 8)
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.exited.Add(n)
	for i := range n {
		go p.loop(i)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.queues) }

// Running reports whether Close has not been called yet.
func (p *Pool) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

func (p *Pool) loop(id int) {
	defer p.exited.Done()
	own := p.queues[id]
	for {
		select {
		case task := <-own:
			task()
			continue
		case <-p.stop:
			drain(own)
			return
		default:
		}
		if task := p.steal(id); task != nil {
			task()
			continue
		}
		select {
		case task := <-own:
			task()
		case <-p.stop:
			drain(own)
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for off := 1; off < len(p.queues); off++ {
		select {
		case task := <-p.queues[(id+off)%len(p.queues)]:
			return task
		default:
		}
	}
	return nil
}

func drain(q chan func()) {
	for {
		select {
		case task := <-q:
			task()
		default:
			return
		}
	}
}

// Run executes tasks and returns when all of them have finished. A panic
// in a task does not stop the others; the first panic value is raised
// again on the caller once the batch is done.
//
// After Close, tasks run one by one on the caller.
func (p *Pool) Run(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		for _, t := range tasks {
			t()
		}
		return
	}

	var (
		wg    sync.WaitGroup
		first atomic.Pointer[any]
	)
	wg.Add(len(tasks))
	for i, t := range tasks {
		p.queues[i%len(p.queues)] <- func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					first.CompareAndSwap(nil, &r)
				}
			}()
			t()
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	if r := first.Load(); r != nil {
		panic(*r)
	}
}

// Close lets queued tasks finish and stops the workers. Extra calls do
// nothing.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.stop)
	p.exited.Wait()
}

var (
	sharedOnce sync.Once
	shared     *Pool
)

// Shared returns the process-wide pool, sized to GOMAXPROCS on first use.
func Shared() *Pool {
	sharedOnce.Do(func() { shared = New(0) })
	return shared
}
