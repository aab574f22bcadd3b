package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		p := New(tt.n)
		if p.Size() != tt.want {
			t.Errorf("New(%d).Size() = %d, want %d", tt.n, p.Size(), tt.want)
		}
		if !p.Running() {
			t.Errorf("New(%d) not running", tt.n)
		}
		p.Close()
	}
}

func TestRunWritesEverySlot(t *testing.T) {
	p := New(3)
	defer p.Close()

	out := make([]int, 100)
	tasks := make([]func(), len(out))
	for i := range tasks {
		tasks[i] = func() { out[i] = 3 * i }
	}
	p.Run(tasks)
	for i, v := range out {
		if v != 3*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, 3*i)
		}
	}
	p.Run(nil)
}

func TestRunRaisesFirstPanic(t *testing.T) {
	p := New(2)
	defer p.Close()

	var done atomic.Int32
	tasks := []func(){
		func() { done.Add(1) },
		func() { panic("strip failed") },
		func() { done.Add(1) },
	}
	defer func() {
		if r := recover(); r != "strip failed" {
			t.Errorf("recovered %v, want strip failed", r)
		}
		if done.Load() != 2 {
			t.Errorf("%d tasks finished, want 2", done.Load())
		}
		if !p.Running() {
			t.Error("a task panic closed the pool")
		}
	}()
	p.Run(tasks)
}

func TestRunAfterClose(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close()
	if p.Running() {
		t.Fatal("Running after Close")
	}
	var n atomic.Int32
	p.Run([]func(){func() { n.Add(1) }, func() { n.Add(1) }})
	if n.Load() != 2 {
		t.Errorf("ran %d tasks, want 2", n.Load())
	}
}

func TestRunRacingClose(t *testing.T) {
	for range 50 {
		p := New(2)
		var n atomic.Int32
		tasks := make([]func(), 64)
		for i := range tasks {
			tasks[i] = func() { n.Add(1) }
		}
		done := make(chan struct{})
		go func() {
			defer close(done)
			p.Run(tasks)
		}()
		p.Close()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after a concurrent Close")
		}
		if got := n.Load(); got != int32(len(tasks)) {
			t.Fatalf("ran %d tasks, want %d", got, len(tasks))
		}
	}
}

func TestShared(t *testing.T) {
	if Shared() != Shared() {
		t.Error("Shared returned different pools")
	}
	if !Shared().Running() {
		t.Error("shared pool not running")
	}
}

func BenchmarkRun(b *testing.B) {
	p := New(0)
	defer p.Close()
	tasks := make([]func(), 64)
	for i := range tasks {
		tasks[i] = func() {}
	}
	b.ReportAllocs()
	for b.Loop() {
		p.Run(tasks)
	}
}
