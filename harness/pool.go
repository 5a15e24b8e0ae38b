// File: harness/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool is the one harness component actually implemented rather than left
// as an interface: a minimal api.Executor driving a resizable set of
// WorkerLoop goroutines, used by cmd/objpool-bench so --threads has a real
// runtime effect instead of a fixed goroutine count.

package harness

import (
	"context"
	"sync"

	"github.com/momentics/objpool/api"
)

// Pool runs a WorkerLoop across a configurable number of goroutines.
type Pool struct {
	mu      sync.Mutex
	loop    WorkerLoop
	ctx     context.Context
	cancels []context.CancelFunc
	wg      sync.WaitGroup
}

// NewPool returns a Pool that will drive loop under ctx.
func NewPool(ctx context.Context, loop WorkerLoop) *Pool {
	return &Pool{loop: loop, ctx: ctx}
}

// Submit runs task, if non-nil, on its own goroutine, outside the worker
// set: it starts no WorkerLoop, and the goroutine is neither counted by
// NumWorkers nor awaited by Wait. It exists to satisfy api.Executor's
// dispatch contract for a harness that wants to interleave ad-hoc work with
// the benchmark cycle.
func (p *Pool) Submit(task func()) error {
	if task != nil {
		go task()
	}
	return nil
}

// NumWorkers reports the number of active worker goroutines.
func (p *Pool) NumWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cancels)
}

// Resize grows or shrinks the worker count to newCount, starting new
// WorkerLoop.Run goroutines or canceling excess ones.
func (p *Pool) Resize(newCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.cancels) < newCount {
		coreID := len(p.cancels)
		ctx, cancel := context.WithCancel(p.ctx)
		p.cancels = append(p.cancels, cancel)
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			_ = p.loop.Run(ctx, id)
		}(coreID)
	}
	for len(p.cancels) > newCount {
		last := len(p.cancels) - 1
		p.cancels[last]()
		p.cancels = p.cancels[:last]
	}
}

// Wait blocks until every worker goroutine started by Resize has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

var _ api.Executor = (*Pool)(nil)
