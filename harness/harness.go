// File: harness/harness.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Interfaces for the out-of-scope benchmark harness (SPEC_FULL.md
// [HARNESS-IFACE], spec.md §1/§6): a worker loop per core, an hrtimer-style
// periodic ticker, a tasklet-style deferred callback queue, and a hot-plug
// registrar for cores joining/leaving at runtime. cmd/objpool-bench wires a
// minimal WorkerLoop implementation against these; apart from Pool
// (pool.go), nothing else in this package is implemented.

package harness

import (
	"context"
	"time"
)

// WorkerLoop runs a per-core benchmark cycle: repeatedly Pop, optionally
// hold the object for some simulated work duration, then Push it back.
// Mirrors the teacher's api.Executor contract (momentics-hioload-ws
// api/executor.go), narrowed to one worker per logical core instead of a
// resizable pool.
type WorkerLoop interface {
	// Run executes cycles on coreID until ctx is canceled.
	Run(ctx context.Context, coreID int) error
	// CyclesCompleted reports the number of push/pop cycles this loop has
	// finished so far; safe to call concurrently with Run.
	CyclesCompleted() uint64
}

// Ticker abstracts a periodic callback source, standing in for the
// hrtimer the pool's kernel origin used to drive synthetic load at a fixed
// rate (spec.md §1's "out of scope: benchmark harness").
type Ticker interface {
	// Tick blocks until the next period elapses or ctx is canceled.
	Tick(ctx context.Context) error
	// Period reports the configured tick interval.
	Period() time.Duration
}

// Tasklet models a unit of deferred work queued from a WorkerLoop cycle
// and drained on a separate schedule, mirroring the softirq/tasklet split
// the pool's kernel origin used to keep Push/Pop off any blocking path.
type Tasklet interface {
	// Defer enqueues fn for later execution; never blocks.
	Defer(fn func())
	// Drain runs every deferred fn queued so far, in FIFO order.
	Drain()
}

// HotplugRegistrar models runtime core add/remove notifications, for a
// harness that exercises the pool across a changing core count. objpool
// itself has no hot-plug support (its core count is fixed at Init), so a
// registrar implementation is responsible for stopping/restarting the
// WorkerLoops affected by a topology change.
type HotplugRegistrar interface {
	// OnCoreUp registers fn to run when coreID becomes available.
	OnCoreUp(coreID int, fn func())
	// OnCoreDown registers fn to run when coreID is about to be removed.
	OnCoreDown(coreID int, fn func())
}
