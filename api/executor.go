// Package api
// Author: momentics
//
// Executor contract for parallel task dispatch. harness.Pool implements
// this to run one objpool benchmark cycle per worker goroutine.

package api

// Executor abstracts parallel task and custom eventloop execution.
type Executor interface {
    // Submit schedules task for execution.
    Submit(task func()) error

    // NumWorkers returns current number of active worker routines.
    NumWorkers() int

    // Resize adjusts the concurrency at runtime.
    Resize(newCount int)
}
