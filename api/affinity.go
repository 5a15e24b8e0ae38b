// Package api
// Author: momentics@gmail.com
//
// CPU/NUMA affinity, thread pinning and topology definitions
// (SPEC_FULL.md [AFFINITY]). internal/coreid.Affinity implements this
// contract; cmd/objpool-bench uses it to pin its setup goroutine's OS
// thread to node 0 when run with --numa (worker goroutines are not pinned).

package api

// Affinity controls execution on particular CPUs/NUMA nodes.
type Affinity interface {
    // Pin locks the current goroutine to a CPU or NUMA node.
    Pin(cpuID int, numaID int) error
    // Unpin removes affinity.
    Unpin() error
    // Get returns current CPU and NUMA node.
    Get() (cpuID int, numaID int, err error)
}
