// File: internal/coreid/coreid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral lookup of the calling goroutine's current logical CPU,
// used by objpool to pick the starting slot for push/pop cross-core search.
// Platform-specific implementations live in coreid_linux.go / coreid_stub.go.

package coreid

import "sync/atomic"

var rrCounter atomic.Uint64

// Current returns the logical CPU index the caller is presently running on,
// best-effort. Go goroutines are not pinned to OS threads by default, so this
// is a hint for picking a slot, never a guarantee: a stale or wrong value
// only costs one extra hop in the cross-core search, it cannot corrupt state.
func Current(numCores int) int {
	if numCores <= 0 {
		return 0
	}
	if cpu, ok := platformCurrentCPU(); ok {
		return cpu % numCores
	}
	// No fast syscall on this platform/build: fall back to a round-robin
	// hint so callers still fan out across slots instead of hammering slot 0.
	n := rrCounter.Add(1)
	return int(n % uint64(numCores))
}
