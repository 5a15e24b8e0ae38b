//go:build !(linux && cgo)
// +build !linux !cgo

// File: internal/coreid/numa_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-Linux/non-cgo builds: no NUMA syscalls available, fall back to plain
// heap allocation. Correctness holds, only locality is lost.

package coreid

func newPlatformNUMAAllocator() NUMAAllocator { return fallbackAllocator{} }

// PinCurrentThread is a no-op without libnuma.
func PinCurrentThread(numaNode int) error { return nil }

// UnpinCurrentThread is a no-op without libnuma.
func UnpinCurrentThread() {}
