// File: internal/coreid/numa.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NUMA-aware allocation used by objpool's placement policy (SPEC_FULL.md
// [HEAD]): each slot is allocated on the memory node of its owning core.
// Concrete allocators are selected at build time; platforms without NUMA
// support (or built without cgo) fall back to plain heap allocation, which
// keeps correctness but loses locality.

package coreid

// NUMAAllocator allocates and frees node-local memory.
type NUMAAllocator interface {
	Alloc(size int, node int) ([]byte, error)
	Free(data []byte, node int)
	Nodes() int
}

// NewNUMAAllocator returns the best allocator available for this platform
// and build (cgo+libnuma on Linux, a plain heap fallback otherwise).
func NewNUMAAllocator() NUMAAllocator {
	return newPlatformNUMAAllocator()
}

type fallbackAllocator struct{}

func (fallbackAllocator) Alloc(size int, _ int) ([]byte, error) { return make([]byte, size), nil }
func (fallbackAllocator) Free(_ []byte, _ int)                  {}
func (fallbackAllocator) Nodes() int                            { return 1 }
