//go:build linux && cgo
// +build linux,cgo

// File: internal/coreid/numa_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// libnuma-backed allocator, adapted from the teacher's pool/numa_linux.go:
// same cgo shape (numa_alloc_onnode/numa_free, numa_available guard), now
// node-scoped on Free to match objpool's per-slot bookkeeping instead of
// always freeing against node -1.

package coreid

/*
#cgo LDFLAGS: -lnuma
#include <numa.h>
#include <stdlib.h>

void* objpool_numa_alloc(int size, int node) {
	if (numa_available() == -1 || node < 0) {
		return malloc((size_t)size);
	}
	return numa_alloc_onnode((size_t)size, node);
}

void objpool_numa_free(void *mem, int size, int node) {
	if (numa_available() == -1 || node < 0) {
		free(mem);
		return;
	}
	numa_free(mem, (size_t)size);
}

int objpool_numa_run_on_node(int node) {
	return numa_run_on_node(node);
}

int objpool_numa_max_node(void) {
	if (numa_available() == -1) {
		return 0;
	}
	return numa_max_node();
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"
)

type linuxNUMAAllocator struct{}

func newPlatformNUMAAllocator() NUMAAllocator { return linuxNUMAAllocator{} }

func (linuxNUMAAllocator) Alloc(size int, node int) ([]byte, error) {
	ptr := C.objpool_numa_alloc(C.int(size), C.int(node))
	if ptr == nil {
		return nil, fmt.Errorf("coreid: numa alloc failed for %d bytes on node %d", size, node)
	}
	return unsafe.Slice((*byte)(ptr), size), nil
}

func (linuxNUMAAllocator) Free(buf []byte, node int) {
	if len(buf) == 0 {
		return
	}
	C.objpool_numa_free(unsafe.Pointer(&buf[0]), C.int(len(buf)), C.int(node))
}

func (linuxNUMAAllocator) Nodes() int {
	return int(C.objpool_numa_max_node()) + 1
}

// PinCurrentThread binds the calling OS thread to numaNode, following the
// teacher's internal/concurrency/pin_linux.go. Used only by objpool.Init's
// slot placement and by Affinity.Pin (cmd/objpool-bench's --numa setup),
// never by push/pop (§5 forbids blocking syscalls on the hot path).
func PinCurrentThread(numaNode int) error {
	if numaNode < 0 {
		return nil
	}
	runtime.LockOSThread()
	if ret := C.objpool_numa_run_on_node(C.int(numaNode)); ret != 0 {
		runtime.UnlockOSThread()
		return fmt.Errorf("coreid: numa_run_on_node(%d) failed", numaNode)
	}
	return nil
}

// UnpinCurrentThread releases the OS thread lock taken by PinCurrentThread
// and lets the calling thread run on any node again.
func UnpinCurrentThread() {
	C.objpool_numa_run_on_node(-1)
	runtime.UnlockOSThread()
}
