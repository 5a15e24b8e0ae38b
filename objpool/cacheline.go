// File: objpool/cacheline.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cache-line sizing shared by slot layout and by the per-slot capacity
// formula in sizing.go (spec.md §4.2 sizing rule: "raise nents to the
// minimum that fits in one cache line").

package objpool

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// cacheLinePad is padding whose size equals the platform's L1 cache line,
// following the same idiom
// codeberg.org/gruf/go-mempool uses to size its own pool header
// (unsafe.Sizeof(cpu.CacheLinePad{})), vendored under
// qundao-mirror-gotosocial.
type cacheLinePad = cpu.CacheLinePad

// l1CacheLineBytes is the platform's L1 cache line size, used by the
// per-slot capacity formula: nents * (4 + sizeof(ref)) >= l1CacheLineBytes.
func l1CacheLineBytes() uintptr {
	return unsafe.Sizeof(cpu.CacheLinePad{})
}

// refEntryBytes is "4 + sizeof(ref)" from spec.md §3 — an age tag (uint32)
// plus one pointer-sized reference.
const refEntryBytes = 4 + unsafe.Sizeof(uintptr(0))
