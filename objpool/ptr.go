// File: objpool/ptr.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Address-range helpers used by Fini to classify drained references as
// embedded, bulk-buffer, or external (spec.md §4.4).

package objpool

import "unsafe"

func pointerToUintptr[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}
