// File: compare/variant.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Interface only, for the out-of-scope comparison variants (SPEC_FULL.md
// [COMPARE-IFACE]): original_source/scalable/inc/ carries eleven
// comparison-variant queue/freelist headers (ra.h, fl.h, flpc.h, pc.h,
// sa.h, sah.h, sapc.h, saca.h, saea.h, zz.h, aq.h) the ring-array design
// was benchmarked against. This package names the contract a Go port of
// any of them would need to satisfy to be benchmarked side by side with
// objpool.Pool; no implementation lives here.

package compare

// Variant is the contract any alternative pool design (one of
// original_source/scalable/inc/'s freelist/queue variants, ported to Go)
// must satisfy to be substitutable for objpool.Pool[T] in
// cmd/objpool-bench's driver loop.
type Variant[T any] interface {
	// Push returns ref to the pool.
	Push(ref *T)
	// Pop removes and returns a reference, or (nil, false) if empty.
	Pop() (*T, bool)
	// Occupancy reports the current live element count.
	Occupancy() int
	// Name identifies the variant for benchmark output labeling.
	Name() string
}
