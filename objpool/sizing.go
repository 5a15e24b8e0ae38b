// File: objpool/sizing.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-slot capacity math (spec.md §4.2 "Sizing", invariants 1 and the
// boundary behaviors B1/B2 in §8).

package objpool

// Balance modes for the asym parameter of Init.
const (
	// Balanced splits requested evenly across all cores.
	Balanced = 0
	// SingleCore sizes every slot so any one core can hold the whole
	// working set — the "performance mode" from spec.md §4.2.
	SingleCore = 1
)

// maxCores is the 16-bit core-count ceiling from §6 ("Unsupported if core
// count > 2^16").
const maxCores = 1 << 16

func computePerSlotCapacity(requested, asym, numCores int) uint32 {
	var nents int
	switch {
	case numCores <= 0:
		nents = requested
	case asym == Balanced:
		nents = ceilDiv(requested, numCores)
	case asym == SingleCore:
		nents = requested
	default: // asym > 1: any asym cores together can hold the full set
		nents = ceilDiv(requested, asym)
	}

	minCap := minSlotCapacity()
	if nents < int(minCap) {
		nents = int(minCap)
	}

	n := nextPow2(uint32(nents))
	for int(n)*numCores < requested {
		n *= 2
	}
	return n
}

// minSlotCapacity is the smallest power-of-two entry count whose ring
// occupies at least one L1 cache line, per spec.md §3:
// "size >= L1_cache_line_bytes / (4 + sizeof(ref)) rounded up to a power
// of two".
func minSlotCapacity() uint32 {
	need := ceilDiv(int(l1CacheLineBytes()), int(refEntryBytes))
	return nextPow2(uint32(need))
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

func nextPow2(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return v + 1
}
