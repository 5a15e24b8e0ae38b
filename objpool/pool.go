// File: objpool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Public Push/Pop operations and the cross-core search policy
// (SPEC_FULL.md [OPS], spec.md §4.2 "Cross-core search").

package objpool

import "runtime"

// Push returns ref to the pool. It starts at the caller's current core and
// advances core -> core+1 mod numCores until some slot accepts, spinning
// indefinitely under the unconditional policy (which always succeeds on
// its first attempt once requested <= per_slot_capacity) or retrying the
// bounded CAS primitive under the bounded policy. Push never fails under
// the default sizing contract (spec.md §7) and never blocks on a kernel
// wait or allocates (spec.md §5).
func (p *Pool[T]) Push(ref *T) {
	start := p.currentCoreIndex()
	visited := 0
	for {
		idx := (start + visited) % p.numCores
		s := p.slots[idx]
		switch p.policy {
		case policyUnconditional:
			s.addUnconditional(ref)
			return
		default: // policyBounded
			if err := s.tryAdd(ref); err == nil {
				return
			}
			p.metrics.observePushRetry()
		}
		visited++
		if visited%p.numCores == 0 {
			// Completed a full lap of every slot without success; yield
			// before the next lap instead of burning the core solid.
			runtime.Gosched()
		}
	}
}

// Pop removes and returns a reference from the pool, or (nil, false) if
// every slot is observed empty in one full pass — not an error
// (spec.md §4.6). The search starts at the caller's current core and
// visits every slot at most once.
func (p *Pool[T]) Pop() (*T, bool) {
	start := p.currentCoreIndex()
	for i := 0; i < p.numCores; i++ {
		idx := (start + i) % p.numCores
		if ref, ok := p.slots[idx].tryGet(); ok {
			p.metrics.observePopSlotsVisited(i + 1)
			return ref, true
		}
	}
	p.metrics.observePopSlotsVisited(p.numCores)
	return nil, false
}

// NumCores reports the number of per-core slots backing this pool.
func (p *Pool[T]) NumCores() int { return p.numCores }

// PerSlotCapacity reports the power-of-two entry capacity shared by every
// slot (spec.md §3 invariant 1).
func (p *Pool[T]) PerSlotCapacity() uint32 { return p.perSlotCap }

// Occupancy returns the total number of references currently held across
// all slots, satisfying the bookkeeping side of property P1.
func (p *Pool[T]) Occupancy() int {
	total := 0
	for _, s := range p.slots {
		total += int(s.occupancy())
	}
	return total
}
