// File: objpool/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free MPMC ring with epoch-tagged entries (SPEC_FULL.md [SLOT],
// spec.md §4.1). This is the ≈40% of the system where every correctness
// property lives: ABA-freedom, bounded retries, and safety against a
// pusher preempted between reserving a ticket and publishing it.
//
// Ages and entries are padded apart from head/tail so that a hot pusher on
// one core never bounces the cache line a hot popper on another core is
// reading, following the cache-line isolation idiom the teacher applies to
// its own ring (internal/concurrency/ring.go) and that
// codeberg.org/gruf/go-mempool applies to its pool header via
// unsafe.Sizeof(cpu.CacheLinePad{}).

package objpool

import (
	"sync/atomic"
)

// slot is a fixed-capacity, power-of-two-sized MPMC ring of *T entries,
// each shadowed by a monotone epoch tag. size/mask/ages/ents never change
// after newSlot returns; only head, tail, and the atomic cells they guard
// are mutated for the slot's lifetime.
type slot[T any] struct {
	head atomic.Uint32
	_    cacheLinePad

	tail atomic.Uint32
	_    cacheLinePad

	size uint32
	mask uint32

	ages []atomic.Uint32
	ents []atomic.Pointer[T]

	// embedBase/embedLen record the address range of this slot's
	// pool-allocated backing storage, used by fini to classify drained
	// references as embedded vs. external (spec.md §4.4).
	embedBase uintptr
	embedLen  uintptr

	spinAbandoned atomic.Uint64 // count of pops that abandoned this slot (§4.1 step 2c)

	// assert reports a diagnostic-assertion failure (spec.md §7: "a null
	// reference encountered at a ready position"). Defaults to a no-op so
	// slots built without a pool (e.g. in unit tests) stay usable; Pool
	// wires its zap logger's DPanicw in, which aborts in a development
	// logger config and is silent in production — the debug/release split
	// spec.md asks for.
	assert func(msg string, kv ...any)

	// onAbandon, if set, is called each time tryGet abandons this slot
	// instead of spinning. Pool wires this to its Metrics counter.
	onAbandon func()
}

// newSlot allocates a slot with capacity size (must be a power of two).
// head and tail start at size, not zero, per spec.md invariant 4: this
// makes the first epoch tag a push ever writes (size) differ from the
// zero value ages starts with, so no pop can observe a position as ready
// before any push has happened there.
func newSlot[T any](size uint32) *slot[T] {
	if size == 0 || size&(size-1) != 0 {
		panic("objpool: slot size must be a power of two")
	}
	s := &slot[T]{
		size: size,
		mask: size - 1,
		ages: make([]atomic.Uint32, size),
		ents: make([]atomic.Pointer[T], size),
	}
	s.head.Store(size)
	s.tail.Store(size)
	s.assert = func(string, ...any) {}
	s.onAbandon = func() {}
	return s
}

// addUnconditional is the guaranteed-add push primitive (spec.md §4.1,
// "Push (unconditional)"), used when the pool's total capacity is known to
// exceed the working set so every slot always has room. It never fails.
func (s *slot[T]) addUnconditional(ref *T) {
	t := s.tail.Add(1) - 1 // fetch-and-increment, t is the pre-increment ticket
	s.ents[t&s.mask].Store(ref)
	s.ages[t&s.mask].Store(t) // release-store: publishes ents[t&mask] to pop's acquire-load
}

// tryAdd is the bounded push primitive (spec.md §4.1, "Push (bounded)"),
// used when the pool may be full. Returns ErrNotFound if this slot is full
// at the moment of the attempt; callers retry on the next slot.
func (s *slot[T]) tryAdd(ref *T) error {
	for {
		h := s.head.Load()
		t := s.tail.Load()
		if t-h >= s.size {
			return ErrNotFound
		}
		if s.tail.CompareAndSwap(t, t+1) {
			s.ents[t&s.mask].Store(ref)
			s.ages[t&s.mask].Store(t)
			return nil
		}
	}
}

// tryGet is the pop primitive (spec.md §4.1, "Pop"). It returns (ref, true)
// on success, or (nil, false) if the slot is empty or if a concurrent push
// appears to have reserved this position but not yet published it — in
// which case the caller abandons this slot and the cross-core search moves
// on, rather than spinning (spec.md §4.6/"NMI-safe pop" scenario).
func (s *slot[T]) tryGet() (*T, bool) {
	h := s.head.Load()
	for h != s.tail.Load() {
		i := h & s.mask
		if s.ages[i].Load() == h {
			ref := s.ents[i].Load()
			if s.head.CompareAndSwap(h, h+1) {
				if ref == nil {
					s.assert("objpool: nil reference at ready position", "index", i, "head", h)
					h++
					continue
				}
				return ref, true
			}
		}
		// Either the entry at i wasn't ready yet, or we lost the CAS race
		// to another popper. Reload head: if it hasn't advanced since our
		// last observation, this position is held by an in-flight push
		// that reserved its ticket but has not yet published the entry —
		// abandon this slot rather than spin (this is the branch that
		// makes pop safe to preempt: a pusher stalled here blocks only
		// this one ring position, never the slot or the pool).
		newH := s.head.Load()
		if newH == h {
			s.spinAbandoned.Add(1)
			s.onAbandon()
			return nil, false
		}
		h = newH
	}
	return nil, false
}

// occupancy returns tail-head, the slot's current live element count.
func (s *slot[T]) occupancy() uint32 {
	return s.tail.Load() - s.head.Load()
}
