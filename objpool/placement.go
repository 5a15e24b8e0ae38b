// File: objpool/placement.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot allocation and NUMA placement (spec.md §4.2 "Placement"), via
// first-touch placement: on the paged path, the slot's bookkeeping and, if
// embedding, its backing object array are allocated while the initializing
// goroutine is pinned to node (core mod node count), so the Linux page
// allocator places the pages locally. Pinning happens only on the paged
// path (AllocMaySleep and a first slot of at least pageSize bytes) and only
// in linux+cgo builds; otherwise slots are allocated wherever the caller
// runs, with no node placement.

package objpool

import (
	"go.uber.org/zap"

	"github.com/momentics/objpool/internal/coreid"
)

// pageSize approximates the platform page size for the large/paged vs.
// small/atomic allocator decision in spec.md §4.2. 4096 covers the
// overwhelming majority of Linux and Windows deployments; getting this
// slightly wrong only affects which allocator path is taken (and so
// whether NUMA pinning is attempted), never correctness.
const pageSize = 4096

// allocateSlots builds numCores slots of the given ring capacity and, if
// embed is true, pre-allocates backing storage for embedCount objects of T
// total, round-robin distributed so slot i holds
// ceilDiv(embedCount, numCores) or one fewer (spec.md's "Embedded
// (objsz > 0, no user buffer)" mode — the embedded object count is
// `requested`, independent of the ring's power-of-two/cache-line-rounded
// capacity). Also returns whether the paged path was chosen; Init records
// it as Stats.UsedPagedAlloc, and Fini does not consult it.
func allocateSlots[T any](perSlotCap uint32, numCores int, flags AllocFlags, embed bool, embedCount int, log *zap.SugaredLogger, metrics *Metrics) ([]*slot[T], []embedRegion[T], bool, error) {
	firstSlotBytes := uintptr(perSlotCap) * refEntryBytes
	usePaged := flags == AllocMaySleep && firstSlotBytes >= pageSize

	numaNodes := coreid.NewNUMAAllocator().Nodes()
	if numaNodes <= 0 {
		numaNodes = 1
	}

	slots := make([]*slot[T], 0, numCores)
	regions := make([]embedRegion[T], 0, numCores)

	for core := 0; core < numCores; core++ {
		node := core % numaNodes
		if usePaged {
			if err := coreid.PinCurrentThread(node); err != nil {
				log.Debugw("objpool: numa pin failed, continuing unpinned", "node", node, "err", err)
			}
		}

		if perSlotCap == 0 {
			if usePaged {
				coreid.UnpinCurrentThread()
			}
			releaseSlots(slots)
			return nil, nil, usePaged, wrapErr("Init", ErrOutOfMemory, "core", core, "reason", "zero-capacity slot")
		}
		s := newSlot[T](perSlotCap)
		s.assert = func(msg string, kv ...any) {
			log.DPanicw(msg, kv...)
		}
		s.onAbandon = metrics.observeSlotAbandon
		slots = append(slots, s)

		var region embedRegion[T]
		if embed {
			n := embedCount / numCores
			if core < embedCount%numCores {
				n++
			}
			if n > 0 {
				region.storage = make([]T, n)
				s.embedBase = pointerToUintptr(&region.storage[0])
				s.embedLen = uintptr(len(region.storage))
			}
		}
		regions = append(regions, region)

		if usePaged {
			coreid.UnpinCurrentThread()
		}
	}
	return slots, regions, usePaged, nil
}

func releaseSlots[T any](slots []*slot[T]) {
	// Slots hold no non-GC resources in this implementation (no cgo
	// handles, no mmap regions) — letting the slice go out of scope is
	// sufficient. This function exists as the named hook spec.md §7
	// requires ("on partial failure, releases any slots already
	// allocated"), and as the place a future raw-mmap backend would plug
	// real unmap calls into.
	_ = slots
}

// scatterEmbedded distributes this pool's pre-allocated embedded objects
// round-robin across slots: object k goes to slot k mod numCores
// (spec.md §4.2 "Scatter on initialization"). Must run before the pool is
// exposed to concurrent callers.
func (p *Pool[T]) scatterEmbedded() {
	for core, region := range p.embedRegions {
		s := p.slots[core]
		for i := range region.storage {
			s.addUnconditional(&region.storage[i])
		}
	}
}

func (flags AllocFlags) String() string {
	if flags == AllocMaySleep {
		return "may-sleep"
	}
	return "atomic"
}
