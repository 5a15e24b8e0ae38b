// File: objpool/head.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The pool head (SPEC_FULL.md [HEAD], spec.md §3 "Pool head" / §4.2):
// owns the per-core slot table, sizing/placement decisions, and the
// bookkeeping Fini needs to classify drained references.

package objpool

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/objpool/internal/coreid"
)

// AllocFlags records whether the caller tolerates a sleeping allocator,
// mirroring the kernel GFP_ATOMIC/GFP_KERNEL distinction spec.md §5
// describes: Init/Populate/AddScattered may allocate and are restricted to
// contexts that permit it, while Push/Pop never allocate regardless of
// this flag.
type AllocFlags uint8

const (
	// AllocAtomic forbids sleeping allocators; used when Init is called
	// from a context that cannot block (interrupt-like call sites).
	AllocAtomic AllocFlags = 0
	// AllocMaySleep permits the NUMA-aware, potentially blocking
	// allocator for slot and embedded-object storage.
	AllocMaySleep AllocFlags = 1
)

type pushPolicy uint8

const (
	policyUnconditional pushPolicy = iota
	policyBounded
)

// releaseKind tags how a drained reference was produced, matching the
// release callback contract in spec.md §6.
type releaseKind uint8

const (
	kindEmbedded releaseKind = iota
	kindBulkBuffer
	kindExternal
)

// Pool is a lock-free MPMC object pool of *T references, scattered across
// numCores per-core ring slots.
type Pool[T any] struct {
	requested      int
	perSlotCap     uint32
	numCores       int
	asym           int
	allocFlags     AllocFlags
	policy         pushPolicy
	usedPagedAlloc bool

	slots []*slot[T]

	mu            sync.Mutex // guards population bookkeeping only, never the hot path
	embedRegions  []embedRegion[T]
	userBuf       []T
	userStride    int
	userBufSet    bool
	scatterCursor int

	metrics *Metrics
	log     *zap.SugaredLogger

	closed atomic.Bool
}

// embedRegion records one slot's pool-allocated backing array, so Fini can
// classify a drained *T as embedded by pointer-range membership.
type embedRegion[T any] struct {
	storage []T
}

func (r embedRegion[T]) contains(ref *T) bool {
	return bufferContains(r.storage, ref)
}

// Options configure an Init call beyond the mandatory count/asym/allocFlags
// triple, following the teacher's preference for small functional-option
// structs over long positional parameter lists.
type Options struct {
	// Embed, when true, makes Init itself pre-allocate `count` objects of
	// type T (one per spec.md's "objsz > 0" embedded mode) and scatter
	// them across slots before returning.
	Embed bool
	// Logger receives structured diagnostics; defaults to zap.NewNop().
	Logger *zap.SugaredLogger
	// Metrics receives spin/retry counters; nil disables metrics entirely.
	Metrics *Metrics
}

// Init creates a pool sized for `requested` objects across numCores slots.
// asym selects the balance mode (Balanced, SingleCore, or N for "any N
// cores together hold the set"). See spec.md §6 for the full contract.
func Init[T any](requested int, numCores int, asym int, allocFlags AllocFlags, opts Options) (*Pool[T], error) {
	if numCores <= 0 {
		numCores = 1
	}
	if numCores > maxCores {
		return nil, wrapErr("Init", ErrUnsupported, "numCores", numCores)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	perSlotCap := computePerSlotCapacity(requested, asym, numCores)

	p := &Pool[T]{
		requested:  requested,
		perSlotCap: perSlotCap,
		numCores:   numCores,
		asym:       asym,
		allocFlags: allocFlags,
		metrics:    opts.Metrics,
		log:        logger,
	}
	if requested > int(perSlotCap) {
		p.policy = policyBounded
	} else {
		p.policy = policyUnconditional
	}

	slots, regions, paged, err := allocateSlots[T](perSlotCap, numCores, allocFlags, opts.Embed, requested, logger, opts.Metrics)
	if err != nil {
		// Partial failure: allocateSlots has already released whatever it
		// allocated (releaseSlots) before returning the error (spec.md §7
		// "init: ... on partial failure, releases any slots already
		// allocated").
		return nil, wrapErr("Init", err)
	}
	p.slots = slots
	p.embedRegions = regions
	p.usedPagedAlloc = paged

	if opts.Embed {
		p.scatterEmbedded()
	}
	logger.Debugw("objpool: initialized", "requested", requested, "numCores", numCores,
		"perSlotCap", perSlotCap, "policy", p.policy, "pagedAlloc", p.usedPagedAlloc)
	return p, nil
}

// currentCoreIndex returns the cross-core search starting point for this
// call, per spec.md §4.2's "start from the caller's current core" rule.
func (p *Pool[T]) currentCoreIndex() int {
	return coreid.Current(p.numCores)
}

// Stats mirrors spec.md §3's pool-head fields for introspection, following
// the teacher's BufferPool.Stats() convention.
type Stats struct {
	Requested      int
	PerSlotCap     uint32
	NumCores       int
	Asym           int
	AllocFlags     AllocFlags
	UsedPagedAlloc bool
	InUserBuffer   bool
	Occupancy      int
}

// Stats reports the pool's static configuration and current occupancy.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Requested:      p.requested,
		PerSlotCap:     p.perSlotCap,
		NumCores:       p.numCores,
		Asym:           p.asym,
		AllocFlags:     p.allocFlags,
		UsedPagedAlloc: p.usedPagedAlloc,
		InUserBuffer:   p.userBufSet,
		Occupancy:      p.Occupancy(),
	}
}
