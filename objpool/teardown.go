// File: objpool/teardown.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fini (spec.md §4.4 "Teardown"): drains every slot via the same pop
// primitive used at steady state, classifies each drained reference by
// address-range tests, invokes the caller's release callback, then frees
// per-slot bookkeeping. Never fails; safe on a partially-initialized pool;
// a second call is a no-op (spec.md §4.6).

package objpool

// ReleaseFunc is the per-object/per-buffer teardown callback from
// spec.md §6, matching objpool_fini's release(context, obj, user, element)
// contract in original_source/scalable/inc/rs.h: isExternal ("user" there)
// is true only for references that arrived via AddScattered — embedded
// objects and bulk-buffer elements are both pool/buffer-managed and report
// isExternal=false. isElement is true for individual objects and false for
// the single call reporting the bulk buffer as a whole (which always
// reports isExternal=true, regardless of how its elements were classified).
type ReleaseFunc[T any] func(ref *T, isExternal, isElement bool)

// Fini drains and tears down the pool, invoking release once per object
// plus, if a bulk buffer was ever recorded via Populate, exactly one more
// time for the buffer itself (property P4).
func (p *Pool[T]) Fini(release ReleaseFunc[T]) {
	if p == nil || !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.log.Debugw("objpool: tearing down", "numCores", p.numCores)

	for _, s := range p.slots {
		for {
			ref, ok := s.tryGet()
			if !ok {
				break
			}
			if release != nil {
				kind := p.classify(ref)
				release(ref, kind == kindExternal, true)
			}
		}
	}

	if release != nil && p.userBufSet && len(p.userBuf) > 0 {
		release(&p.userBuf[0], true, false)
	}

	p.slots = nil
	p.embedRegions = nil
	p.userBuf = nil
}

// classify determines whether ref is embedded-in-slot, in-bulk-buffer, or
// external, by address-range membership against the regions Init and
// Populate recorded — the teardown classification spec.md §4.4 specifies.
func (p *Pool[T]) classify(ref *T) releaseKind {
	for _, r := range p.embedRegions {
		if r.contains(ref) {
			return kindEmbedded
		}
	}
	if p.userBufSet && bufferContains(p.userBuf, ref) {
		return kindBulkBuffer
	}
	return kindExternal
}

func bufferContains[T any](buf []T, ref *T) bool {
	if len(buf) == 0 {
		return false
	}
	lo := pointerToUintptr(&buf[0])
	hi := pointerToUintptr(&buf[len(buf)-1])
	addr := pointerToUintptr(ref)
	return addr >= lo && addr <= hi
}
