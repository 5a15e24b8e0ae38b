// File: objpool/populate.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bulk-buffer and scattered-external population paths (spec.md §4.3,
// "Population paths" 2 and 3). Both run during quiescent, single-threaded
// initialization and use the unconditional add primitive, never racing
// with concurrent Push/Pop per spec.md's contract that these must be
// invoked before the pool goes live.

package objpool

// Populate carves buf into objects of `stride` contiguous elements of T
// each and scatters the resulting references round-robin across slots.
// stride == 1 is the common case (one object per T); stride > 1 lets a
// caller pass a flat []byte buffer (T == byte) and use stride as the
// per-object byte size, matching spec.md's "contiguous aligned buffer,
// word-aligned stride" literally. initCB, if non-nil, is invoked once per
// carved object before it is pushed, mirroring spec.md §6's optional
// init_cb parameter.
//
// Returns ErrInvalidArgument if a buffer is already recorded, stride is
// zero, or len(buf) is not a multiple of stride; ErrNotFound if stride
// exceeds len(buf) so no object fits.
func (p *Pool[T]) Populate(buf []T, stride int, initCB func(*T)) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.userBufSet {
		return 0, wrapErr("Populate", ErrInvalidArgument, "reason", "buffer already set")
	}
	if stride <= 0 {
		return 0, wrapErr("Populate", ErrInvalidArgument, "reason", "stride must be positive")
	}
	if stride > len(buf) {
		return 0, wrapErr("Populate", ErrNotFound, "reason", "no object fits in buffer")
	}
	if len(buf)%stride != 0 {
		return 0, wrapErr("Populate", ErrInvalidArgument, "reason", "len(buf) not a multiple of stride")
	}

	n := len(buf) / stride
	for k := 0; k < n; k++ {
		ref := &buf[k*stride]
		if initCB != nil {
			initCB(ref)
		}
		p.slots[k%p.numCores].addUnconditional(ref)
	}

	p.userBuf = buf
	p.userStride = stride
	p.userBufSet = true
	return n, nil
}

// AddScattered inserts one externally heap-allocated reference, round-robin
// across slots by insertion order. Must be called before the pool is
// exposed to concurrent Push/Pop.
func (p *Pool[T]) AddScattered(ref *T) error {
	if ref == nil {
		return wrapErr("AddScattered", ErrInvalidArgument, "reason", "nil reference")
	}
	p.mu.Lock()
	idx := p.scatterCursor % p.numCores
	p.scatterCursor++
	p.mu.Unlock()

	p.slots[idx].addUnconditional(ref)
	return nil
}
