// File: objpool/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error kinds for the pool's public operations (SPEC_FULL.md [ERRORS]).
// push and pop never surface these: push cannot legitimately fail under
// default sizing and pop signals emptiness through its second return value.

package objpool

import "fmt"

// Sentinel error kinds. Use errors.Is against these, not equality, since
// PoolError wraps them with contextual detail.
var (
	// ErrOutOfMemory is returned by Init on allocation failure.
	ErrOutOfMemory = fmt.Errorf("objpool: out of memory")

	// ErrUnsupported is returned by Init when numCores exceeds the 16-bit
	// field the spec reserves for core count (65536 cores).
	ErrUnsupported = fmt.Errorf("objpool: unsupported configuration")

	// ErrInvalidArgument is returned by Populate and AddScattered for
	// malformed buffers, strides, or references.
	ErrInvalidArgument = fmt.Errorf("objpool: invalid argument")

	// ErrNotFound is returned by Populate when no object fit in the
	// supplied buffer, and by the per-slot bounded push primitive (tryAdd)
	// when that slot is full; Push itself retries on other slots and never
	// returns it.
	ErrNotFound = fmt.Errorf("objpool: not found")
)

// PoolError wraps a sentinel with structured context, following the
// teacher's api.Error{Code,Message,Context} shape (momentics-hioload-ws
// api/errors.go), adapted here to wrap a sentinel via errors.Unwrap instead
// of carrying its own code enum.
type PoolError struct {
	Err     error
	Op      string
	Context map[string]any
}

func (e *PoolError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("objpool: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("objpool: %s: %v (context: %+v)", e.Op, e.Err, e.Context)
}

func (e *PoolError) Unwrap() error { return e.Err }

func wrapErr(op string, err error, kv ...any) *PoolError {
	pe := &PoolError{Err: err, Op: op}
	if len(kv) > 0 {
		pe.Context = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			key, _ := kv[i].(string)
			pe.Context[key] = kv[i+1]
		}
	}
	return pe
}
