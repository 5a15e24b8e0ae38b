// File: internal/coreid/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concrete api.Affinity implementation over this package's current-CPU
// lookup and NUMA pinning primitives (SPEC_FULL.md [AFFINITY]).

package coreid

import (
	"fmt"
)

// Affinity adapts Current/PinCurrentThread/UnpinCurrentThread to the
// api.Affinity contract. Construct it with NewAffinity: a zero Affinity
// reports node 0 rather than -1 from Get before any Pin, and CPU 0.
//
// Note: there is no api.Affinity compile-time assertion for this type.
// api imports objpool, which imports this package, so importing api here
// would create an import cycle.
type Affinity struct {
	numCores int
	pinned   bool
	node     int
}

// NewAffinity returns an Affinity scoped to numCores logical CPUs.
func NewAffinity(numCores int) *Affinity {
	return &Affinity{numCores: numCores, node: -1}
}

// Pin binds the calling OS thread to numaID via libnuma where available.
// cpuID is advisory only: this package has no per-CPU pinning primitive,
// only per-NUMA-node (matching the teacher's own pin_linux.go, which pins
// by node).
func (a *Affinity) Pin(cpuID int, numaID int) error {
	if err := PinCurrentThread(numaID); err != nil {
		return fmt.Errorf("coreid: pin: %w", err)
	}
	a.pinned = true
	a.node = numaID
	return nil
}

// Unpin releases a thread pinned via Pin. A no-op if not pinned.
func (a *Affinity) Unpin() error {
	if !a.pinned {
		return nil
	}
	UnpinCurrentThread()
	a.pinned = false
	a.node = -1
	return nil
}

// Get returns the caller's current logical CPU (best-effort) and the NUMA
// node this Affinity last pinned to, or -1 if unpinned.
func (a *Affinity) Get() (cpuID int, numaID int, err error) {
	return Current(a.numCores), a.node, nil
}
