// File: probe/registrar.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Interface only, for the out-of-scope kernel-probe registration glue
// (SPEC_FULL.md [PROBE-IFACE]): the pool's origin is a kretprobe return-path
// allocator, where an entry probe acquires an object via Pop and the paired
// return probe releases it via Push. This package names that contract so a
// future tracer integration (e.g. an eBPF/kprobe bridge) has somewhere to
// implement against, without pulling any tracing dependency into objpool
// itself.

package probe

// Site identifies one instrumentation point: a function symbol plus
// whether this registration is the entry or return half of the pair.
type Site struct {
	Symbol string
	Return bool
}

// Registrar attaches and detaches probes at runtime, each callback given
// an opaque per-call context token it must pass back unchanged between a
// site's entry and return callbacks, mirroring the correlation the pool's
// kernel origin threads through kretprobe_instance private data.
type Registrar interface {
	// Attach installs cb at site and returns a detach function.
	Attach(site Site, cb func(ctx any)) (detach func(), err error)
	// Sites lists every currently attached site.
	Sites() []Site
}
