// Package objpool implements a scalable, lock-free, multi-producer/
// multi-consumer object pool: a fixed set of pre-allocated objects
// distributed across per-core ring-array slots, supporting lock-free Push
// (wait-free under the unconditional policy, a CAS retry loop under the
// bounded one) and bounded-retry Pop from arbitrary execution contexts, including
// contexts that may preempt another Push/Pop on the same core.
//
// The pool does not preserve push/pop order or fairness across callers,
// does not grow or shrink after Init, and does not free individual object
// memory before Fini. See SPEC_FULL.md for the full module map.
package objpool
