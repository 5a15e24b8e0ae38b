// File: objpool/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Resolves the Design Notes open question in spec.md: "[the long-spin
// diagnostic] should become a counter/metric rather than a log line."
// Exposed via prometheus/client_golang, the metrics stack already used by
// Aidin1998-finalex and ajitpratap0-nebula in this pack.

package objpool

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects pool-wide counters. A nil *Metrics (the default) makes
// every method a no-op, so instrumentation costs nothing unless a caller
// opts in via Options.Metrics.
type Metrics struct {
	slotAbandon prometheus.Counter
	popAttempts prometheus.Histogram
	pushRetries prometheus.Counter
}

// NewMetrics registers pool counters under reg. Pass a fresh
// prometheus.NewRegistry() per pool instance in tests to avoid duplicate
// registration panics across table-driven subtests.
func NewMetrics(reg prometheus.Registerer, poolName string) *Metrics {
	m := &Metrics{
		slotAbandon: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "objpool_slot_abandoned_total",
			Help:        "pop attempts that abandoned a slot after observing an in-flight, unpublished push",
			ConstLabels: prometheus.Labels{"pool": poolName},
		}),
		popAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "objpool_pop_slots_visited",
			Help:        "number of slots visited by a single Pop call before it returned",
			ConstLabels: prometheus.Labels{"pool": poolName},
			Buckets:     prometheus.LinearBuckets(1, 1, 8),
		}),
		pushRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "objpool_push_cas_retries_total",
			Help:        "CAS retries performed by the bounded push primitive",
			ConstLabels: prometheus.Labels{"pool": poolName},
		}),
	}
	reg.MustRegister(m.slotAbandon, m.popAttempts, m.pushRetries)
	return m
}

func (m *Metrics) observeSlotAbandon() {
	if m == nil {
		return
	}
	m.slotAbandon.Inc()
}

func (m *Metrics) observePopSlotsVisited(n int) {
	if m == nil {
		return
	}
	m.popAttempts.Observe(float64(n))
}

func (m *Metrics) observePushRetry() {
	if m == nil {
		return
	}
	m.pushRetries.Inc()
}
