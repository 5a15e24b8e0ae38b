package objpool

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	id int
}

// TestScatterAndDrain is the spec's scenario 1: num_cores=4, count=16,
// asym=0. Every slot should end up with exactly 4 objects, and 16
// successive pops return 16 distinct references before the 17th is empty.
func TestScatterAndDrain(t *testing.T) {
	p, err := Init[widget](16, 4, Balanced, AllocAtomic, Options{Embed: true})
	require.NoError(t, err)

	for _, s := range p.slots {
		assert.Equal(t, uint32(4), s.occupancy())
	}

	seen := make(map[*widget]bool)
	for i := 0; i < 16; i++ {
		ref, ok := p.Pop()
		require.True(t, ok, "pop %d should succeed", i)
		assert.False(t, seen[ref], "pop returned a duplicate reference")
		seen[ref] = true
	}
	_, ok := p.Pop()
	assert.False(t, ok, "pop 17 should observe an empty pool")
}

// TestBulkPopulate is the spec's scenario 2.
func TestBulkPopulate(t *testing.T) {
	p, err := Init[byte](0, 2, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)

	buf := make([]byte, 1024)
	n, err := p.Populate(buf, 64, nil)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, uint32(8), p.slots[0].occupancy())
	assert.Equal(t, uint32(8), p.slots[1].occupancy())

	elementCalls, bufferCalls := 0, 0
	p.Fini(func(ref *byte, isExternal, isElement bool) {
		if isElement {
			elementCalls++
			assert.False(t, isExternal, "bulk-buffer elements are pool-managed, not external (original_source/scalable/inc/rs.h objpool_is_inpool)")
		} else {
			bufferCalls++
			assert.True(t, isExternal, "the single buffer-release call always reports user=true")
		}
	})
	assert.Equal(t, 16, elementCalls)
	assert.Equal(t, 1, bufferCalls)
}

// TestAddScattered is the spec's scenario 3: the drain-via-Pop half.
func TestAddScattered(t *testing.T) {
	p, err := Init[widget](0, 2, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)

	refs := make([]*widget, 5)
	for i := range refs {
		refs[i] = &widget{id: i}
		require.NoError(t, p.AddScattered(refs[i]))
	}
	assert.Equal(t, uint32(3), p.slots[0].occupancy())
	assert.Equal(t, uint32(2), p.slots[1].occupancy())

	for i := 0; i < 5; i++ {
		_, ok := p.Pop()
		require.True(t, ok, "pop %d of 5 should succeed", i)
	}
	_, ok := p.Pop()
	assert.False(t, ok)
}

// TestAddScatteredFiniReleasesEveryExternalRef is scenario 3's teardown
// half: fini drains a freshly scattered (not yet popped) pool and invokes
// the release callback once per external reference.
func TestAddScatteredFiniReleasesEveryExternalRef(t *testing.T) {
	p, err := Init[widget](0, 2, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, p.AddScattered(&widget{id: i}))
	}

	calls := 0
	p.Fini(func(ref *widget, isExternal, isElement bool) {
		calls++
		assert.True(t, isExternal)
		assert.True(t, isElement)
	})
	assert.Equal(t, 5, calls)
}

// TestConcurrentChurn is the spec's scenario 4 and property P1: under
// sustained concurrent pop;push churn, occupancy is conserved and no
// release call (checked post-hoc via Fini) reports a duplicate address.
func TestConcurrentChurn(t *testing.T) {
	const numCores = 8
	const count = 32
	p, err := Init[widget](count, numCores, 1, AllocAtomic, Options{Embed: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, int(p.PerSlotCapacity()), count)

	deadline := time.Now().Add(150 * time.Millisecond)
	var wg sync.WaitGroup
	for i := 0; i < numCores; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				ref, ok := p.Pop()
				if !ok {
					continue
				}
				p.Push(ref)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, count, p.Occupancy(), "occupancy must be conserved across interleaved pop/push (P1)")

	seen := make(map[*widget]bool)
	p.Fini(func(ref *widget, isExternal, isElement bool) {
		if !isElement {
			return
		}
		assert.False(t, seen[ref], "fini observed a duplicate address after churn")
		seen[ref] = true
	})
	assert.Equal(t, count, len(seen))
}

// TestFullSlotPushBoundedVariant is the spec's scenario 5: when requested
// exceeds per_slot_capacity, Init selects the bounded push policy, and a
// push against a full slot must retry on another slot rather than fail.
func TestFullSlotPushBoundedVariant(t *testing.T) {
	p, err := Init[widget](16, 2, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)
	require.Equal(t, policyBounded, p.policy)

	// Fill slots[0] to capacity directly and leave slots[1] empty, then
	// push one more: wherever the search starts, it must land in the slot
	// that still has room rather than fail.
	cap0 := p.slots[0]
	for cap0.occupancy() < cap0.size {
		var w widget
		require.NoError(t, cap0.tryAdd(&w))
	}
	extra := &widget{id: 999}
	p.Push(extra) // must land in slots[1], never blocks, never errors

	found := false
	for i := 0; i < int(p.slots[1].size); i++ {
		ref, ok := p.slots[1].tryGet()
		if !ok {
			break
		}
		if ref == extra {
			found = true
		}
	}
	assert.True(t, found, "push against a full slot must succeed on another slot")
}

// TestBoundaryMinimumCapacity is B1: init with count < num_cores * minimum
// still succeeds and yields per_slot_capacity == minimum_slot_capacity.
func TestBoundaryMinimumCapacity(t *testing.T) {
	p, err := Init[widget](1, 4, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)
	assert.Equal(t, minSlotCapacity(), p.PerSlotCapacity())
}

// TestBoundarySingleCoreAsym is B2: asym = SingleCore yields
// per_slot_capacity >= count.
func TestBoundarySingleCoreAsym(t *testing.T) {
	p, err := Init[widget](100, 4, SingleCore, AllocAtomic, Options{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int(p.PerSlotCapacity()), 100)
}

// TestBoundaryEmptyPoolPop is B3: pop on a newly initialized, unpopulated
// pool returns empty in one pass.
func TestBoundaryEmptyPoolPop(t *testing.T) {
	p, err := Init[widget](0, 4, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)
	_, ok := p.Pop()
	assert.False(t, ok)
}

// TestPopulateRejectsBadStride is the reachable half of B4: populate
// refuses a stride that doesn't evenly divide the buffer, or a buffer
// smaller than one stride. (Misaligned-buffer refusal is unreachable for
// []T — see DESIGN.md.)
func TestPopulateRejectsBadStride(t *testing.T) {
	p, err := Init[byte](0, 1, Balanced, AllocAtomic, Options{})
	require.NoError(t, err)

	_, err = p.Populate(make([]byte, 10), 3, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.Populate(make([]byte, 2), 8, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestFiniIsIdempotent exercises spec.md §4.6: a second Fini is a no-op.
func TestFiniIsIdempotent(t *testing.T) {
	p, err := Init[widget](8, 2, Balanced, AllocAtomic, Options{Embed: true})
	require.NoError(t, err)

	calls := 0
	p.Fini(func(*widget, bool, bool) { calls++ })
	assert.Equal(t, 8, calls)

	p.Fini(func(*widget, bool, bool) { calls++ })
	assert.Equal(t, 8, calls, "second Fini must not invoke the release callback again")
}

// recordingHistogram captures Observe calls; every other prometheus.Histogram
// method is left to the nil embedded interface and must not be called.
type recordingHistogram struct {
	prometheus.Histogram
	observed []float64
}

func (h *recordingHistogram) Observe(v float64) { h.observed = append(h.observed, v) }

// TestPopNeverVisitsMoreThanAllSlots is P5's bound for Pop: a single call
// visits at most numCores slots before giving up, as reported through the
// slots-visited metric.
func TestPopNeverVisitsMoreThanAllSlots(t *testing.T) {
	visits := &recordingHistogram{}
	p, err := Init[widget](0, 6, Balanced, AllocAtomic, Options{Metrics: &Metrics{popAttempts: visits}})
	require.NoError(t, err)
	_, ok := p.Pop()
	assert.False(t, ok)
	require.Len(t, visits.observed, 1)
	assert.LessOrEqual(t, visits.observed[0], float64(p.NumCores()))
}
