package objpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotRejectsNonPowerOfTwo(t *testing.T) {
	for _, size := range []uint32{0, 3, 5, 6, 1000} {
		func() {
			defer func() {
				r := recover()
				assert.NotNil(t, r, "size %d should have panicked", size)
			}()
			newSlot[int](size)
		}()
	}
}

func TestSlotAddUnconditionalThenGet(t *testing.T) {
	s := newSlot[int](8)
	vals := []int{1, 2, 3}
	for i := range vals {
		s.addUnconditional(&vals[i])
	}
	require.Equal(t, uint32(3), s.occupancy())

	for i := range vals {
		ref, ok := s.tryGet()
		require.True(t, ok)
		assert.Equal(t, vals[i], *ref)
	}
	_, ok := s.tryGet()
	assert.False(t, ok, "slot should be empty after draining everything pushed")
}

func TestSlotTryAddRespectsCapacity(t *testing.T) {
	s := newSlot[int](4)
	vals := make([]int, 5)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.tryAdd(&vals[i]))
	}
	err := s.tryAdd(&vals[4])
	assert.ErrorIs(t, err, ErrNotFound, "tryAdd on a full slot should fail with ErrNotFound")
}

func TestSlotTryGetOnEmptySlot(t *testing.T) {
	s := newSlot[int](8)
	_, ok := s.tryGet()
	assert.False(t, ok)
}

// TestSlotEpochPreventsStalePop exercises the ABA-prevention mechanism
// directly: a position's age tag must equal head before tryGet will accept
// it, so draining and refilling a slot never lets tryGet observe a stale
// entry at a position it has already consumed.
func TestSlotEpochPreventsStalePop(t *testing.T) {
	s := newSlot[int](4)
	a, b := 10, 20

	s.addUnconditional(&a)
	ref, ok := s.tryGet()
	require.True(t, ok)
	assert.Equal(t, &a, ref)

	s.addUnconditional(&b)
	ref, ok = s.tryGet()
	require.True(t, ok)
	assert.Equal(t, &b, ref)

	_, ok = s.tryGet()
	assert.False(t, ok)
}
