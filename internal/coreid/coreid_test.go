package coreid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStaysWithinBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := Current(7)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 7)
	}
}

func TestCurrentZeroCoresReturnsZero(t *testing.T) {
	assert.Equal(t, 0, Current(0))
}

func TestFallbackAllocatorRoundTrip(t *testing.T) {
	a := fallbackAllocator{}
	buf, err := a.Alloc(128, -1)
	assert.NoError(t, err)
	assert.Len(t, buf, 128)
	assert.Equal(t, 1, a.Nodes())
	a.Free(buf, -1)
}

func TestAffinityGetReportsUnpinnedNode(t *testing.T) {
	a := NewAffinity(4)
	_, node, err := a.Get()
	assert.NoError(t, err)
	assert.Equal(t, -1, node)
}
