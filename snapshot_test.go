package ringq //nolint:testpackage // it's OK to be just ringq

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	// Create a queue and overflow it
	q, err := New[int](WithCapacity(5))
	require.NoError(t, err)
	for v := 1; v <= 8; v++ {
		require.NoError(t, q.Push(v))
	}

	// Remove one to mix state
	it := q.Begin().Next()
	_, err = q.Erase(it)
	require.NoError(t, err)

	// Snapshot
	snap := q.Snapshot()
	assert.Equal(t, 5, snap.Capacity)
	assert.Equal(t, []int{4, 6, 7, 8}, snap.Values)

	// Make further modifications
	require.NoError(t, q.Push(9))
	require.NoError(t, q.Push(10))
	assert.Equal(t, []int{4, 6, 7, 8}, snap.Values, "snapshot is a copy")

	// Restore fresh queue from snapshot
	restored, err := NewFromSnapshot(snap, cmp.Less[int])
	require.NoError(t, err)
	assert.Equal(t, 5, restored.Cap())
	assert.Equal(t, snap.Values, slices.Collect(restored.All()))

	// Pushing again should evict from the snapshot state
	require.NoError(t, restored.Push(5))
	require.NoError(t, restored.Push(11))
	assert.Equal(t, []int{5, 6, 7, 8, 11}, slices.Collect(restored.All()))
}

func TestSnapshotCapacityOverridesOption(t *testing.T) {
	snap := &Snapshot[int]{Capacity: 3, Values: []int{1, 2}}

	q, err := NewFromSnapshot(snap, cmp.Less[int], WithCapacity(50))
	require.NoError(t, err)
	assert.Equal(t, 3, q.Cap())
}

func TestSnapshotUnsortedValues(t *testing.T) {
	snap := &Snapshot[int]{Capacity: 4, Values: []int{9, 2, 7}}

	q, err := NewFromSnapshot(snap, cmp.Less[int])
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7, 9}, slices.Collect(q.All()))
}

func TestSnapshotInvalid(t *testing.T) {
	_, err := NewFromSnapshot[int](nil, cmp.Less[int])
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = NewFromSnapshot(&Snapshot[int]{Capacity: 0}, cmp.Less[int])
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = NewFromSnapshot(&Snapshot[int]{Capacity: 1, Values: []int{1, 2}}, cmp.Less[int])
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSnapshotEmpty(t *testing.T) {
	q, err := New[string]()
	require.NoError(t, err)

	snap := q.Snapshot()
	assert.Empty(t, snap.Values)
	assert.Equal(t, DefaultCapacity, snap.Capacity)
}
