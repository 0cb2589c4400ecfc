package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSetAddWithinQuota(t *testing.T) {
	s := NewSelectionSet()

	require.NoError(t, s.Add(1, 3))
	require.NoError(t, s.Add(2, 3))
	require.NoError(t, s.Add(3, 3))

	assert.Equal(t, 3, s.Size())
	assert.True(t, s.Contains(2))
	assert.Equal(t, []uint{1, 2, 3}, s.IDs())
}

func TestSelectionSetQuotaExceeded(t *testing.T) {
	s := NewSelectionSet()

	require.NoError(t, s.Add(1, 2))
	require.NoError(t, s.Add(2, 2))

	err := s.Add(3, 2)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 2, s.Size())
	assert.False(t, s.Contains(3))
}

func TestSelectionSetAddIsIdempotent(t *testing.T) {
	s := NewSelectionSet()

	require.NoError(t, s.Add(7, 2))
	require.NoError(t, s.Add(8, 2))

	// Re-adding a member succeeds even when the set is full
	require.NoError(t, s.Add(7, 2))
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, []uint{7, 8}, s.IDs())
}

func TestSelectionSetRemoveFreesQuota(t *testing.T) {
	s := NewSelectionSet()

	require.NoError(t, s.Add(1, 2))
	require.NoError(t, s.Add(2, 2))

	s.Remove(1)
	assert.Equal(t, 1, s.Size())
	assert.False(t, s.Contains(1))

	require.NoError(t, s.Add(3, 2))
	assert.Equal(t, []uint{2, 3}, s.IDs())
}

func TestSelectionSetRemoveAbsentIsNoop(t *testing.T) {
	s := NewSelectionSet()

	require.NoError(t, s.Add(1, 5))
	s.Remove(99)

	assert.Equal(t, 1, s.Size())
	assert.True(t, s.Contains(1))
}

func TestSelectionSetInitializeCollapsesDuplicates(t *testing.T) {
	s := NewSelectionSet()
	s.Initialize([]uint{4, 5, 4, 6, 5})

	assert.Equal(t, 3, s.Size())
	assert.Equal(t, []uint{4, 5, 6}, s.IDs())
}

func TestSelectionSetInitializeReplacesState(t *testing.T) {
	s := NewSelectionSet()
	require.NoError(t, s.Add(1, 10))

	s.Initialize([]uint{8, 9})

	assert.False(t, s.Contains(1))
	assert.Equal(t, []uint{8, 9}, s.IDs())
}

func TestSelectionSetIDsReturnsCopy(t *testing.T) {
	s := NewSelectionSet()
	require.NoError(t, s.Add(1, 5))
	require.NoError(t, s.Add(2, 5))

	ids := s.IDs()
	ids[0] = 42

	assert.Equal(t, []uint{1, 2}, s.IDs())
}
