package pent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxModel(t *testing.T) {
	t.Parallel()

	m, err := NewBoxModel(3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 72, m.Columns(), "60 voxels plus 12 shape slots")
	assert.Positive(t, m.Rows())
	assert.Len(t, m.Placements, m.Rows())

	for id := range m.Rows() {
		p, err := m.Placement(id)
		require.NoError(t, err)
		assert.Len(t, p.Cells, ShapeSize)
	}

	_, err = m.Placement(-1)
	assert.Error(t, err)
	_, err = m.Placement(m.Rows())
	assert.Error(t, err)
}

func TestNewBoxModelRejectsBadVolumes(t *testing.T) {
	t.Parallel()

	_, err := NewBoxModel(0, 4, 5)
	assert.Error(t, err)
	_, err = NewBoxModel(2, 5, 5)
	assert.Error(t, err)
	_, err = NewBoxModel(1, 1, 60)
	require.NoError(t, err, "volume is all that matters to the model")
}

func TestBoxInconsistentPrefix(t *testing.T) {
	t.Parallel()

	m, err := NewBoxModel(3, 4, 5)
	require.NoError(t, err)

	solutions, err := m.Solve([]int{0, 0}, 1)
	require.NoError(t, err)
	assert.Nil(t, solutions)

	solutions, err = m.Solve([]int{-1}, 1)
	require.NoError(t, err)
	assert.Nil(t, solutions)

	_, err = m.Solve(nil, 0)
	assert.Error(t, err)
}

func TestBoxSolve(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	m, err := NewBoxModel(3, 4, 5)
	require.NoError(t, err)

	solutions, err := m.Solve(nil, 1)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	require.Len(t, solutions[0], len(Letters))

	voxels := make(map[Cell3]bool)
	shapes := make(map[string]bool)
	for _, id := range solutions[0] {
		p, err := m.Placement(id)
		require.NoError(t, err)
		assert.False(t, shapes[p.Shape()], "shape %s used twice", p.Shape())
		shapes[p.Shape()] = true
		for _, c := range p.Cells {
			assert.False(t, voxels[c])
			voxels[c] = true
		}
	}
	assert.Len(t, voxels, 60)
}

func TestBoxSolveWithPrefix(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	m, err := NewBoxModel(3, 4, 5)
	require.NoError(t, err)

	full, err := m.Solve(nil, 1)
	require.NoError(t, err)
	require.Len(t, full, 1)

	// re-solving from a committed placement finds it again
	prefix := full[0][:1]
	solutions, err := m.Solve(prefix, 1)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Contains(t, solutions[0], prefix[0])
}

func TestBoxHint(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	m, err := NewBoxModel(3, 4, 5)
	require.NoError(t, err)

	p, id, ok := m.Hint(nil)
	require.True(t, ok)
	assert.Len(t, p.Cells, ShapeSize)

	next, nextId, ok := m.Hint([]int{id})
	require.True(t, ok)
	assert.NotEqual(t, id, nextId)
	assert.NotEqual(t, p.Shape(), next.Shape())
}

func TestBoxTraceOverflow(t *testing.T) {
	t.Parallel()

	m, err := NewBoxModel(3, 4, 5)
	require.NoError(t, err)

	solutions, trace, noResult, err := m.SolveWithTrace(nil, 1, 1)
	require.NoError(t, err)
	assert.True(t, noResult)
	assert.Nil(t, solutions)
	assert.Nil(t, trace)
}
