package pent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumeratePlacements(t *testing.T) {
	t.Parallel()

	three, err := NewRect(3, 3)
	require.NoError(t, err)
	xs, err := EnumeratePlacements(three, 'X')
	require.NoError(t, err)
	assert.Len(t, xs, 1, "X fits a 3x3 exactly one way")

	board, err := NewRect(6, 10)
	require.NoError(t, err)
	is, err := EnumeratePlacements(board, 'I')
	require.NoError(t, err)
	// 6*6 horizontal + 2*10 vertical
	assert.Len(t, is, 56)

	for _, p := range is {
		assert.Equal(t, "I", p.Shape())
		for _, c := range p.Cells {
			assert.True(t, board.Contains(c))
		}
	}
}

func TestEnumeratePlacementsMasked(t *testing.T) {
	t.Parallel()

	base, err := BaseCells('X')
	require.NoError(t, err)
	rg, err := NewMask(base)
	require.NoError(t, err)

	xs, err := EnumeratePlacements(rg, 'X')
	require.NoError(t, err)
	assert.Len(t, xs, 1)

	is, err := EnumeratePlacements(rg, 'I')
	require.NoError(t, err)
	assert.Empty(t, is, "no straight line of five inside an X mask")
}

func TestAllPlacementsOrder(t *testing.T) {
	t.Parallel()

	rg, err := NewRect(6, 10)
	require.NoError(t, err)
	all, err := AllPlacements(rg, []byte(Letters))
	require.NoError(t, err)
	require.NotEmpty(t, all)

	// placements group by shape in catalogue order
	last := 0
	for _, p := range all {
		i := shapeIndex(p.Letter)
		require.GreaterOrEqual(t, i, last)
		last = i
	}
}

func TestPlacementOverlaps(t *testing.T) {
	t.Parallel()

	a := Placement{Letter: 'I', Cells: []Cell{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}}
	b := Placement{Letter: 'L', Cells: []Cell{{0, 4}, {1, 4}, {2, 4}, {3, 4}, {3, 3}}}
	c := Placement{Letter: 'L', Cells: []Cell{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {4, 1}}}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestEnumeratePlacements3(t *testing.T) {
	t.Parallel()

	// a 1x1x5 tube admits exactly one I placement
	is, err := EnumeratePlacements3(1, 1, 5, 'I')
	require.NoError(t, err)
	assert.Len(t, is, 1)
	assert.Equal(t, "I", is[0].Shape())

	xs, err := EnumeratePlacements3(1, 1, 5, 'X')
	require.NoError(t, err)
	assert.Empty(t, xs)
}
