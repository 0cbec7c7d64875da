package pent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRect(t *testing.T) {
	t.Parallel()

	rg, err := NewRect(6, 10)
	require.NoError(t, err)
	assert.Equal(t, 60, rg.Size())
	assert.False(t, rg.Masked)
	assert.True(t, rg.Contains(Cell{5, 9}))
	assert.False(t, rg.Contains(Cell{6, 0}))
	assert.Equal(t, -1, rg.CellIndex(Cell{-1, 0}))

	_, err = NewRect(0, 10)
	assert.Error(t, err)
}

func TestRectScanOrder(t *testing.T) {
	t.Parallel()

	// wider than tall scans column-major
	wide, err := NewRect(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}}, wide.Cells())

	tall, err := NewRect(3, 2)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}, tall.Cells())
}

func TestNewMask(t *testing.T) {
	t.Parallel()

	rg, err := NewMask([]Cell{{1, 1}, {0, 1}, {1, 0}})
	require.NoError(t, err)
	assert.Equal(t, 3, rg.Size())
	assert.True(t, rg.Masked)
	assert.Equal(t, 2, rg.Rows)
	assert.Equal(t, 2, rg.Cols)
	assert.False(t, rg.Contains(Cell{0, 0}))
	// sorted scan order
	assert.Equal(t, []Cell{{0, 1}, {1, 0}, {1, 1}}, rg.Cells())

	_, err = NewMask(nil)
	assert.Error(t, err)
	_, err = NewMask([]Cell{{0, 0}, {0, 0}})
	assert.Error(t, err)
	_, err = NewMask([]Cell{{-1, 0}})
	assert.Error(t, err)
}

func TestTriplication(t *testing.T) {
	t.Parallel()

	for i := range Letters {
		rg, err := Triplication(Letters[i])
		require.NoError(t, err)
		assert.Equal(t, 45, rg.Size(), "shape %s", string(Letters[i]))
	}

	// every base cell becomes a full 3x3 block
	rg, err := Triplication('I')
	require.NoError(t, err)
	assert.Equal(t, 3, rg.Rows)
	assert.Equal(t, 15, rg.Cols)
	for r := range 3 {
		for c := range 15 {
			assert.True(t, rg.Contains(Cell{r, c}))
		}
	}
}
