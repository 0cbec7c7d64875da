package pent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xBoard(t *testing.T) *Board {
	t.Helper()
	board, err := NewBoard(xMask(t), []byte("X"))
	require.NoError(t, err)
	return board
}

func TestNewBoard(t *testing.T) {
	t.Parallel()

	board, err := NewRectBoard(6, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte(Letters), board.Shapes)
	require.NotEmpty(t, board.Placements)

	for id, p := range board.Placements {
		got, ok := board.IDOf(p)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}

	_, err = board.Placement(-1)
	assert.Error(t, err)
	_, err = board.Placement(len(board.Placements))
	assert.Error(t, err)
}

func TestNewBoardValidation(t *testing.T) {
	t.Parallel()

	rg, err := NewMask([]Cell{{0, 0}, {0, 1}, {0, 2}})
	require.NoError(t, err)
	_, err = NewBoard(rg, nil)
	assert.Error(t, err, "region size must be a multiple of five")

	big, err := NewRect(6, 10)
	require.NoError(t, err)
	_, err = NewBoard(big, []byte("XI"))
	assert.Error(t, err, "two shapes cannot cover sixty cells")

	_, err = NewBoard(big, []byte("XX"))
	assert.Error(t, err)
	_, err = NewBoard(big, []byte("Q"))
	assert.Error(t, err)
}

func TestBoardSolve(t *testing.T) {
	t.Parallel()

	board := xBoard(t)
	require.Len(t, board.Placements, 1)

	solutions, err := board.Solve(nil, 5)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0}}, solutions)

	assert.True(t, board.Solved([]int{0}))
	assert.False(t, board.Solved(nil))
	assert.False(t, board.Solved([]int{0, 0}))
}

func TestBoardSolveBadPrefix(t *testing.T) {
	t.Parallel()

	board := xBoard(t)

	solutions, err := board.Solve([]int{99}, 1)
	require.NoError(t, err)
	assert.Nil(t, solutions)

	count, err := board.CountSolutions([]int{99}, 10)
	require.NoError(t, err)
	assert.Equal(t, SolutionCount{Count: 0, Complete: true}, count)
}

func TestBoardHint(t *testing.T) {
	t.Parallel()

	board := xBoard(t)

	p, id, ok := board.Hint(nil)
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Equal(t, "X", p.Shape())

	// a solved board has nothing left to suggest
	_, _, ok = board.Hint([]int{0})
	assert.False(t, ok)
}

func TestBoardTrace(t *testing.T) {
	t.Parallel()

	board := xBoard(t)

	solutions, trace, noResult, err := board.SolveWithTrace(nil, 1, 10)
	require.NoError(t, err)
	assert.False(t, noResult)
	require.Equal(t, [][]int{{0}}, solutions)
	require.Len(t, trace, 1)
	assert.Equal(t, TracePlace, trace[0].Kind)
}
