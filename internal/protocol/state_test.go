package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPuzzleStateRoundTrip(t *testing.T) {
	t.Parallel()

	state := &PuzzleState{
		Region: RegionSpec{Type: "rect", Rows: 6, Cols: 10},
		Prefix: []int{3, 1, 4},
		Solved: false,
	}

	blob, err := state.Bytes()
	require.NoError(t, err)

	got, err := ParsePuzzleState(blob)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	_, err = ParsePuzzleState([]byte("not a gob"))
	assert.Error(t, err)
}
