package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentolab/pentomino-server/internal/protocol"
)

func TestParseCreatePuzzleDTO(t *testing.T) {
	t.Parallel()

	query, err := url.ParseQuery("type=rect&rows=6&cols=10&ignored=1")
	require.NoError(t, err)
	dto, err := ParseCreatePuzzleDTO(query)
	require.NoError(t, err)
	assert.Equal(t, CreatePuzzleDTO{Type: "rect", Rows: 6, Cols: 10}, dto)

	query, err = url.ParseQuery("rows=6&cols=10")
	require.NoError(t, err)
	_, err = ParseCreatePuzzleDTO(query)
	assert.Error(t, err, "type is required")

	query, err = url.ParseQuery("type=box&x=3&y=4&z=5")
	require.NoError(t, err)
	dto, err = ParseCreatePuzzleDTO(query)
	require.NoError(t, err)
	assert.Equal(t, CreatePuzzleDTO{Type: "box", X: 3, Y: 4, Z: 5}, dto)
}

func TestCanAppendBoard(t *testing.T) {
	t.Parallel()

	board, _, err := protocol.BuildInstance(protocol.RegionSpec{Type: "rect", Rows: 6, Cols: 10})
	require.NoError(t, err)

	require.True(t, canAppend(board, nil, nil, 0))
	assert.False(t, canAppend(board, nil, nil, -1))
	assert.False(t, canAppend(board, nil, nil, len(board.Placements)))

	// ids 0 and 1 both place the first catalogue shape
	assert.False(t, canAppend(board, nil, []int{0}, 0))
	assert.False(t, canAppend(board, nil, []int{0}, 1))
}

func TestCanAppendBox(t *testing.T) {
	t.Parallel()

	_, box, err := protocol.BuildInstance(protocol.RegionSpec{Type: "box", X: 3, Y: 4, Z: 5})
	require.NoError(t, err)

	require.True(t, canAppend(nil, box, nil, 0))
	assert.False(t, canAppend(nil, box, nil, box.Rows()))
	assert.False(t, canAppend(nil, box, []int{0}, 0))

	assert.False(t, boxSolved(box, nil))
	assert.False(t, boxSolved(box, []int{0}))
}
