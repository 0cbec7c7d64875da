package pent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickShapes(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		shapes := pickShapes(r, TriplicationShapes)
		require.Len(t, shapes, TriplicationShapes)

		last := -1
		for _, letter := range shapes {
			i := shapeIndex(letter)
			require.Greater(t, i, last, "shapes must come out in catalogue order")
			last = i
		}
	}
}

func TestGenerateTriplicationOptions(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	_, err := GenerateTriplication(r, GenerateOptions{MaxAttempts: 0, MaxNodes: 100})
	assert.Error(t, err)
	_, err = GenerateTriplication(r, GenerateOptions{MaxAttempts: 10, MaxNodes: 0})
	assert.Error(t, err)
}

func TestGenerateTriplication(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	r := rand.New(rand.NewPCG(42, 7))
	puzzle, err := GenerateTriplication(r, DefaultGenerateOptions())
	require.NoError(t, err)

	assert.True(t, ValidLetter(puzzle.Target))
	assert.Equal(t, 45, puzzle.Region.Size())
	require.Len(t, puzzle.Shapes, TriplicationShapes)

	// the generator only hands out instances it has already solved
	solved, conclusive, err := probe(puzzle.Region, puzzle.Shapes, nil, DefaultGenerateOptions().MaxNodes)
	require.NoError(t, err)
	assert.True(t, conclusive)
	assert.True(t, solved)
}
