package pent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientationCounts(t *testing.T) {
	t.Parallel()

	want := map[byte]int{
		'F': 8, 'I': 2, 'L': 8, 'N': 8, 'P': 8, 'T': 4,
		'U': 4, 'V': 4, 'W': 4, 'X': 1, 'Y': 8, 'Z': 4,
	}

	for i := range Letters {
		letter := Letters[i]
		orients, err := Orientations(letter)
		require.NoError(t, err)
		assert.Len(t, orients, want[letter], "shape %s", string(letter))

		for _, orient := range orients {
			assert.Len(t, orient, ShapeSize)
			seen := make(map[Cell]bool)
			minR, minC := orient[0].R, orient[0].C
			for _, c := range orient {
				assert.False(t, seen[c], "duplicate cell in orientation of %s", string(letter))
				seen[c] = true
				if c.R < minR {
					minR = c.R
				}
				if c.C < minC {
					minC = c.C
				}
			}
			assert.Equal(t, 0, minR)
			assert.Equal(t, 0, minC)
		}
	}
}

func TestOrientation3Counts(t *testing.T) {
	t.Parallel()

	// a flat piece has 24 / |its 2D symmetry group| spatial orientations
	tests := []struct {
		letter byte
		want   int
	}{
		{'I', 3},
		{'X', 3},
		{'F', 24},
		{'T', 12},
		{'L', 24},
	}

	for _, test := range tests {
		orients, err := Orientations3(test.letter)
		require.NoError(t, err)
		assert.Len(t, orients, test.want, "shape %s", string(test.letter))
	}
}

func TestProperRotations(t *testing.T) {
	t.Parallel()

	rotations := properRotations()
	require.Len(t, rotations, 24)
	seen := make(map[rotation3]bool)
	for _, m := range rotations {
		assert.Equal(t, 1, m.det())
		assert.False(t, seen[m], "duplicate rotation matrix")
		seen[m] = true
	}
}

func TestBaseCellsCopy(t *testing.T) {
	t.Parallel()

	a, err := BaseCells('X')
	require.NoError(t, err)
	a[0] = Cell{99, 99}

	b, err := BaseCells('X')
	require.NoError(t, err)
	assert.NotEqual(t, a[0], b[0])
}

func TestValidLetter(t *testing.T) {
	t.Parallel()

	for i := range Letters {
		assert.True(t, ValidLetter(Letters[i]))
	}
	assert.False(t, ValidLetter('A'))
	assert.False(t, ValidLetter('f'))

	_, err := BaseCells('Q')
	assert.Error(t, err)
	_, err = Orientations('Q')
	assert.Error(t, err)
	_, err = Orientations3('Q')
	assert.Error(t, err)
}
