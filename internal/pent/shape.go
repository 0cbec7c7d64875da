package pent

import (
	"fmt"
	"sync"
)

// Letters lists the twelve pentomino identifiers in catalogue order.
// Every deterministic iteration over shapes follows this order.
const Letters = "FILNPTUVWXYZ"

// ShapeSize is the number of unit cells in every pentomino.
const ShapeSize = 5

// baseCells holds the canonical cell set of each pentomino, already
// normalized (minimum corner at the origin, sorted).
var baseCells = map[byte][]Cell{
	'F': {{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 0}},
	'I': {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
	'L': {{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 1}},
	'N': {{0, 0}, {1, 0}, {1, 1}, {2, 1}, {3, 1}},
	'P': {{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}},
	'T': {{0, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 1}},
	'U': {{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}},
	'V': {{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}},
	'W': {{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}},
	'X': {{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}},
	'Y': {{0, 1}, {1, 1}, {2, 0}, {2, 1}, {3, 1}},
	'Z': {{0, 0}, {0, 1}, {1, 1}, {2, 1}, {2, 2}},
}

// ValidLetter reports whether b names a catalogue pentomino.
func ValidLetter(b byte) bool {
	_, ok := baseCells[b]
	return ok
}

// BaseCells returns the canonical cell set of a pentomino. The returned
// slice is a copy.
func BaseCells(letter byte) ([]Cell, error) {
	base, ok := baseCells[letter]
	if !ok {
		return nil, fmt.Errorf("unknown pentomino %q", string(letter))
	}
	out := make([]Cell, len(base))
	copy(out, base)
	return out, nil
}

type catalogue struct {
	orientations  map[byte][][]Cell
	orientations3 map[byte][][]Cell3
}

var shapes = sync.OnceValue(func() *catalogue {
	cat := &catalogue{
		orientations:  make(map[byte][][]Cell, len(Letters)),
		orientations3: make(map[byte][][]Cell3, len(Letters)),
	}
	rotations := properRotations()
	for i := range Letters {
		letter := Letters[i]
		base := baseCells[letter]
		cat.orientations[letter] = uniqueOrientations(base)
		cat.orientations3[letter] = uniqueOrientations3(lift(base), rotations)
	}
	return cat
})

// uniqueOrientations generates the distinct 2D orientations of a cell set
// under 4 quarter turns, each optionally pre-mirrored (8 transforms),
// deduplicated by canonical signature.
func uniqueOrientations(base []Cell) [][]Cell {
	seen := make(map[string]bool, 8)
	var out [][]Cell
	for _, mirror := range []bool{false, true} {
		for k := range 4 {
			v := transform(base, k, mirror)
			sig := signature(v)
			if !seen[sig] {
				seen[sig] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func uniqueOrientations3(base []Cell3, rotations []rotation3) [][]Cell3 {
	seen := make(map[string]bool, 24)
	var out [][]Cell3
	for _, m := range rotations {
		v := make([]Cell3, len(base))
		for i, c := range base {
			v[i] = m.apply(c)
		}
		v = normalize3(v)
		sig := signature3(v)
		if !seen[sig] {
			seen[sig] = true
			out = append(out, v)
		}
	}
	return out
}

// lift embeds a flat cell set into 3-space at z=0.
func lift(cells []Cell) []Cell3 {
	out := make([]Cell3, len(cells))
	for i, c := range cells {
		out[i] = Cell3{c.R, c.C, 0}
	}
	return out
}

// Orientations returns the distinct 2D orientations of a pentomino. The
// result is computed once per process and must not be mutated.
func Orientations(letter byte) ([][]Cell, error) {
	o, ok := shapes().orientations[letter]
	if !ok {
		return nil, fmt.Errorf("unknown pentomino %q", string(letter))
	}
	return o, nil
}

// Orientations3 returns the distinct 3D orientations of a pentomino under
// the 24 proper rotations of the cube group.
func Orientations3(letter byte) ([][]Cell3, error) {
	o, ok := shapes().orientations3[letter]
	if !ok {
		return nil, fmt.Errorf("unknown pentomino %q", string(letter))
	}
	return o, nil
}

// shapeIndex maps a letter to its catalogue position.
func shapeIndex(letter byte) int {
	for i := range Letters {
		if Letters[i] == letter {
			return i
		}
	}
	return -1
}
