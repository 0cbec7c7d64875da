package pent

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// TriplicationShapes is the number of pentominoes used to build a
// 3x-scaled model of a target piece (45 cells / 5).
const TriplicationShapes = 9

// ErrNoPuzzle is returned when generation exhausts its attempt budget
// without finding a solvable instance.
var ErrNoPuzzle = errors.New("no solvable triplication puzzle found")

// TriplicationPuzzle is a generated instance: the target piece whose
// 3x outline must be filled, and the nine shapes allowed to fill it.
type TriplicationPuzzle struct {
	Target byte
	Region *Region
	Shapes []byte
}

// GenerateOptions bounds generation work. MaxNodes caps the recursive
// calls of each solvability probe; MaxAttempts caps the retries.
type GenerateOptions struct {
	MaxAttempts int
	MaxNodes    int
}

// DefaultGenerateOptions keeps worst-case generation latency around the
// interactive threshold on the boards this service ships.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{MaxAttempts: 100, MaxNodes: 100_000}
}

// GenerateTriplication picks a random target piece and a random
// nine-shape subset, probes solvability under the node cap, and retries
// until an instance passes or attempts run out. A probe that exhausts
// its node cap is inconclusive and consumes an attempt; it never marks
// the instance unsolvable.
func GenerateTriplication(r *rand.Rand, opts GenerateOptions) (*TriplicationPuzzle, error) {
	if opts.MaxAttempts < 1 || opts.MaxNodes < 1 {
		return nil, fmt.Errorf("invalid generate options %+v", opts)
	}
	for range opts.MaxAttempts {
		target := Letters[r.IntN(len(Letters))]
		shapes := pickShapes(r, TriplicationShapes)
		rg, err := Triplication(target)
		if err != nil {
			return nil, err
		}
		solved, conclusive, err := probe(rg, shapes, nil, opts.MaxNodes)
		if err != nil {
			return nil, err
		}
		if solved && conclusive {
			return &TriplicationPuzzle{Target: target, Region: rg, Shapes: shapes}, nil
		}
	}
	return nil, ErrNoPuzzle
}

// pickShapes draws n distinct letters, returned in catalogue order so
// downstream searches stay deterministic for a given drawing.
func pickShapes(r *rand.Rand, n int) []byte {
	perm := r.Perm(len(Letters))
	chosen := make(map[int]bool, n)
	for _, i := range perm[:n] {
		chosen[i] = true
	}
	out := make([]byte, 0, n)
	for i := range Letters {
		if chosen[i] {
			out = append(out, Letters[i])
		}
	}
	return out
}
