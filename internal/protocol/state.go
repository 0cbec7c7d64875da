package protocol

import (
	"bytes"
	"encoding/gob"
)

// PuzzleState is the persistent part of a puzzle session: the region
// spec that rebuilds the solver instance plus the placements committed
// so far. It travels through storage as a gob blob.
type PuzzleState struct {
	Region RegionSpec
	Prefix []int
	Solved bool
}

func (s *PuzzleState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParsePuzzleState(b []byte) (*PuzzleState, error) {
	var state PuzzleState
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&state); err != nil {
		return nil, err
	}
	return &state, nil
}
