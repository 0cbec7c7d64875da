package pent

import "fmt"

// Board is the solve facade for one 2D puzzle instance: a region plus
// the shapes available to fill it. It owns the instance's placement
// table, so placement ids are opaque integers stable for the lifetime
// of the Board.
type Board struct {
	Region *Region
	Shapes []byte

	Placements []Placement
	ids        map[string]int
}

// NewBoard builds the facade for a region and a shape subset. Passing
// nil letters selects the full twelve-shape catalogue.
func NewBoard(rg *Region, letters []byte) (*Board, error) {
	if letters == nil {
		letters = []byte(Letters)
	}
	if err := validateShapes(letters); err != nil {
		return nil, err
	}
	if rg.Size()%ShapeSize != 0 {
		return nil, fmt.Errorf("region size %d is not a multiple of %d", rg.Size(), ShapeSize)
	}
	if rg.Size() > len(letters)*ShapeSize {
		return nil, fmt.Errorf("region size %d exceeds the area of %d shapes", rg.Size(), len(letters))
	}
	placements, err := AllPlacements(rg, letters)
	if err != nil {
		return nil, err
	}
	b := &Board{
		Region:     rg,
		Shapes:     letters,
		Placements: placements,
		ids:        make(map[string]int, len(placements)),
	}
	for id, p := range placements {
		b.ids[p.key()] = id
	}
	return b, nil
}

// NewRectBoard is the common case: a fully-filled rectangle with all
// twelve shapes.
func NewRectBoard(rows, cols int) (*Board, error) {
	rg, err := NewRect(rows, cols)
	if err != nil {
		return nil, err
	}
	return NewBoard(rg, nil)
}

// Placement resolves a placement id.
func (b *Board) Placement(id int) (Placement, error) {
	if id < 0 || id >= len(b.Placements) {
		return Placement{}, fmt.Errorf("placement id %d out of range", id)
	}
	return b.Placements[id], nil
}

// IDOf returns the id of a placement produced by this board's search.
func (b *Board) IDOf(p Placement) (int, bool) {
	id, ok := b.ids[p.key()]
	return id, ok
}

func (b *Board) resolvePrefix(ids []int) ([]Placement, bool) {
	prefix := make([]Placement, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(b.Placements) {
			return nil, false
		}
		prefix[i] = b.Placements[id]
	}
	return prefix, true
}

func (b *Board) idsOf(placements []Placement) []int {
	out := make([]int, len(placements))
	for i, p := range placements {
		id, ok := b.IDOf(p)
		assertInvariant(ok, "search produced a placement missing from the placement table")
		out[i] = id
	}
	return out
}

// Solve returns up to maxSolutions completions of the prefix as
// placement-id lists, prefix included. An invalid prefix produces no
// solutions, not an error.
func (b *Board) Solve(prefix []int, maxSolutions int) ([][]int, error) {
	placements, ok := b.resolvePrefix(prefix)
	if !ok {
		return nil, nil
	}
	solutions, err := SolutionsFrom(b.Region, b.Shapes, placements, maxSolutions)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(solutions))
	for i, sol := range solutions {
		out[i] = b.idsOf(sol)
	}
	return out, nil
}

// SolveWithTrace is Solve plus the place/remove event log. A trace cap
// overflow yields noResult=true with neither solutions nor trace.
func (b *Board) SolveWithTrace(prefix []int, maxSolutions, maxEvents int) (solutions [][]int, trace []TraceEvent, noResult bool, err error) {
	placements, ok := b.resolvePrefix(prefix)
	if !ok {
		return nil, nil, false, nil
	}
	sols, trace, noResult, err := SolutionsTraceFrom(b.Region, b.Shapes, placements, maxSolutions, maxEvents)
	if err != nil || noResult {
		return nil, nil, noResult, err
	}
	solutions = make([][]int, len(sols))
	for i, sol := range sols {
		solutions[i] = b.idsOf(sol)
	}
	return solutions, trace, false, nil
}

// CountSolutions counts completions of the prefix up to maxCount.
func (b *Board) CountSolutions(prefix []int, maxCount int) (SolutionCount, error) {
	placements, ok := b.resolvePrefix(prefix)
	if !ok {
		return SolutionCount{Count: 0, Complete: true}, nil
	}
	return CountFrom(b.Region, b.Shapes, placements, maxCount)
}

// Hint returns the first not-yet-placed placement of the first found
// completion, or ok=false when the prefix cannot be completed.
func (b *Board) Hint(prefix []int) (Placement, int, bool) {
	solutions, err := b.Solve(prefix, 1)
	if err != nil || len(solutions) == 0 {
		return Placement{}, 0, false
	}
	sol := solutions[0]
	if len(sol) <= len(prefix) {
		return Placement{}, 0, false
	}
	id := sol[len(prefix)]
	return b.Placements[id], id, true
}

// Solved reports whether the prefix alone already covers the region.
func (b *Board) Solved(prefix []int) bool {
	placements, ok := b.resolvePrefix(prefix)
	if !ok {
		return false
	}
	covered := make(map[Cell]bool)
	for _, p := range placements {
		for _, c := range p.Cells {
			if covered[c] {
				return false
			}
			covered[c] = true
		}
	}
	return len(covered) == b.Region.Size()
}
