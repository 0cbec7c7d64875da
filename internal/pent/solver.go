package pent

import "fmt"

// TraceKind tags a search trace event.
type TraceKind string

const (
	TracePlace  TraceKind = "place"
	TraceRemove TraceKind = "remove"
)

// TraceEvent records one backtracking step: a tentative placement or its
// undo. The ordered event list replays the search for animation.
type TraceEvent struct {
	Kind      TraceKind `json:"kind"`
	Placement Placement `json:"placement"`
}

// SolutionCount reports a bounded count. Complete is false when the cap
// was hit, meaning the true count may be higher.
type SolutionCount struct {
	Count    int  `json:"count"`
	Complete bool `json:"complete"`
}

// search carries the mutable state of one 2D backtracking run. All of it
// is call-local; nothing escapes or survives the call.
type search struct {
	rg     *Region
	shapes []byte
	used   map[byte]bool
	filled []byte // letter per cell index, 0 = empty
	empty  int

	stack        []Placement
	solutions    [][]Placement
	maxSolutions int

	counting bool
	count    int
	maxCount int

	tracing       bool
	trace         []TraceEvent
	maxTrace      int
	traceOverflow bool

	nodes         int
	maxNodes      int
	nodesExceeded bool

	// scratch for the pruning scan, reused across nodes
	seen  []bool
	queue []int
}

func newSearch(rg *Region, letters []byte) (*search, error) {
	if err := validateShapes(letters); err != nil {
		return nil, err
	}
	shapesCopy := make([]byte, len(letters))
	copy(shapesCopy, letters)
	return &search{
		rg:     rg,
		shapes: shapesCopy,
		used:   make(map[byte]bool, len(letters)),
		filled: make([]byte, rg.Size()),
		empty:  rg.Size(),
		seen:   make([]bool, rg.Size()),
		queue:  make([]int, 0, rg.Size()),
	}, nil
}

// applyPrefix validates and applies the caller's starting placements.
// A prefix that conflicts with itself, leaves the region, repeats a
// shape, or already violates the pruning rule makes the whole search a
// no-op: both "unsolvable" and "bad prefix" mean this starting point
// cannot be completed.
func (s *search) applyPrefix(prefix []Placement) bool {
	for _, p := range prefix {
		if len(p.Cells) != ShapeSize {
			return false
		}
		allowed := false
		for _, b := range s.shapes {
			if b == p.Letter {
				allowed = true
				break
			}
		}
		if !allowed || s.used[p.Letter] {
			return false
		}
		for _, c := range p.Cells {
			i := s.rg.CellIndex(c)
			if i < 0 || s.filled[i] != 0 {
				return false
			}
		}
		s.place(p)
		s.stack = append(s.stack, p)
	}
	return s.prune()
}

func (s *search) place(p Placement) {
	s.used[p.Letter] = true
	for _, c := range p.Cells {
		s.filled[s.rg.CellIndex(c)] = p.Letter
	}
	s.empty -= len(p.Cells)
}

func (s *search) unplace(p Placement) {
	delete(s.used, p.Letter)
	for _, c := range p.Cells {
		s.filled[s.rg.CellIndex(c)] = 0
	}
	s.empty += len(p.Cells)
}

// prune recomputes the 4-connected components of the remaining empty
// cells and requires every component size to be divisible by five. A
// component that is not can never be exactly tiled by pentominoes.
func (s *search) prune() bool {
	for i := range s.seen {
		s.seen[i] = false
	}
	for start := range s.filled {
		if s.filled[start] != 0 || s.seen[start] {
			continue
		}
		size := 0
		s.queue = s.queue[:0]
		s.queue = append(s.queue, start)
		s.seen[start] = true
		for qi := 0; qi < len(s.queue); qi++ {
			u := s.queue[qi]
			size++
			for _, v := range s.rg.neighbors[u] {
				if s.filled[v] == 0 && !s.seen[v] {
					s.seen[v] = true
					s.queue = append(s.queue, v)
				}
			}
		}
		if size%ShapeSize != 0 {
			return false
		}
	}
	return true
}

func (s *search) record(kind TraceKind, p Placement) bool {
	if !s.tracing {
		return true
	}
	if len(s.trace) >= s.maxTrace {
		s.traceOverflow = true
		return false
	}
	s.trace = append(s.trace, TraceEvent{Kind: kind, Placement: p})
	return true
}

func (s *search) anchor() int {
	for i, letter := range s.filled {
		if letter == 0 {
			return i
		}
	}
	return -1
}

// complete handles a filled board. It returns false when the whole
// search must stop (solution or count cap reached).
func (s *search) complete() bool {
	if s.counting {
		s.count++
		return s.count < s.maxCount
	}
	sol := make([]Placement, len(s.stack))
	copy(sol, s.stack)
	s.solutions = append(s.solutions, sol)
	return len(s.solutions) < s.maxSolutions
}

// dfs explores all continuations from the current board state. It
// returns false when the search must stop immediately: a cap was hit or
// the node budget ran out. Exhausting a subtree returns true.
func (s *search) dfs() bool {
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.nodesExceeded = true
		return false
	}

	anchorIdx := s.anchor()
	if anchorIdx < 0 {
		return s.complete()
	}
	anchor := s.rg.cells[anchorIdx]

	for _, letter := range s.shapes {
		if s.used[letter] {
			continue
		}
		orients, _ := Orientations(letter)
		for _, orient := range orients {
			for _, pivot := range orient {
				dr, dc := anchor.R-pivot.R, anchor.C-pivot.C
				cells := make([]Cell, len(orient))
				legal := true
				for i, c := range orient {
					cells[i] = Cell{c.R + dr, c.C + dc}
					j := s.rg.CellIndex(cells[i])
					if j < 0 || s.filled[j] != 0 {
						legal = false
						break
					}
				}
				if !legal {
					continue
				}
				if !s.attempt(Placement{Letter: letter, Cells: cells}) {
					return false
				}
			}
		}
	}
	return true
}

// attempt tentatively occupies one candidate and recurses. The undo is
// deferred so every exit path — pruning rejection, cap abort, exhausted
// subtree — restores the board.
func (s *search) attempt(p Placement) (keepGoing bool) {
	s.place(p)
	s.stack = append(s.stack, p)
	defer func() {
		s.stack = s.stack[:len(s.stack)-1]
		s.unplace(p)
		if keepGoing && !s.record(TraceRemove, p) {
			keepGoing = false
		}
	}()
	if !s.record(TracePlace, p) {
		return false
	}
	if !s.prune() {
		return true
	}
	return s.dfs()
}

func run(rg *Region, letters []byte, prefix []Placement, configure func(*search)) (*search, bool, error) {
	s, err := newSearch(rg, letters)
	if err != nil {
		return nil, false, err
	}
	configure(s)
	if !s.applyPrefix(prefix) {
		return s, false, nil
	}
	s.dfs()
	return s, true, nil
}

// SolveFrom searches for the first completion of the prefix and returns
// the full placement set (prefix included), or nil when none exists.
func SolveFrom(rg *Region, letters []byte, prefix []Placement) ([]Placement, error) {
	sols, err := SolutionsFrom(rg, letters, prefix, 1)
	if err != nil || len(sols) == 0 {
		return nil, err
	}
	return sols[0], nil
}

// SolutionsFrom collects up to maxSolutions distinct completions of the
// prefix, in deterministic search order.
func SolutionsFrom(rg *Region, letters []byte, prefix []Placement, maxSolutions int) ([][]Placement, error) {
	if maxSolutions < 1 {
		return nil, fmt.Errorf("maxSolutions must be positive, got %d", maxSolutions)
	}
	s, _, err := run(rg, letters, prefix, func(s *search) {
		s.maxSolutions = maxSolutions
	})
	if err != nil {
		return nil, err
	}
	return s.solutions, nil
}

// CountFrom counts completions of the prefix up to maxCount. The search
// aborts the instant the cap is reached; Complete reports whether the
// count is exact.
func CountFrom(rg *Region, letters []byte, prefix []Placement, maxCount int) (SolutionCount, error) {
	if maxCount < 1 {
		return SolutionCount{}, fmt.Errorf("maxCount must be positive, got %d", maxCount)
	}
	s, ok, err := run(rg, letters, prefix, func(s *search) {
		s.counting = true
		s.maxCount = maxCount
	})
	if err != nil {
		return SolutionCount{}, err
	}
	if !ok {
		return SolutionCount{Count: 0, Complete: true}, nil
	}
	return SolutionCount{
		Count:    s.count,
		Complete: s.count < maxCount && !s.nodesExceeded,
	}, nil
}

// SolutionsTraceFrom is SolutionsFrom plus a bounded place/remove event
// log of every backtracking step. Exceeding maxEvents aborts the call:
// it returns noResult=true with neither solutions nor a partial trace,
// keeping worst-case memory and the later animation playback bounded.
func SolutionsTraceFrom(rg *Region, letters []byte, prefix []Placement, maxSolutions, maxEvents int) (solutions [][]Placement, trace []TraceEvent, noResult bool, err error) {
	if maxSolutions < 1 {
		return nil, nil, false, fmt.Errorf("maxSolutions must be positive, got %d", maxSolutions)
	}
	if maxEvents < 1 {
		return nil, nil, false, fmt.Errorf("maxEvents must be positive, got %d", maxEvents)
	}
	s, _, err := run(rg, letters, prefix, func(s *search) {
		s.maxSolutions = maxSolutions
		s.tracing = true
		s.maxTrace = maxEvents
	})
	if err != nil {
		return nil, nil, false, err
	}
	if s.traceOverflow {
		return nil, nil, true, nil
	}
	return s.solutions, s.trace, false, nil
}

// SolveTraceFrom is the single-solution form of SolutionsTraceFrom. A
// trace cap overflow yields no solution and no trace.
func SolveTraceFrom(rg *Region, letters []byte, prefix []Placement, maxEvents int) ([]Placement, []TraceEvent, error) {
	solutions, trace, noResult, err := SolutionsTraceFrom(rg, letters, prefix, 1, maxEvents)
	if err != nil || noResult {
		return nil, nil, err
	}
	if len(solutions) == 0 {
		return nil, trace, nil
	}
	return solutions[0], trace, nil
}

// probe reports whether the prefix can be completed within a node
// budget. conclusive is false when the budget ran out before the search
// settled either way.
func probe(rg *Region, letters []byte, prefix []Placement, maxNodes int) (solved, conclusive bool, err error) {
	s, ok, err := run(rg, letters, prefix, func(s *search) {
		s.maxSolutions = 1
		s.maxNodes = maxNodes
	})
	if err != nil {
		return false, false, err
	}
	if !ok {
		return false, true, nil
	}
	if len(s.solutions) > 0 {
		return true, true, nil
	}
	return false, !s.nodesExceeded, nil
}
