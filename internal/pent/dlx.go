package pent

import "fmt"

// Matrix is a sparse exact-cover matrix in dancing-links form. Nodes live
// in a flat arena and link to each other by index, which keeps cover and
// uncover O(1) per link without pointer aliasing. Node 0 is the root;
// nodes 1..ncols are the column headers.
type Matrix struct {
	nodes []dlxNode
	size  []int
	ncols int
}

type dlxNode struct {
	up, down, left, right int
	col                   int // column id; header nodes carry their own
	row                   int // caller row id; -1 on root and headers
}

// RowEvent is one dancing-links search step, identified by row id.
type RowEvent struct {
	Kind TraceKind `json:"kind"`
	Row  int       `json:"row"`
}

// NewMatrix creates a matrix with ncols empty columns.
func NewMatrix(ncols int) *Matrix {
	if ncols < 1 {
		panic(AssertionError{fmt.Sprintf("matrix needs at least one column, got %d", ncols)})
	}
	m := &Matrix{
		nodes: make([]dlxNode, ncols+1),
		size:  make([]int, ncols),
		ncols: ncols,
	}
	for i := range m.nodes {
		prev := (i + ncols) % (ncols + 1)
		next := (i + 1) % (ncols + 1)
		m.nodes[i] = dlxNode{up: i, down: i, left: prev, right: next, col: i - 1, row: -1}
	}
	return m
}

func (m *Matrix) header(col int) int { return col + 1 }

// AddRow appends one row, horizontally ring-linked, each node vertically
// linked to the bottom of its column. Column ids must be in range and
// strictly increasing within the row.
func (m *Matrix) AddRow(rowID int, cols []int) error {
	if len(cols) == 0 {
		return fmt.Errorf("row %d has no columns", rowID)
	}
	first := len(m.nodes)
	for i, col := range cols {
		if col < 0 || col >= m.ncols {
			return fmt.Errorf("row %d column %d out of range", rowID, col)
		}
		if i > 0 && col <= cols[i-1] {
			return fmt.Errorf("row %d columns must be strictly increasing", rowID)
		}
		h := m.header(col)
		n := len(m.nodes)
		m.nodes = append(m.nodes, dlxNode{
			up:    m.nodes[h].up,
			down:  h,
			left:  n - 1,
			right: first,
			col:   col,
			row:   rowID,
		})
		m.nodes[m.nodes[h].up].down = n
		m.nodes[h].up = n
		m.size[col]++
	}
	m.nodes[first].left = len(m.nodes) - 1
	return nil
}

// cover unlinks a column header from the header ring and removes every
// row under it from the other columns those rows occupy.
func (m *Matrix) cover(col int) {
	h := m.header(col)
	m.nodes[m.nodes[h].left].right = m.nodes[h].right
	m.nodes[m.nodes[h].right].left = m.nodes[h].left
	for i := m.nodes[h].down; i != h; i = m.nodes[i].down {
		for j := m.nodes[i].right; j != i; j = m.nodes[j].right {
			m.nodes[m.nodes[j].up].down = m.nodes[j].down
			m.nodes[m.nodes[j].down].up = m.nodes[j].up
			m.size[m.nodes[j].col]--
			assertInvariant(m.size[m.nodes[j].col] >= 0, "column size went negative during cover")
		}
	}
}

// uncover is the exact mirror image of cover, replayed bottom-up so the
// links land back where they were.
func (m *Matrix) uncover(col int) {
	h := m.header(col)
	for i := m.nodes[h].up; i != h; i = m.nodes[i].up {
		for j := m.nodes[i].left; j != i; j = m.nodes[j].left {
			m.size[m.nodes[j].col]++
			m.nodes[m.nodes[j].up].down = j
			m.nodes[m.nodes[j].down].up = j
		}
	}
	m.nodes[m.nodes[h].left].right = h
	m.nodes[m.nodes[h].right].left = h
}

// choose picks the live column with the smallest size, ties broken by
// encounter order. Returns -1 when no columns remain.
func (m *Matrix) choose() int {
	best, bestSize := -1, -1
	for h := m.nodes[0].right; h != 0; h = m.nodes[h].right {
		col := m.nodes[h].col
		assertInvariant(col >= 0 && col < m.ncols, "header ring corrupted")
		if best < 0 || m.size[col] < bestSize {
			best, bestSize = col, m.size[col]
		}
	}
	return best
}

type dlxRun struct {
	stack        []int
	solutions    [][]int
	maxSolutions int

	tracing  bool
	trace    []RowEvent
	maxTrace int
	overflow bool
}

func (st *dlxRun) record(kind TraceKind, row int) bool {
	if !st.tracing {
		return true
	}
	if len(st.trace) >= st.maxTrace {
		st.overflow = true
		return false
	}
	st.trace = append(st.trace, RowEvent{Kind: kind, Row: row})
	return true
}

// search is Knuth's Algorithm X. It returns false when the run must stop
// (solution cap or trace cap); the matrix is fully restored either way.
func (m *Matrix) search(st *dlxRun) bool {
	if m.nodes[0].right == 0 {
		sol := make([]int, len(st.stack))
		copy(sol, st.stack)
		st.solutions = append(st.solutions, sol)
		return len(st.solutions) < st.maxSolutions
	}
	col := m.choose()
	if m.size[col] == 0 {
		return true
	}
	m.cover(col)
	keepGoing := true
	h := m.header(col)
	for i := m.nodes[h].down; i != h && keepGoing; i = m.nodes[i].down {
		row := m.nodes[i].row
		st.stack = append(st.stack, row)
		keepGoing = st.record(TracePlace, row)
		if keepGoing {
			for j := m.nodes[i].right; j != i; j = m.nodes[j].right {
				m.cover(m.nodes[j].col)
			}
			keepGoing = m.search(st)
			for j := m.nodes[i].left; j != i; j = m.nodes[j].left {
				m.uncover(m.nodes[j].col)
			}
		}
		st.stack = st.stack[:len(st.stack)-1]
		if keepGoing {
			keepGoing = st.record(TraceRemove, row)
		}
	}
	m.uncover(col)
	return keepGoing
}

// Solve collects up to maxSolutions exact covers as lists of row ids, in
// deterministic search order.
func (m *Matrix) Solve(maxSolutions int) [][]int {
	st := &dlxRun{maxSolutions: maxSolutions}
	m.search(st)
	return st.solutions
}

// SolveWithTrace is Solve plus the ordered row place/remove event log.
// ok is false when the trace cap was exceeded; the caller gets neither
// solutions nor a partial trace in that case.
func (m *Matrix) SolveWithTrace(maxSolutions, maxEvents int) (solutions [][]int, trace []RowEvent, ok bool) {
	st := &dlxRun{maxSolutions: maxSolutions, tracing: true, maxTrace: maxEvents}
	m.search(st)
	if st.overflow {
		return nil, nil, false
	}
	return st.solutions, st.trace, true
}

// FilterRows implements prefix consistency for exact cover: chosen rows
// must be pairwise column-disjoint, and the surviving row set is exactly
// the chosen rows plus every other row sharing no column with them. An
// inconsistent prefix yields ok=false (no solutions reachable).
func FilterRows(rows [][]int, chosen []int) (kept []int, ok bool) {
	taken := make(map[int]bool)
	isChosen := make(map[int]bool, len(chosen))
	for _, id := range chosen {
		if id < 0 || id >= len(rows) || isChosen[id] {
			return nil, false
		}
		isChosen[id] = true
		for _, col := range rows[id] {
			if taken[col] {
				return nil, false
			}
			taken[col] = true
		}
	}
	for id, cols := range rows {
		if isChosen[id] {
			kept = append(kept, id)
			continue
		}
		disjoint := true
		for _, col := range cols {
			if taken[col] {
				disjoint = false
				break
			}
		}
		if disjoint {
			kept = append(kept, id)
		}
	}
	return kept, true
}
