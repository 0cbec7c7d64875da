package pent

import "fmt"

// Region is the target area of a 2D puzzle: either a full rectangle or an
// explicit mask of allowed cells. A Region is immutable once built; the
// solver precomputes cell indices and 4-neighbour adjacency here so the
// pruning scan stays cheap.
type Region struct {
	Rows, Cols int
	Masked     bool

	cells     []Cell       // anchor scan order
	index     map[Cell]int // cell -> position in cells
	neighbors [][]int      // 4-connected adjacency, by cell index
}

// NewRect builds a fully-filled rows x cols region. The anchor scan runs
// column-major when the board is wider than tall, so the search opens up
// compact sub-regions sooner.
func NewRect(rows, cols int) (*Region, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid rectangle %dx%d", rows, cols)
	}
	cells := make([]Cell, 0, rows*cols)
	if cols > rows {
		for c := range cols {
			for r := range rows {
				cells = append(cells, Cell{r, c})
			}
		}
	} else {
		for r := range rows {
			for c := range cols {
				cells = append(cells, Cell{r, c})
			}
		}
	}
	return build(rows, cols, cells, false), nil
}

// NewMask builds a region from an explicit allowed-cell set, e.g. a
// triplication outline. Cells are scanned in sorted order. Coordinates
// must be non-negative and distinct.
func NewMask(cells []Cell) (*Region, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("empty mask")
	}
	sorted := make([]Cell, len(cells))
	copy(sorted, cells)
	sortCells(sorted)
	rows, cols := 0, 0
	for i, c := range sorted {
		if c.R < 0 || c.C < 0 {
			return nil, fmt.Errorf("mask cell %v out of bounds", c)
		}
		if i > 0 && c == sorted[i-1] {
			return nil, fmt.Errorf("duplicate mask cell %v", c)
		}
		if c.R+1 > rows {
			rows = c.R + 1
		}
		if c.C+1 > cols {
			cols = c.C + 1
		}
	}
	return build(rows, cols, sorted, true), nil
}

// Triplication builds the mask for a 3x-scaled model of a base pentomino:
// each base cell becomes a 3x3 block of mask cells (45 cells total).
func Triplication(letter byte) (*Region, error) {
	base, err := BaseCells(letter)
	if err != nil {
		return nil, err
	}
	cells := make([]Cell, 0, len(base)*9)
	for _, c := range base {
		for dr := range 3 {
			for dc := range 3 {
				cells = append(cells, Cell{c.R*3 + dr, c.C*3 + dc})
			}
		}
	}
	return NewMask(cells)
}

func build(rows, cols int, cells []Cell, masked bool) *Region {
	rg := &Region{
		Rows:   rows,
		Cols:   cols,
		Masked: masked,
		cells:  cells,
		index:  make(map[Cell]int, len(cells)),
	}
	for i, c := range cells {
		rg.index[c] = i
	}
	rg.neighbors = make([][]int, len(cells))
	deltas := [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for i, c := range cells {
		for _, d := range deltas {
			if j, ok := rg.index[Cell{c.R + d.R, c.C + d.C}]; ok {
				rg.neighbors[i] = append(rg.neighbors[i], j)
			}
		}
	}
	return rg
}

// Size returns the number of cells in the region.
func (rg *Region) Size() int { return len(rg.cells) }

// Cells returns the region's cells in anchor scan order. The slice is
// shared and must not be mutated.
func (rg *Region) Cells() []Cell { return rg.cells }

// Contains reports whether c is an allowed cell of the region.
func (rg *Region) Contains(c Cell) bool {
	_, ok := rg.index[c]
	return ok
}

// CellIndex returns the scan position of c, or -1 when c lies outside
// the region.
func (rg *Region) CellIndex(c Cell) int {
	i, ok := rg.index[c]
	if !ok {
		return -1
	}
	return i
}
