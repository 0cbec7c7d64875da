package pent

import "fmt"

// BoxModel is the exact-cover formulation of filling an x*y*z box with
// the twelve pentominoes, one use each: one column per voxel plus one
// column per shape-usage slot, one row per legal placement. The model is
// built once per box and is immutable; every solve builds its own
// dancing-links matrix from it.
type BoxModel struct {
	X, Y, Z int

	Placements []Placement3
	rows       [][]int
	columns    int
}

// NewBoxModel enumerates every placement of every catalogue shape inside
// the box and derives its exact-cover row. The box volume must be 60,
// the area of twelve pentominoes.
func NewBoxModel(x, y, z int) (*BoxModel, error) {
	if x < 1 || y < 1 || z < 1 {
		return nil, fmt.Errorf("invalid box %dx%dx%d", x, y, z)
	}
	if x*y*z != len(Letters)*ShapeSize {
		return nil, fmt.Errorf("box %dx%dx%d does not hold %d cells", x, y, z, len(Letters)*ShapeSize)
	}
	m := &BoxModel{X: x, Y: y, Z: z, columns: x*y*z + len(Letters)}
	for i := range Letters {
		letter := Letters[i]
		ps, err := EnumeratePlacements3(x, y, z, letter)
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			cols := make([]int, 0, ShapeSize+1)
			for _, c := range p.Cells {
				cols = append(cols, m.voxel(c))
			}
			// voxel columns of a normalized sorted cell set are already
			// increasing; the shape slot column comes last
			cols = append(cols, x*y*z+i)
			m.rows = append(m.rows, cols)
			m.Placements = append(m.Placements, p)
		}
	}
	return m, nil
}

func (m *BoxModel) voxel(c Cell3) int {
	return (c.X*m.Y+c.Y)*m.Z + c.Z
}

// Columns returns the total exact-cover column count (voxels + shape
// slots); 72 for the 3x4x5 box.
func (m *BoxModel) Columns() int { return m.columns }

// Rows returns the number of legal placements, which is also the range
// of valid placement ids.
func (m *BoxModel) Rows() int { return len(m.rows) }

// matrix builds a fresh dancing-links matrix restricted to the rows
// consistent with the prefix. ok is false for an inconsistent prefix.
func (m *BoxModel) matrix(prefix []int) (*Matrix, bool) {
	kept, ok := FilterRows(m.rows, prefix)
	if !ok {
		return nil, false
	}
	mat := NewMatrix(m.columns)
	for _, id := range kept {
		if err := mat.AddRow(id, m.rows[id]); err != nil {
			panic(AssertionError{err.Error()})
		}
	}
	return mat, true
}

// Solve returns up to maxSolutions full covers as placement-id lists.
// An invalid or inconsistent prefix produces no solutions, not an error.
func (m *BoxModel) Solve(prefix []int, maxSolutions int) ([][]int, error) {
	if maxSolutions < 1 {
		return nil, fmt.Errorf("maxSolutions must be positive, got %d", maxSolutions)
	}
	mat, ok := m.matrix(prefix)
	if !ok {
		return nil, nil
	}
	return mat.Solve(maxSolutions), nil
}

// SolveWithTrace is Solve plus the row place/remove event log. A trace
// cap overflow yields noResult=true with neither solutions nor trace.
func (m *BoxModel) SolveWithTrace(prefix []int, maxSolutions, maxEvents int) (solutions [][]int, trace []RowEvent, noResult bool, err error) {
	if maxSolutions < 1 {
		return nil, nil, false, fmt.Errorf("maxSolutions must be positive, got %d", maxSolutions)
	}
	if maxEvents < 1 {
		return nil, nil, false, fmt.Errorf("maxEvents must be positive, got %d", maxEvents)
	}
	mat, ok := m.matrix(prefix)
	if !ok {
		return nil, nil, false, nil
	}
	solutions, trace, ok = mat.SolveWithTrace(maxSolutions, maxEvents)
	if !ok {
		return nil, nil, true, nil
	}
	return solutions, trace, false, nil
}

// Placement resolves a placement id.
func (m *BoxModel) Placement(id int) (Placement3, error) {
	if id < 0 || id >= len(m.Placements) {
		return Placement3{}, fmt.Errorf("placement id %d out of range", id)
	}
	return m.Placements[id], nil
}

// Hint returns the first placement of the first solution that is not
// already part of the prefix, or ok=false when no completion exists.
func (m *BoxModel) Hint(prefix []int) (Placement3, int, bool) {
	solutions, err := m.Solve(prefix, 1)
	if err != nil || len(solutions) == 0 {
		return Placement3{}, 0, false
	}
	inPrefix := make(map[int]bool, len(prefix))
	for _, id := range prefix {
		inPrefix[id] = true
	}
	for _, id := range solutions[0] {
		if !inPrefix[id] {
			return m.Placements[id], id, true
		}
	}
	return Placement3{}, 0, false
}
