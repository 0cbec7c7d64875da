package pent

import "fmt"

// Placement binds a pentomino to a concrete, in-region cell set: one
// orientation translated by an anchor offset.
type Placement struct {
	Letter byte   `json:"-"`
	Cells  []Cell `json:"cells"`
}

// Shape returns the placement's pentomino letter as a string, for wire
// encodings and logs.
func (p Placement) Shape() string { return string(p.Letter) }

func (p Placement) key() string {
	return string(p.Letter) + ":" + signature(p.Cells)
}

// Overlaps reports whether two placements share a cell.
func (p Placement) Overlaps(q Placement) bool {
	for _, a := range p.Cells {
		for _, b := range q.Cells {
			if a == b {
				return true
			}
		}
	}
	return false
}

// EnumeratePlacements lists every legal placement of one pentomino inside
// the region, sliding each orientation's bounding box across the region's
// extent. No pruning happens here; the solvers own that.
func EnumeratePlacements(rg *Region, letter byte) ([]Placement, error) {
	orients, err := Orientations(letter)
	if err != nil {
		return nil, err
	}
	var out []Placement
	for _, orient := range orients {
		maxR, maxC := 0, 0
		for _, c := range orient {
			if c.R > maxR {
				maxR = c.R
			}
			if c.C > maxC {
				maxC = c.C
			}
		}
		for dr := 0; dr+maxR < rg.Rows; dr++ {
			for dc := 0; dc+maxC < rg.Cols; dc++ {
				cells := make([]Cell, len(orient))
				legal := true
				for i, c := range orient {
					cells[i] = Cell{c.R + dr, c.C + dc}
					if !rg.Contains(cells[i]) {
						legal = false
						break
					}
				}
				if legal {
					out = append(out, Placement{Letter: letter, Cells: cells})
				}
			}
		}
	}
	return out, nil
}

// AllPlacements enumerates legal placements for every listed shape, in
// catalogue order. Placement ids used across the solve facade are indices
// into this slice.
func AllPlacements(rg *Region, letters []byte) ([]Placement, error) {
	var out []Placement
	for _, letter := range letters {
		ps, err := EnumeratePlacements(rg, letter)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// Placement3 is a placement inside a 3D box.
type Placement3 struct {
	Letter byte    `json:"-"`
	Cells  []Cell3 `json:"cells"`
}

// Shape returns the placement's pentomino letter as a string.
func (p Placement3) Shape() string { return string(p.Letter) }

// EnumeratePlacements3 lists every placement of one pentomino inside an
// x*y*z box, over all 3D orientations.
func EnumeratePlacements3(x, y, z int, letter byte) ([]Placement3, error) {
	orients, err := Orientations3(letter)
	if err != nil {
		return nil, err
	}
	var out []Placement3
	for _, orient := range orients {
		var maxX, maxY, maxZ int
		for _, c := range orient {
			if c.X > maxX {
				maxX = c.X
			}
			if c.Y > maxY {
				maxY = c.Y
			}
			if c.Z > maxZ {
				maxZ = c.Z
			}
		}
		for dx := 0; dx+maxX < x; dx++ {
			for dy := 0; dy+maxY < y; dy++ {
				for dz := 0; dz+maxZ < z; dz++ {
					cells := make([]Cell3, len(orient))
					for i, c := range orient {
						cells[i] = Cell3{c.X + dx, c.Y + dy, c.Z + dz}
					}
					out = append(out, Placement3{Letter: letter, Cells: cells})
				}
			}
		}
	}
	return out, nil
}

func validateShapes(letters []byte) error {
	seen := make(map[byte]bool, len(letters))
	for _, b := range letters {
		if !ValidLetter(b) {
			return fmt.Errorf("unknown pentomino %q", string(b))
		}
		if seen[b] {
			return fmt.Errorf("duplicate pentomino %q", string(b))
		}
		seen[b] = true
	}
	return nil
}
