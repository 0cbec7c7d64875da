package pent

import (
	"fmt"
	"sort"
)

// Cell is a unit square on a 2D board, addressed row-first.
type Cell struct {
	R int `json:"r"`
	C int `json:"c"`
}

// Cell3 is a unit cube inside a 3D box.
type Cell3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].R != cells[j].R {
			return cells[i].R < cells[j].R
		}
		return cells[i].C < cells[j].C
	})
}

func sortCells3(cells []Cell3) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].Z < cells[j].Z
	})
}

// normalize translates cells so the minimum coordinate on every axis is
// zero and returns them sorted. Every orientation and every catalogue
// shape is stored in this form, which makes deduplication a string
// comparison.
func normalize(cells []Cell) []Cell {
	minR, minC := cells[0].R, cells[0].C
	for _, c := range cells[1:] {
		if c.R < minR {
			minR = c.R
		}
		if c.C < minC {
			minC = c.C
		}
	}
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{c.R - minR, c.C - minC}
	}
	sortCells(out)
	return out
}

func normalize3(cells []Cell3) []Cell3 {
	minX, minY, minZ := cells[0].X, cells[0].Y, cells[0].Z
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Z < minZ {
			minZ = c.Z
		}
	}
	out := make([]Cell3, len(cells))
	for i, c := range cells {
		out[i] = Cell3{c.X - minX, c.Y - minY, c.Z - minZ}
	}
	sortCells3(out)
	return out
}

func signature(cells []Cell) string {
	s := ""
	for _, c := range cells {
		s += fmt.Sprintf("%d,%d;", c.R, c.C)
	}
	return s
}

func signature3(cells []Cell3) string {
	s := ""
	for _, c := range cells {
		s += fmt.Sprintf("%d,%d,%d;", c.X, c.Y, c.Z)
	}
	return s
}

// transform applies one element of the 2D symmetry group: an optional
// mirror followed by k quarter turns.
func transform(cells []Cell, k int, mirror bool) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		x, y := c.R, c.C
		if mirror {
			y = -y
		}
		for range k % 4 {
			x, y = y, -x
		}
		out[i] = Cell{x, y}
	}
	return normalize(out)
}

// rotation3 is a 3x3 signed permutation matrix.
type rotation3 [3][3]int

func (m rotation3) apply(c Cell3) Cell3 {
	v := [3]int{c.X, c.Y, c.Z}
	var w [3]int
	for i := range 3 {
		for j := range 3 {
			w[i] += m[i][j] * v[j]
		}
	}
	return Cell3{w[0], w[1], w[2]}
}

func (m rotation3) det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// properRotations enumerates the 24 rotation matrices of the cube group:
// all signed axis permutations with determinant +1, in a fixed order so
// orientation generation stays deterministic. Physical pieces cannot be
// reflected through 3-space, so the 24 improper matrices are excluded.
func properRotations() []rotation3 {
	perms := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	var out []rotation3
	for _, p := range perms {
		for signs := range 8 {
			var m rotation3
			for axis := range 3 {
				s := 1
				if signs&(1<<axis) != 0 {
					s = -1
				}
				m[axis][p[axis]] = s
			}
			if m.det() == 1 {
				out = append(out, m)
			}
		}
	}
	return out
}
