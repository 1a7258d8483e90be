package plan

import "github.com/matzehuels/cannon/pkg/coverage"

// Grid records which cells some blast has struck. Each candidate owns its
// own Grid; grids are never shared between evaluations.
type Grid struct {
	cells []bool
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make([]bool, coverage.Width*coverage.Width)}
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{cells: append([]bool(nil), g.cells...)}
}

// Struck reports whether (row, col) has been struck.
func (g *Grid) Struck(row, col int) bool {
	return g.cells[row*coverage.Width+col]
}

// Mark strikes the footprint of s and reports how many cells were struck
// for the first time.
func (g *Grid) Mark(s Shot) int {
	fresh := 0
	for r := s.Row - Radius; r <= s.Row+Radius; r++ {
		row := g.cells[r*coverage.Width : (r+1)*coverage.Width]
		for c := s.Col - Radius; c <= s.Col+Radius; c++ {
			if !row[c] {
				row[c] = true
				fresh++
			}
		}
	}
	return fresh
}

// Count returns the number of struck cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// gridOf returns a grid with the footprints of shots struck.
func gridOf(shots []Shot) *Grid {
	g := NewGrid()
	for _, s := range shots {
		g.Mark(s)
	}
	return g
}
