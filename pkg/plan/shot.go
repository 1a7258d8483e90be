package plan

import (
	"fmt"
	"image"

	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/errors"
)

const (
	// Radius is the half-width of a blast footprint.
	Radius = 3

	// Step is the side of a blast footprint and the row spacing of a tiling.
	Step = 2*Radius + 1
)

// Pair is a launch cost along the X (row) and Z (column) axes.
type Pair struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Sum returns X + Z.
func (p Pair) Sum() int { return p.X + p.Z }

// Shot is one blast centered at (Row, Col).
type Shot struct {
	Row   int
	Col   int
	Costs [Orientations]Pair
}

// NewShot places a blast at (row, col) and computes its cost table.
// The footprint must lie inside the grid; callers check this before placing.
func NewShot(row, col int) Shot {
	if row < Radius || row >= coverage.Width-Radius || col < Radius || col >= coverage.Width-Radius {
		errors.Invariant("shot at (%d, %d) leaves the %dx%d grid", row, col, coverage.Width, coverage.Width)
	}
	return Shot{Row: row, Col: col, Costs: costTable(row, col)}
}

// Cost returns the launch cost of the shot for orientation o.
func (s Shot) Cost(o Orientation) Pair { return s.Costs[o] }

// Footprint returns the cells struck by the shot.
func (s Shot) Footprint() image.Rectangle {
	return image.Rect(s.Col-Radius, s.Row-Radius, s.Col+Radius+1, s.Row+Radius+1)
}

func (s Shot) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }
