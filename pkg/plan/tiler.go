package plan

import (
	"fmt"

	"github.com/matzehuels/cannon/pkg/coverage"
)

// Direction is the column scan order of a tiling.
type Direction int

const (
	// East scans columns in ascending order.
	East Direction = iota
	// West scans columns in descending order.
	West
)

// Directions lists both scan directions in enumeration order.
var Directions = []Direction{East, West}

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d != East && d != West {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "east":
		*d = East
	case "west":
		*d = West
	default:
		return fmt.Errorf("invalid direction %q", b)
	}
	return nil
}

// sign is the column increment of a scan in d.
func (d Direction) sign() int {
	if d == West {
		return -1
	}
	return 1
}

// noFit marks a scan that found no place for a shot.
const noFit = -1

// Tiler places shots on rows of a coverage map.
type Tiler struct {
	m *coverage.Map
}

// NewTiler returns a tiler reading m.
func NewTiler(m *coverage.Map) *Tiler {
	return &Tiler{m: m}
}

// valid reports whether the vertical band [row-Radius, row+Radius] of col is
// entirely required. Columns outside the grid are never valid.
func (t *Tiler) valid(row, col int) bool {
	if col < 0 || col >= coverage.Width {
		return false
	}
	for r := row - Radius; r <= row+Radius; r++ {
		if !t.m.Required(r, col) {
			return false
		}
	}
	return true
}

// firstFit scans from col in direction d for Step consecutive valid columns
// and returns the center of the first footprint that fits, or noFit.
func (t *Tiler) firstFit(row, col int, d Direction) int {
	s := d.sign()
	run := Step
	c := col
	for run > 0 && c >= 0 && c < coverage.Width {
		if t.valid(row, c) {
			run--
		} else {
			run = Step
		}
		c += s
	}
	if run > 0 {
		return noFit
	}
	return c - s*(Radius+1)
}

// next returns the largest skip k in [1, Step] such that a shot at col+k·s
// fits and leaves no gap behind it, or noFit if the run has ended.
func (t *Tiler) next(row, col int, d Direction) int {
	s := d.sign()
	if !t.valid(row, col+s*(Radius+1)) {
		return noFit
	}
	k := 2
	for k <= Step && t.valid(row, col+s*(Radius+k)) {
		k++
	}
	return k - 1
}

// Line tiles a single row. Rows whose footprint would leave the grid yield
// no shots.
func (t *Tiler) Line(row int, d Direction) []Shot {
	if row < Radius || row >= coverage.Width-Radius {
		return nil
	}
	s := d.sign()
	cursor := 0
	if d == West {
		cursor = coverage.Width - 1
	}

	var out []Shot
	for {
		col := t.firstFit(row, cursor, d)
		if col == noFit {
			return out
		}
		for {
			out = append(out, NewShot(row, col))
			k := t.next(row, col, d)
			if k == noFit {
				break
			}
			col += s * k
		}
		cursor = col + s
	}
}

// Lines tiles rows offset+Radius, offset+Radius+Step, … for a phase offset.
func (t *Tiler) Lines(offset int, d Direction) []Shot {
	var out []Shot
	for row := offset + Radius; row < coverage.Width; row += Step {
		out = append(out, t.Line(row, d)...)
	}
	return out
}
