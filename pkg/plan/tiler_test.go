package plan

import (
	"image"
	"testing"

	"github.com/matzehuels/cannon/pkg/coverage"
)

func cols(shots []Shot) []int {
	out := make([]int, len(shots))
	for i, s := range shots {
		out[i] = s.Col
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLinesBlank(t *testing.T) {
	tl := NewTiler(coverage.Blank())
	for offset := 0; offset < Step; offset++ {
		for _, d := range Directions {
			if got := tl.Lines(offset, d); len(got) != 0 {
				t.Errorf("Lines(%d, %s) = %d shots on a blank map", offset, d, len(got))
			}
		}
	}
}

func TestLineMaxSkip(t *testing.T) {
	// A 10-column strip fits two overlapping shots; the second backs off
	// from the full skip so its footprint stays inside the strip.
	m := coverage.FromRects(image.Rect(0, 0, 10, Step))
	tl := NewTiler(m)

	if got, want := cols(tl.Line(Radius, East)), []int{3, 6}; !equalInts(got, want) {
		t.Errorf("Line(East) cols = %v, want %v", got, want)
	}
	if got, want := cols(tl.Line(Radius, West)), []int{6, 3}; !equalInts(got, want) {
		t.Errorf("Line(West) cols = %v, want %v", got, want)
	}
}

func TestLineFullRow(t *testing.T) {
	tl := NewTiler(coverage.Filled())

	east := tl.Line(100, East)
	if len(east) != 76 {
		t.Fatalf("Line(East) = %d shots, want 76", len(east))
	}
	if east[0].Col != Radius || east[len(east)-1].Col != coverage.Width-Radius-1 {
		t.Errorf("Line(East) spans %d..%d", east[0].Col, east[len(east)-1].Col)
	}
	for i := 1; i < len(east)-1; i++ {
		if d := east[i].Col - east[i-1].Col; d != Step {
			t.Fatalf("interior skip %d at shot %d, want %d", d, i, Step)
		}
	}

	west := tl.Line(100, West)
	if len(west) != 76 || west[0].Col != coverage.Width-Radius-1 || west[len(west)-1].Col != Radius {
		t.Errorf("Line(West) = %d shots spanning %d..%d", len(west), west[0].Col, west[len(west)-1].Col)
	}
}

func TestLineSkipsGaps(t *testing.T) {
	// Two separate runs on one row, separated by a gap narrower than Step.
	m := coverage.FromRects(
		image.Rect(20, 50, 27, 57),
		image.Rect(30, 50, 44, 57),
	)
	tl := NewTiler(m)
	if got, want := cols(tl.Line(53, East)), []int{23, 33, 40}; !equalInts(got, want) {
		t.Errorf("Line(East) cols = %v, want %v", got, want)
	}
}

func TestLineRowOutOfRange(t *testing.T) {
	tl := NewTiler(coverage.Filled())
	for _, row := range []int{-1, 0, Radius - 1, coverage.Width - Radius, coverage.Width + 10} {
		if got := tl.Line(row, East); got != nil {
			t.Errorf("Line(%d) = %d shots, want none", row, len(got))
		}
	}
}

func TestLinesRows(t *testing.T) {
	tl := NewTiler(coverage.Filled())
	for offset := 0; offset < Step; offset++ {
		shots := tl.Lines(offset, East)
		rows := map[int]bool{}
		for _, s := range shots {
			if (s.Row-Radius-offset)%Step != 0 {
				t.Fatalf("Lines(%d) placed a shot on row %d", offset, s.Row)
			}
			rows[s.Row] = true
		}
		want := rowsFor(offset)
		if len(rows) != want {
			t.Errorf("Lines(%d) used %d rows, want %d", offset, len(rows), want)
		}
	}
}

func TestTilingStaysInsideSilhouette(t *testing.T) {
	m := disc(264, 264, 200)
	tl := NewTiler(m)
	for offset := 0; offset < Step; offset++ {
		for _, d := range Directions {
			for _, s := range tl.Lines(offset, d) {
				fp := s.Footprint()
				for r := fp.Min.Y; r < fp.Max.Y; r++ {
					for c := fp.Min.X; c < fp.Max.X; c++ {
						if !m.Required(r, c) {
							t.Fatalf("Lines(%d, %s) shot %v strikes background (%d,%d)", offset, d, s, r, c)
						}
					}
				}
			}
		}
	}
}

// rowsFor is the number of rows a phase can tile on a full map: centers
// offset+Radius, offset+Radius+Step, … up to Width-Radius-1.
func rowsFor(offset int) int {
	return (coverage.Width-Radius-1-(offset+Radius))/Step + 1
}

// disc returns a map with a filled circle.
func disc(cr, cc, radius int) *coverage.Map {
	rows := make([][]bool, coverage.Width)
	for r := range rows {
		rows[r] = make([]bool, coverage.Width)
		for c := range rows[r] {
			dr, dc := r-cr, c-cc
			rows[r][c] = dr*dr+dc*dc <= radius*radius
		}
	}
	m, err := coverage.New(rows)
	if err != nil {
		panic(err)
	}
	return m
}
