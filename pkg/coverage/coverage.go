package coverage

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/matzehuels/cannon/pkg/errors"
)

// Width is the side length of every coverage grid.
const Width = 528

// Map is an immutable Width×Width grid of required cells.
type Map struct {
	cells []bool
	total int
}

// New builds a Map from row-major cells. The input is copied.
func New(cells [][]bool) (*Map, error) {
	if len(cells) != Width {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"coverage grid has %d rows, want %d", len(cells), Width)
	}
	m := &Map{cells: make([]bool, Width*Width)}
	for r, row := range cells {
		if len(row) != Width {
			return nil, errors.New(errors.ErrCodeInvalidDimensions,
				"coverage row %d has %d columns, want %d", r, len(row), Width)
		}
		copy(m.cells[r*Width:], row)
	}
	m.count()
	return m, nil
}

// FromImage classifies every pixel of img against bg. Pixels whose RGBA
// value differs from bg in any channel are required.
func FromImage(img image.Image, bg color.Color) (*Map, error) {
	b := img.Bounds()
	if b.Dx() != Width || b.Dy() != Width {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"image size %dx%d, want %dx%d", b.Dx(), b.Dy(), Width, Width)
	}
	br, bgG, bb, ba := bg.RGBA()
	m := &Map{cells: make([]bool, Width*Width)}
	for r := 0; r < Width; r++ {
		for c := 0; c < Width; c++ {
			pr, pg, pb, pa := img.At(b.Min.X+c, b.Min.Y+r).RGBA()
			m.cells[r*Width+c] = pr != br || pg != bgG || pb != bb || pa != ba
		}
	}
	m.count()
	return m, nil
}

// Filled returns a map on which every cell is required.
func Filled() *Map {
	m := &Map{cells: make([]bool, Width*Width)}
	for i := range m.cells {
		m.cells[i] = true
	}
	m.count()
	return m
}

// Blank returns a map without required cells.
func Blank() *Map {
	return &Map{cells: make([]bool, Width*Width)}
}

// FromRects returns a map whose required cells are the union of rects,
// clipped to the grid.
func FromRects(rects ...image.Rectangle) *Map {
	m := Blank()
	grid := image.Rect(0, 0, Width, Width)
	for _, rect := range rects {
		rect = rect.Intersect(grid)
		for r := rect.Min.Y; r < rect.Max.Y; r++ {
			for c := rect.Min.X; c < rect.Max.X; c++ {
				m.cells[r*Width+c] = true
			}
		}
	}
	m.count()
	return m
}

func (m *Map) count() {
	m.total = 0
	for _, v := range m.cells {
		if v {
			m.total++
		}
	}
}

// Required reports whether the cell at (row, col) must be struck.
// Cells outside the grid are never required.
func (m *Map) Required(row, col int) bool {
	if row < 0 || row >= Width || col < 0 || col >= Width {
		return false
	}
	return m.cells[row*Width+col]
}

// Total returns the number of required cells.
func (m *Map) Total() int { return m.total }

// Bytes returns a compact bit-packed encoding of the grid, prefixed with its
// width. Equal maps produce equal bytes.
func (m *Map) Bytes() []byte {
	out := make([]byte, 4, 4+(len(m.cells)+7)/8)
	binary.BigEndian.PutUint32(out, Width)
	var cur byte
	for i, v := range m.cells {
		if v {
			cur |= 1 << (i % 8)
		}
		if i%8 == 7 {
			out = append(out, cur)
			cur = 0
		}
	}
	if len(m.cells)%8 != 0 {
		out = append(out, cur)
	}
	return out
}

// Image renders the silhouette: required cells black, the rest white.
func (m *Map) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Width))
	for i, v := range m.cells {
		if !v {
			img.Pix[i] = 0xff
		}
	}
	return img
}
