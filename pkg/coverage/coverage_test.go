package coverage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/cannon/pkg/errors"
)

func grid(fill bool) [][]bool {
	rows := make([][]bool, Width)
	for r := range rows {
		rows[r] = make([]bool, Width)
		for c := range rows[r] {
			rows[r][c] = fill
		}
	}
	return rows
}

func TestNew(t *testing.T) {
	rows := grid(false)
	rows[10][20] = true
	rows[527][0] = true

	m, err := New(rows)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m.Total() != 2 {
		t.Errorf("Total() = %d, want 2", m.Total())
	}
	if !m.Required(10, 20) || !m.Required(527, 0) {
		t.Error("Required() should report the set cells")
	}
	if m.Required(20, 10) {
		t.Error("Required(20, 10) = true, want false")
	}

	// New copies its input.
	rows[0][0] = true
	if m.Required(0, 0) {
		t.Error("Map should not alias the input rows")
	}
}

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name string
		rows [][]bool
	}{
		{"no rows", nil},
		{"short grid", grid(true)[:Width-1]},
		{"short row", func() [][]bool { g := grid(true); g[5] = g[5][:3]; return g }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows)
			if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
				t.Errorf("New() error = %v, want INVALID_DIMENSIONS", err)
			}
		})
	}
}

func TestRequiredOutOfBounds(t *testing.T) {
	m := Filled()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {Width, 0}, {0, Width}} {
		if m.Required(p[0], p[1]) {
			t.Errorf("Required(%d, %d) = true outside the grid", p[0], p[1])
		}
	}
}

func TestFilledAndBlank(t *testing.T) {
	if got := Filled().Total(); got != Width*Width {
		t.Errorf("Filled().Total() = %d, want %d", got, Width*Width)
	}
	if got := Blank().Total(); got != 0 {
		t.Errorf("Blank().Total() = %d, want 0", got)
	}
}

func TestFromRects(t *testing.T) {
	m := FromRects(image.Rect(0, 0, 7, 7), image.Rect(520, 520, 540, 540))
	if got, want := m.Total(), 49+64; got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Width))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(3, 4, color.RGBA{0x80, 0x80, 0x80, 0xff})
	img.Set(5, 6, color.Black)

	m, err := FromImage(img, color.White)
	if err != nil {
		t.Fatalf("FromImage() error: %v", err)
	}
	if m.Total() != 2 {
		t.Errorf("Total() = %d, want 2", m.Total())
	}
	if !m.Required(4, 3) || !m.Required(6, 5) {
		t.Error("non-background pixels should be required (row, col order)")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(100, 100, 100+Width, 100+Width))
	m, err := FromImage(img, color.White)
	if err != nil {
		t.Fatalf("FromImage() error: %v", err)
	}
	if m.Total() != Width*Width {
		t.Errorf("Total() = %d, want every cell required", m.Total())
	}
}

func TestFromImageDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Width-1))
	_, err := FromImage(img, color.White)
	if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("FromImage() error = %v, want INVALID_DIMENSIONS", err)
	}
}

func TestDecodePNG(t *testing.T) {
	m := FromRects(image.Rect(10, 10, 17, 17))
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.Image()); err != nil {
		t.Fatal(err)
	}

	got, format, err := Decode(&buf, color.White)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if !bytes.Equal(got.Bytes(), m.Bytes()) {
		t.Error("decoded map differs from the encoded silhouette")
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image")), color.White)
	if !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("Decode() error = %v, want INVALID_IMAGE", err)
	}
}

func TestBytes(t *testing.T) {
	a := FromRects(image.Rect(0, 0, 3, 3))
	b := FromRects(image.Rect(0, 0, 3, 3))
	c := FromRects(image.Rect(0, 0, 3, 4))

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("equal maps should have equal bytes")
	}
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Error("different maps should have different bytes")
	}
	if got, want := len(a.Bytes()), 4+Width*Width/8; got != want {
		t.Errorf("len(Bytes()) = %d, want %d", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"00ff00", color.RGBA{0, 0xff, 0, 0xff}, false},
		{"#10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}, false},
		{"White", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"black", color.RGBA{0, 0, 0, 0xff}, false},
		{"#fff", color.RGBA{}, true},
		{"zzzzzz", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("ParseColor(%q) error code = %v", tt.in, errors.GetCode(err))
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.RGBA{0xff, 0x00, 0x10, 0xff}); got != "#ff0010" {
		t.Errorf("FormatColor() = %q", got)
	}
	if got := FormatColor(color.RGBA{1, 2, 3, 4}); got != "#01020304" {
		t.Errorf("FormatColor() = %q", got)
	}
}
