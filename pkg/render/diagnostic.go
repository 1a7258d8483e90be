package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/plan"
)

// Palette of a diagnostic image.
var (
	Background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Required   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	Struck     = [2]color.RGBA{{0xc0, 0xc0, 0xc0, 0xff}, {0x80, 0x80, 0x80, 0xff}}
	Miss       = color.RGBA{0xff, 0xff, 0x00, 0xff}
	Center     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	CaptionBg  = color.RGBA{0x20, 0x20, 0x20, 0xff}
	CaptionFg  = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
)

// CaptionHeight is the height in pixels of the caption strip.
const CaptionHeight = 18

// MaxScale bounds the scale factor.
const MaxScale = 8

// Option configures Diagnostic.
type Option func(*renderer)

type renderer struct {
	scale   int
	caption bool
}

// WithScale enlarges every cell to n×n pixels. Values outside [1, MaxScale]
// are clamped.
func WithScale(n int) Option {
	return func(r *renderer) { r.scale = min(max(n, 1), MaxScale) }
}

// WithCaption adds a strip below the map with the candidate and its metrics.
func WithCaption() Option { return func(r *renderer) { r.caption = true } }

// Diagnostic draws res over m.
func Diagnostic(m *coverage.Map, res *plan.Result, opts ...Option) *image.RGBA {
	r := renderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	base := image.NewRGBA(image.Rect(0, 0, coverage.Width, coverage.Width))
	for row := 0; row < coverage.Width; row++ {
		for col := 0; col < coverage.Width; col++ {
			req := m.Required(row, col)
			var c color.RGBA
			switch {
			case res.Struck.Struck(row, col) && !req:
				c = Miss
			case res.Struck.Struck(row, col):
				c = Struck[(row+col)%2]
			case req:
				c = Required
			default:
				c = Background
			}
			base.SetRGBA(col, row, c)
		}
	}
	for _, s := range res.Shots {
		base.SetRGBA(s.Col, s.Row, Center)
	}

	size := coverage.Width * r.scale
	height := size
	if r.caption {
		height += CaptionHeight
	}
	out := base
	if r.scale != 1 || r.caption {
		out = image.NewRGBA(image.Rect(0, 0, size, height))
		xdraw.NearestNeighbor.Scale(out, image.Rect(0, 0, size, size), base, base.Bounds(), draw.Src, nil)
	}
	if r.caption {
		drawCaption(out, image.Rect(0, size, size, height), Caption(res))
	}
	return out
}

// Caption is the one-line metric summary drawn by WithCaption.
func Caption(res *plan.Result) string {
	return fmt.Sprintf("%s  shots %d  acc %.2f%%  eff %.2f%%  miss %d",
		res.Candidate, res.ShotCount, res.Accuracy, res.Efficiency, res.Miss)
}

func drawCaption(dst *image.RGBA, strip image.Rectangle, text string) {
	draw.Draw(dst, strip, image.NewUniform(CaptionBg), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(CaptionFg),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(strip.Min.X+4, strip.Max.Y-5),
	}
	d.DrawString(text)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
