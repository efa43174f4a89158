package asciify

import (
	"math"

	"github.com/wbrown/asciify/imageutil"
)

// Renderer maps analysed cells to glyphs and colours. A Renderer is
// immutable and safe for concurrent use.
type Renderer struct {
	mode    ColorMode
	charset Charset
}

// NewRenderer returns a renderer drawing brightness with charset. A
// charset shorter than two runes falls back to DefaultCharset.
func NewRenderer(mode ColorMode, charset Charset) *Renderer {
	if len(charset) < 2 {
		charset = NewCharset(DefaultCharset)
	}
	cs := make(Charset, len(charset))
	copy(cs, charset)
	return &Renderer{mode: mode, charset: cs}
}

// Mode returns the colour mode.
func (r *Renderer) Mode() ColorMode {
	return r.mode
}

// Render draws every cell with the charset glyph selected by its
// brightness V.
func (r *Renderer) Render(hsv *HSVGrid) *Frame {
	frame := &Frame{Rows: make([][]Glyph, hsv.Rows)}
	for y, row := range hsv.Cells {
		frame.Rows[y] = make([]Glyph, len(row))
		for x, c := range row {
			frame.Rows[y][x] = Glyph{Rune: r.brightnessGlyph(c.V), Color: r.color(c)}
		}
	}
	return frame
}

// RenderWithEdges is Render with edge cells drawn as the directional
// glyph of their angle bucket. Edge cells without a direction and all
// colours are unchanged.
func (r *Renderer) RenderWithEdges(hsv *HSVGrid, angles *AngleGrid, edges *EdgeGrid) *Frame {
	frame := r.Render(hsv)
	for y, row := range frame.Rows {
		for x := range row {
			if !edges.Cells[y][x] {
				continue
			}
			if g := angles.Cells[y][x].Glyph(); g != 0 {
				row[x].Rune = g
			}
		}
	}
	return frame
}

// brightnessGlyph returns charset[floor(v*(n-1))], clamped.
func (r *Renderer) brightnessGlyph(v float64) rune {
	n := len(r.charset)
	i := int(math.Floor(v * float64(n-1)))
	i = max(0, min(i, n-1))
	return r.charset[i]
}

func (r *Renderer) color(c imageutil.HSV) imageutil.RGB {
	if r.mode == ColorModeGrayscale {
		l := uint8(math.Round(math.Max(0, math.Min(c.V, 1)) * 255))
		return imageutil.RGB{R: l, G: l, B: l}
	}
	return imageutil.HSVToRGB(c).RGB()
}
