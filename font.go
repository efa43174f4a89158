package asciify

import (
	"fmt"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultFontSize is the point size used to measure and draw glyphs.
const DefaultFontSize = 16

// CellMetrics describes one character cell of a monospace face in pixels.
type CellMetrics struct {
	Width    int // advance of 'M'
	Height   int // ascent + descent
	Baseline int // ascent
}

// Aspect returns Height / Width.
func (m CellMetrics) Aspect() float64 {
	if m.Width == 0 {
		return 0
	}
	return float64(m.Height) / float64(m.Width)
}

// LoadFont parses a TrueType font.
func LoadFont(ttf []byte) (*truetype.Font, error) {
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// DefaultFont returns the Go Mono face.
func DefaultFont() (*truetype.Font, error) {
	return LoadFont(gomono.TTF)
}

// MeasureCell measures the character cell of f at the given point size
// and 72 DPI.
func MeasureCell(f *truetype.Font, size float64) CellMetrics {
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	metrics := face.Metrics()
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance, _ = face.GlyphAdvance(' ')
	}
	return CellMetrics{
		Width:    advance.Ceil(),
		Height:   (metrics.Ascent + metrics.Descent).Ceil(),
		Baseline: metrics.Ascent.Ceil(),
	}
}

// MeasureFontAspect returns the height/width ratio of a character cell
// of the TrueType font ttf.
func MeasureFontAspect(ttf []byte, size float64) (float64, error) {
	f, err := LoadFont(ttf)
	if err != nil {
		return 0, err
	}
	m := MeasureCell(f, size)
	if m.Width == 0 || m.Height == 0 {
		return 0, fmt.Errorf("font has an empty cell at size %g", size)
	}
	return m.Aspect(), nil
}
