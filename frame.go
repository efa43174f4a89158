package asciify

import (
	"fmt"
	"io"
	"strings"

	"github.com/wbrown/asciify/imageutil"
)

// ESC is the escape character that starts every SGR sequence.
const ESC = "\u001b"

// Glyph is one drawn cell.
type Glyph struct {
	Rune  rune
	Color imageutil.RGB
}

// Frame is a rendered grid of glyphs.
type Frame struct {
	Rows [][]Glyph
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	if len(f.Rows) == 0 {
		return 0
	}
	return len(f.Rows[0])
}

// Height returns the number of rows.
func (f *Frame) Height() int {
	return len(f.Rows)
}

func writeColor(b *strings.Builder, c imageutil.RGB) {
	fmt.Fprintf(b, "%s[38;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// String serialises the frame with a true-colour foreground escape before
// every glyph. Each row ends with a reset and a newline.
func (f *Frame) String() string {
	var b strings.Builder
	for _, row := range f.Rows {
		for _, g := range row {
			writeColor(&b, g.Color)
			b.WriteRune(g.Rune)
		}
		b.WriteString(ESC + "[0m\n")
	}
	return b.String()
}

// Compact serialises the frame like String but emits a colour escape only
// when the colour changes within a row. The terminal output is identical.
func (f *Frame) Compact() string {
	var b strings.Builder
	for _, row := range f.Rows {
		for i, g := range row {
			if i == 0 || g.Color != row[i-1].Color {
				writeColor(&b, g.Color)
			}
			b.WriteRune(g.Rune)
		}
		b.WriteString(ESC + "[0m\n")
	}
	return b.String()
}

// Text returns the glyphs alone, one line per row.
func (f *Frame) Text() string {
	var b strings.Builder
	for _, row := range f.Rows {
		for _, g := range row {
			b.WriteRune(g.Rune)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes String() to w.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}
