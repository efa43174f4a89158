package asciify

import (
	"math/rand"
	"testing"

	"github.com/wbrown/asciify/imageutil"
)

func bruteNearest(entries []PaletteEntry, c imageutil.RGB) PaletteEntry {
	best := entries[0]
	bestDist := distanceSq(best.Color, c)
	for _, e := range entries[1:] {
		d := distanceSq(e.Color, c)
		if d < bestDist || (d == bestDist && e.Code < best.Code) {
			best, bestDist = e, d
		}
	}
	return best
}

func TestXterm256Entries(t *testing.T) {
	t.Parallel()
	p := Xterm256()
	if p.Len() != 240 {
		t.Fatalf("Len = %d, want 240", p.Len())
	}

	tests := []struct {
		color imageutil.RGB
		code  int
	}{
		{imageutil.RGB{R: 0, G: 0, B: 0}, 16},
		{imageutil.RGB{R: 255, G: 0, B: 0}, 196},
		{imageutil.RGB{R: 0, G: 255, B: 0}, 46},
		{imageutil.RGB{R: 255, G: 255, B: 255}, 231},
		{imageutil.RGB{R: 128, G: 128, B: 128}, 244},
		{imageutil.RGB{R: 8, G: 8, B: 8}, 232},
	}
	for _, tt := range tests {
		if got := p.Nearest(tt.color).Code; got != tt.code {
			t.Errorf("Nearest(%v) = %d, want %d", tt.color, got, tt.code)
		}
	}
}

func TestPaletteNearestMatchesBruteForce(t *testing.T) {
	t.Parallel()
	p := Xterm256()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		c := imageutil.RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
		got := p.Nearest(c)
		want := bruteNearest(p.entries, c)
		if got != want {
			t.Fatalf("Nearest(%v) = %+v, want %+v", c, got, want)
		}
	}
}

func TestPaletteTiesGoToLowerCode(t *testing.T) {
	t.Parallel()
	p := NewPalette([]PaletteEntry{
		{Code: 9, Color: imageutil.RGB{R: 20}},
		{Code: 3, Color: imageutil.RGB{R: 0}},
		{Code: 5, Color: imageutil.RGB{R: 100}},
	})
	if got := p.Nearest(imageutil.RGB{R: 10}).Code; got != 3 {
		t.Errorf("tie resolved to %d, want 3", got)
	}
}

func TestFrameQuantized(t *testing.T) {
	t.Parallel()
	red := imageutil.RGB{R: 250, G: 5, B: 5}
	f := &Frame{Rows: [][]Glyph{
		{{Rune: '@', Color: red}, {Rune: '#', Color: red}, {Rune: '.', Color: imageutil.RGB{R: 128, G: 128, B: 128}}},
		{{Rune: 'x', Color: red}},
	}}
	want := ESC + "[38;5;196m@#" + ESC + "[38;5;244m." + ESC + "[0m\n" +
		ESC + "[38;5;196mx" + ESC + "[0m\n"
	if got := f.Quantized(Xterm256()); got != want {
		t.Errorf("Quantized = %q, want %q", got, want)
	}
}
