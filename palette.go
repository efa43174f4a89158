package asciify

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wbrown/asciify/imageutil"
)

// PaletteEntry is one indexed terminal colour.
type PaletteEntry struct {
	Code  int
	Color imageutil.RGB
}

// Palette finds the nearest entry of a fixed colour palette through a
// KD-tree over RGB space. A Palette is read-only once built.
type Palette struct {
	entries []PaletteEntry
	root    *colorNode
}

// colorNode is a KD-tree node split on the channel of largest variance.
type colorNode struct {
	entry       PaletteEntry
	left, right *colorNode
	axis        int
}

// cubeLevels are the channel values of the xterm 6x6x6 colour cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Xterm256 returns the fixed part of the xterm 256-colour palette: the
// colour cube (16-231) and the gray ramp (232-255). The 16 system colours
// are left out since terminals remap them.
func Xterm256() *Palette {
	entries := make([]PaletteEntry, 0, 240)
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				entries = append(entries, PaletteEntry{
					Code:  16 + 36*r + 6*g + b,
					Color: imageutil.RGB{R: cubeLevels[r], G: cubeLevels[g], B: cubeLevels[b]},
				})
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		entries = append(entries, PaletteEntry{Code: 232 + i, Color: imageutil.RGB{R: v, G: v, B: v}})
	}
	return NewPalette(entries)
}

// NewPalette builds a palette from entries. The slice is copied.
func NewPalette(entries []PaletteEntry) *Palette {
	own := append([]PaletteEntry(nil), entries...)
	work := append([]PaletteEntry(nil), entries...)
	return &Palette{entries: own, root: buildKDTree(work)}
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

func buildKDTree(entries []PaletteEntry) *colorNode {
	if len(entries) == 0 {
		return nil
	}
	axis := chooseSplitAxis(entries)
	sort.Slice(entries, func(i, j int) bool {
		return channel(entries[i].Color, axis) < channel(entries[j].Color, axis)
	})

	median := len(entries) / 2
	return &colorNode{
		entry: entries[median],
		left:  buildKDTree(entries[:median]),
		right: buildKDTree(entries[median+1:]),
		axis:  axis,
	}
}

// chooseSplitAxis returns the channel (0 R, 1 G, 2 B) with the largest
// variance.
func chooseSplitAxis(entries []PaletteEntry) int {
	var mean, variance [3]float64
	for _, e := range entries {
		for a := 0; a < 3; a++ {
			mean[a] += float64(channel(e.Color, a))
		}
	}
	for a := range mean {
		mean[a] /= float64(len(entries))
	}
	for _, e := range entries {
		for a := 0; a < 3; a++ {
			d := float64(channel(e.Color, a)) - mean[a]
			variance[a] += d * d
		}
	}

	if variance[0] > variance[1] && variance[0] > variance[2] {
		return 0
	} else if variance[1] > variance[2] {
		return 1
	}
	return 2
}

func channel(c imageutil.RGB, axis int) int {
	switch axis {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

func distanceSq(a, b imageutil.RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Nearest returns the entry closest to c by Euclidean RGB distance. Ties
// go to the lower code. It panics on an empty palette.
func (p *Palette) Nearest(c imageutil.RGB) PaletteEntry {
	if p.root == nil {
		panic("asciify: Nearest on empty palette")
	}
	best, _ := p.root.nearest(c, nil, math.MaxInt)
	return best.entry
}

func (n *colorNode) nearest(target imageutil.RGB, best *colorNode, bestDist int) (*colorNode, int) {
	if n == nil {
		return best, bestDist
	}

	if d := distanceSq(n.entry.Color, target); d < bestDist ||
		(d == bestDist && n.entry.Code < best.entry.Code) {
		best, bestDist = n, d
	}

	delta := channel(target, n.axis) - channel(n.entry.Color, n.axis)
	next, other := n.left, n.right
	if delta >= 0 {
		next, other = n.right, n.left
	}

	best, bestDist = next.nearest(target, best, bestDist)
	// The far side can only hold a closer (or tied) colour when the
	// splitting plane is within the current best radius.
	if delta*delta <= bestDist {
		best, bestDist = other.nearest(target, best, bestDist)
	}
	return best, bestDist
}

// Quantized serialises the frame with 256-colour foreground escapes
// (ESC[38;5;Nm) from p, for terminals without true colour. An escape is
// emitted only when the code changes within a row.
func (f *Frame) Quantized(p *Palette) string {
	cache := make(map[imageutil.RGB]int)
	var b strings.Builder
	for _, row := range f.Rows {
		prev := -1
		for _, g := range row {
			code, ok := cache[g.Color]
			if !ok {
				code = p.Nearest(g.Color).Code
				cache[g.Color] = code
			}
			if code != prev {
				fmt.Fprintf(&b, "%s[38;5;%dm", ESC, code)
				prev = code
			}
			b.WriteRune(g.Rune)
		}
		b.WriteString(ESC + "[0m\n")
	}
	return b.String()
}
