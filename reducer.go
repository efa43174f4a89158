package asciify

import (
	"fmt"
	"image"
	"math"

	"github.com/wbrown/asciify/imageutil"
)

// PrintDimensions is the size of the output grid in character cells.
type PrintDimensions struct {
	Rows, Cols int
}

func (d PrintDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Factor is the number of source pixels covered by one cell. X is the
// horizontal factor. Y is the vertical factor in corrected units: a cell
// covers Y*Correction source rows, so a uniform factor (X == Y) keeps the
// source proportions once drawn with cells Correction times taller than
// wide.
type Factor struct {
	X, Y       float64
	Correction float64
}

// Uniform reports whether both axes share one factor.
func (f Factor) Uniform() bool {
	return f.X == f.Y
}

// BlockWidth returns the source pixels per cell horizontally.
func (f Factor) BlockWidth() float64 {
	return f.X
}

// BlockHeight returns the source pixels per cell vertically.
func (f Factor) BlockHeight() float64 {
	return f.Y * f.Correction
}

// ColorGrid holds the mean colour of every cell.
type ColorGrid struct {
	Rows, Cols int
	Cells      [][]imageutil.RGBf
}

// Image returns the grid as an opaque image, one pixel per cell.
func (g *ColorGrid) Image() *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(g.Cols, g.Rows)
	for y, row := range g.Cells {
		for x, c := range row {
			img.SetRGB(x, y, c.RGB())
		}
	}
	return img
}

// HSVGrid holds every cell's colour in HSV space.
type HSVGrid struct {
	Rows, Cols int
	Cells      [][]imageutil.HSV
}

// cellAspect is the effective height/width ratio of one drawn cell.
func cellAspect(fontAspect, correction float64) (float64, error) {
	k := fontAspect / correction
	if !(k > 0) || math.IsInf(k, 0) {
		return 0, fmt.Errorf("%w: font aspect %g with correction %g gives cell aspect %g",
			ErrInvalidConfiguration, fontAspect, correction, k)
	}
	return k, nil
}

// ComputePrintSize resolves the output grid size for a srcW×srcH image.
// Zero requests are unset. With both unset the image is fitted inside the
// terminal reported by env; with one set the other follows the image
// aspect, divided by the cell aspect env.FontAspectRatio()/correction;
// with both set they are used as-is. Derived sides truncate toward zero
// and are at least 1.
//
// The bool result reports whether any side was derived, in which case the
// dimensions already carry the image aspect.
func ComputePrintSize(srcW, srcH, reqW, reqH int, env Environment, correction float64) (PrintDimensions, bool, error) {
	if reqW < 0 || reqH < 0 {
		return PrintDimensions{}, false, fmt.Errorf("%w: requested size %dx%d is negative",
			ErrInvalidConfiguration, reqW, reqH)
	}
	if srcW <= 0 || srcH <= 0 {
		return PrintDimensions{}, false, fmt.Errorf("%w: image is %dx%d", ErrDecode, srcW, srcH)
	}
	if reqW > 0 && reqH > 0 {
		return PrintDimensions{Rows: reqH, Cols: reqW}, false, nil
	}
	if env == nil {
		return PrintDimensions{}, false, fmt.Errorf("%w: no environment to derive the print size",
			ErrInvalidConfiguration)
	}

	k, err := cellAspect(env.FontAspectRatio(), correction)
	if err != nil {
		return PrintDimensions{}, false, err
	}
	w, h := float64(srcW), float64(srcH)

	var dims PrintDimensions
	switch {
	case reqW > 0:
		dims = PrintDimensions{Cols: reqW, Rows: int(h / w * float64(reqW) / k)}
	case reqH > 0:
		dims = PrintDimensions{Rows: reqH, Cols: int(w / h * float64(reqH) * k)}
	default:
		cols, rows, err := env.TerminalSize()
		if err != nil {
			return PrintDimensions{}, false, fmt.Errorf("terminal size: %w", err)
		}
		dims = PrintDimensions{Cols: cols, Rows: int(h / w * float64(cols) / k)}
		if dims.Rows > rows {
			dims = PrintDimensions{Rows: rows, Cols: int(w / h * float64(rows) * k)}
		}
	}
	dims.Rows = max(dims.Rows, 1)
	dims.Cols = max(dims.Cols, 1)
	return dims, true, nil
}

// ComputeDownsampleFactor returns the factor mapping a srcW×srcH image
// onto term. The raw factors are fx = srcW/cols and fy = (srcH/rows) /
// correction. With keepAspect they collapse to max(fx, fy) for
// FitInTerminal, so the whole image fits, and to min(fx, fy) for FitExact,
// so the grid is filled and the other axis is cropped. Both factors are
// clamped to at least 1.
func ComputeDownsampleFactor(term PrintDimensions, srcW, srcH int, keepAspect bool, fit FitMode, correction float64) Factor {
	fx := float64(srcW) / float64(term.Cols)
	fy := float64(srcH) / float64(term.Rows) / correction

	if keepAspect {
		f := math.Max(fx, fy)
		if fit == FitExact {
			f = math.Min(fx, fy)
		}
		fx, fy = f, f
	}

	return Factor{
		X:          math.Max(fx, 1),
		Y:          math.Max(fy, 1),
		Correction: correction,
	}
}

// Downsample reduces img to at most term cells by area averaging. The grid
// has round(srcW/X) columns and round(srcH/BlockHeight) rows, capped by
// term and at least 1. The sampled window is the centred region of
// cells×block source pixels, which crops the overflowing axis of a
// FitExact factor; blocks partition the window exactly.
func Downsample(img *imageutil.RGBAImage, f Factor, term PrintDimensions) *ColorGrid {
	srcW, srcH := img.Width(), img.Height()

	cols := gridSide(float64(srcW), f.BlockWidth(), term.Cols)
	rows := gridSide(float64(srcH), f.BlockHeight(), term.Rows)

	winW := min(srcW, int(math.Round(float64(cols)*f.BlockWidth())))
	winH := min(srcH, int(math.Round(float64(rows)*f.BlockHeight())))
	x0 := (srcW - winW) / 2
	y0 := (srcH - winH) / 2
	window := image.Rect(x0, y0, x0+winW, y0+winH)

	Logger().Debug("downsample",
		"src", fmt.Sprintf("%dx%d", srcW, srcH),
		"grid", fmt.Sprintf("%dx%d", cols, rows),
		"window", window.String())

	return &ColorGrid{
		Rows:  rows,
		Cols:  cols,
		Cells: imageutil.AreaAverage(img, window, cols, rows),
	}
}

func gridSide(src, block float64, limit int) int {
	n := int(math.Round(src / block))
	return max(min(n, limit), 1)
}

// ToHSV converts every cell of grid to HSV.
func ToHSV(grid *ColorGrid) *HSVGrid {
	out := &HSVGrid{Rows: grid.Rows, Cols: grid.Cols, Cells: make([][]imageutil.HSV, grid.Rows)}
	for y, row := range grid.Cells {
		out.Cells[y] = make([]imageutil.HSV, len(row))
		for x, c := range row {
			out.Cells[y][x] = imageutil.RGBToHSV(c)
		}
	}
	return out
}
