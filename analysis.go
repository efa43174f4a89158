package asciify

import (
	"fmt"
	"math"

	"github.com/wbrown/asciify/imageutil"
)

// AngleBucket is the quantised orientation of the edge through a cell.
type AngleBucket uint8

const (
	// AngleNone marks a cell without a measurable gradient.
	AngleNone AngleBucket = iota
	// AngleHorizontal is an edge running left to right, drawn '-'.
	AngleHorizontal
	// AngleVertical is an edge running top to bottom, drawn '|'.
	AngleVertical
	// AngleDiagonalUp is an edge rising to the right, drawn '/'.
	AngleDiagonalUp
	// AngleDiagonalDown is an edge falling to the right, drawn '\'.
	AngleDiagonalDown
)

// Glyph returns the directional glyph for the bucket, or 0 for AngleNone.
func (b AngleBucket) Glyph() rune {
	switch b {
	case AngleHorizontal:
		return '-'
	case AngleVertical:
		return '|'
	case AngleDiagonalUp:
		return '/'
	case AngleDiagonalDown:
		return '\\'
	}
	return 0
}

func (b AngleBucket) String() string {
	switch b {
	case AngleNone:
		return "none"
	case AngleHorizontal:
		return "horizontal"
	case AngleVertical:
		return "vertical"
	case AngleDiagonalUp:
		return "diagonal-up"
	case AngleDiagonalDown:
		return "diagonal-down"
	}
	return fmt.Sprintf("AngleBucket(%d)", uint8(b))
}

// angleEpsilon is the smallest gradient magnitude that carries a direction.
const angleEpsilon = 1e-3

// BucketForGradient quantises the gradient (dx, dy), with y growing
// downwards, into the orientation of the edge perpendicular to it.
//
// theta = atan2(dy, dx) is folded into [0, 180) and split at 22.5, 67.5,
// 112.5 and 157.5 degrees. Each lower bound is inclusive:
//
//	[0, 22.5) and [157.5, 180)  gradient horizontal  '|'
//	[22.5, 67.5)                gradient down-right  '/'
//	[67.5, 112.5)               gradient vertical    '-'
//	[112.5, 157.5)              gradient down-left   '\'
func BucketForGradient(dx, dy float64) AngleBucket {
	if math.Hypot(dx, dy) < angleEpsilon {
		return AngleNone
	}
	theta := math.Atan2(dy, dx) * 180 / math.Pi
	if theta < 0 {
		theta += 180
	}
	if theta >= 180 {
		theta -= 180
	}
	switch {
	case theta < 22.5 || theta >= 157.5:
		return AngleVertical
	case theta < 67.5:
		return AngleDiagonalUp
	case theta < 112.5:
		return AngleHorizontal
	default:
		return AngleDiagonalDown
	}
}

// AngleGrid holds the edge orientation of every cell.
type AngleGrid struct {
	Rows, Cols int
	Cells      [][]AngleBucket
}

// ComputeAngles measures the luminance gradient of every cell with a
// separable Sobel operator of the given odd size (>= 3, replicated border)
// and quantises it with BucketForGradient.
func ComputeAngles(grid *ColorGrid, kernelSize int) (*AngleGrid, error) {
	lum := make([][]float64, grid.Rows)
	for y, row := range grid.Cells {
		lum[y] = make([]float64, len(row))
		for x, c := range row {
			lum[y][x] = c.Luminance()
		}
	}

	gx, gy, err := imageutil.SobelGradients(lum, kernelSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	out := &AngleGrid{Rows: grid.Rows, Cols: grid.Cols, Cells: make([][]AngleBucket, grid.Rows)}
	for y := 0; y < grid.Rows; y++ {
		out.Cells[y] = make([]AngleBucket, grid.Cols)
		for x := 0; x < grid.Cols; x++ {
			out.Cells[y][x] = BucketForGradient(gx[y][x], gy[y][x])
		}
	}
	return out, nil
}

// EdgeGrid flags the cells that lie on an edge.
type EdgeGrid struct {
	Rows, Cols int
	Cells      [][]bool
}

// Count returns the number of edge cells.
func (g *EdgeGrid) Count() int {
	n := 0
	for _, row := range g.Cells {
		for _, e := range row {
			if e {
				n++
			}
		}
	}
	return n
}

// Image returns the edge mask with edge cells set to 255.
func (g *EdgeGrid) Image() *imageutil.GrayImage {
	img := imageutil.NewGrayImage(g.Cols, g.Rows)
	for y, row := range g.Cells {
		for x, e := range row {
			if e {
				img.SetGrayValue(x, y, 255)
			}
		}
	}
	return img
}

// DetectEdges runs Gaussian smoothing and Canny edge detection over the
// 8-bit grayscale rendition of grid.
func DetectEdges(grid *ColorGrid, blur Blur, thresh Thresholds) (*EdgeGrid, error) {
	if err := blur.validate(); err != nil {
		return nil, err
	}
	if err := thresh.validate(); err != nil {
		return nil, err
	}
	kernel, err := imageutil.GaussianKernel(blur.KernelWidth, blur.KernelHeight, blur.SigmaX, blur.SigmaY)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	gray := imageutil.ToGrayscale(grid.Image())
	edges := imageutil.Canny(imageutil.GaussianBlurGray(gray, kernel), thresh.Low, thresh.High)

	out := &EdgeGrid{Rows: grid.Rows, Cols: grid.Cols, Cells: make([][]bool, grid.Rows)}
	for y := 0; y < grid.Rows; y++ {
		out.Cells[y] = make([]bool, grid.Cols)
		for x := 0; x < grid.Cols; x++ {
			out.Cells[y][x] = edges.GetGray(x, y) != 0
		}
	}
	return out, nil
}
