package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality, and the right choice for enlarging
	// cell grids so each cell stays a crisp block.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}

// ResizeGray resizes a grayscale image to the specified dimensions.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	dst := NewGrayImage(width, height)
	interp.scaler().Scale(dst.Gray, dst.Bounds(), img.Gray, img.Bounds(), draw.Over, nil)
	return dst
}

// BlockBounds splits the half-open span [start, start+length) into n
// consecutive blocks and returns the n+1 boundaries. Block i covers
// [b[i], b[i+1]); the last block ends exactly at start+length, so any
// remainder pixels are absorbed rather than dropped.
func BlockBounds(start, length, n int) []int {
	b := make([]int, n+1)
	for i := 0; i < n; i++ {
		b[i] = start + i*length/n
	}
	b[n] = start + length
	return b
}

// AreaAverage reduces the window of img to a rows×cols grid where each
// cell is the per-channel mean of the source pixels in its block. Blocks
// are laid out with BlockBounds. When the window is smaller than the grid
// along an axis, neighbouring cells share the nearest source pixel.
func AreaAverage(img *RGBAImage, window image.Rectangle, cols, rows int) [][]RGBf {
	window = window.Intersect(img.Bounds())
	xs := BlockBounds(window.Min.X, window.Dx(), cols)
	ys := BlockBounds(window.Min.Y, window.Dy(), rows)

	out := make([][]RGBf, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]RGBf, cols)
		y0, y1 := ys[r], ys[r+1]
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for c := 0; c < cols; c++ {
			x0, x1 := xs[c], xs[c+1]
			if x1 <= x0 {
				x1 = x0 + 1
			}
			out[r][c] = blockMean(img, x0, y0, x1, y1)
		}
	}
	return out
}

func blockMean(img *RGBAImage, x0, y0, x1, y1 int) RGBf {
	var sr, sg, sb uint64
	for y := y0; y < y1; y++ {
		row := img.Pix[y*img.Stride:]
		for x := x0; x < x1; x++ {
			i := x * 4
			sr += uint64(row[i])
			sg += uint64(row[i+1])
			sb += uint64(row[i+2])
		}
	}
	n := float64((x1 - x0) * (y1 - y0))
	return RGBf{R: float64(sr) / n, G: float64(sg) / n, B: float64(sb) / n}
}
