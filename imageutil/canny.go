package imageutil

import "math"

// Canny performs Canny edge detection on a grayscale image that has
// already been smoothed by the caller. Gradients come from a 3×3 Sobel
// operator and magnitudes use the L2 norm. Pixels whose suppressed
// magnitude reaches highThreshold are strong edges; pixels between the
// thresholds survive only when connected to a strong edge.
//
// The result has the same size as gray with edge pixels set to 255.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()

	gx, gy, _ := SobelGradients(gray.Float(), 3)

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			magnitude[y][x] = math.Hypot(gx[y][x], gy[y][x])
			direction[y][x] = math.Atan2(gy[y][x], gx[y][x])
		}
	}

	suppressed := nonMaxSuppression(magnitude, direction, width, height)
	strong, weak := doubleThreshold(suppressed, lowThreshold, highThreshold, width, height)
	return hysteresis(strong, weak, width, height)
}

// nonMaxSuppression performs non-maximum suppression on edge magnitudes.
// Only keeps pixels that are local maxima along the gradient direction.
// The one pixel border is always suppressed.
func nonMaxSuppression(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			angle := direction[y][x] * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q = magnitude[y][x+1]
				r = magnitude[y][x-1]
			case angle < 67.5:
				q = magnitude[y+1][x+1]
				r = magnitude[y-1][x-1]
			case angle < 112.5:
				q = magnitude[y+1][x]
				r = magnitude[y-1][x]
			default:
				q = magnitude[y+1][x-1]
				r = magnitude[y-1][x+1]
			}

			if mag >= q && mag >= r {
				suppressed[y][x] = mag
			}
		}
	}

	return suppressed
}

// doubleThreshold classifies edges as strong or weak based on thresholds.
func doubleThreshold(suppressed [][]float64, low, high float64, width, height int) (strong, weak [][]bool) {
	strong = make([][]bool, height)
	weak = make([][]bool, height)

	for y := 0; y < height; y++ {
		strong[y] = make([]bool, width)
		weak[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val == 0 {
				continue
			}
			if val >= high {
				strong[y][x] = true
			} else if val >= low {
				weak[y][x] = true
			}
		}
	}

	return strong, weak
}

// hysteresis performs edge tracking by hysteresis.
// Weak edges are kept only if they are 8-connected to strong edges.
func hysteresis(strong, weak [][]bool, width, height int) *GrayImage {
	edges := NewGrayImage(width, height)

	type point struct{ x, y int }
	var stack []point

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if strong[y][x] {
				edges.Pix[y*edges.Stride+x] = 255
				stack = append(stack, point{x, y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				if weak[ny][nx] && edges.Pix[ny*edges.Stride+nx] == 0 {
					edges.Pix[ny*edges.Stride+nx] = 255
					stack = append(stack, point{nx, ny})
				}
			}
		}
	}

	return edges
}

// CountEdges returns the number of edge pixels in an edge map.
func CountEdges(edges *GrayImage) int {
	n := 0
	for y := 0; y < edges.Height(); y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+edges.Width()]
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
