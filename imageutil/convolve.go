package imageutil

import (
	"fmt"
	"math"
)

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// RowKernel creates a 1×n kernel.
func RowKernel(values []float64) *Kernel {
	return NewKernel([][]float64{values})
}

// ColumnKernel creates an n×1 kernel.
func ColumnKernel(values []float64) *Kernel {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return NewKernel(rows)
}

// Gaussian1D returns a normalised Gaussian of the given odd size and
// sigma, centred on the middle tap. This is the same construction as
// OpenCV's getGaussianKernel for an explicit sigma.
func Gaussian1D(size int, sigma float64) []float64 {
	values := make([]float64, size)
	center := float64(size-1) / 2
	var sum float64
	for i := range values {
		d := float64(i) - center
		values[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += values[i]
	}
	for i := range values {
		values[i] /= sum
	}
	return values
}

// GaussianKernel returns the 2D Gaussian kernel of size width×height with
// independent sigmas per axis. Both sizes must be odd and positive and both
// sigmas positive.
func GaussianKernel(width, height int, sigmaX, sigmaY float64) (*Kernel, error) {
	if width <= 0 || height <= 0 || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("gaussian kernel size must be odd and positive, got %dx%d", width, height)
	}
	if sigmaX <= 0 || sigmaY <= 0 {
		return nil, fmt.Errorf("gaussian sigma must be positive, got %g, %g", sigmaX, sigmaY)
	}
	gx := Gaussian1D(width, sigmaX)
	gy := Gaussian1D(height, sigmaY)
	values := make([][]float64, height)
	for y := range values {
		values[y] = make([]float64, width)
		for x := range values[y] {
			values[y][x] = gy[y] * gx[x]
		}
	}
	return NewKernel(values), nil
}

// SobelKernels returns the separable first-derivative and smoothing taps
// of a Sobel operator of odd size >= 3. For size 3 these are {-1, 0, 1}
// and {1, 2, 1}.
func SobelKernels(size int) (derivative, smoothing []float64, err error) {
	if size < 3 || size%2 == 0 {
		return nil, nil, fmt.Errorf("sobel kernel size must be odd and >= 3, got %d", size)
	}
	smoothing = binomial(size - 1)
	base := binomial(size - 2)
	derivative = make([]float64, size)
	for i, v := range base {
		derivative[i] -= v
		derivative[i+1] += v
	}
	return derivative, smoothing, nil
}

// binomial returns the coefficients of (1+z)^order.
func binomial(order int) []float64 {
	row := []float64{1}
	for n := 0; n < order; n++ {
		next := make([]float64, len(row)+1)
		for i, v := range row {
			next[i] += v
			next[i+1] += v
		}
		row = next
	}
	return row
}

// ConvolveGray applies a convolution kernel to a grayscale image.
// Border pixels are handled by replicating edge values.
func ConvolveGray(img *GrayImage, kernel *Kernel) *GrayImage {
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64

			for ky := 0; ky < kernel.Height; ky++ {
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfKW, 0, width-1)
					sy := clampInt(y+ky-halfKH, 0, height-1)

					v := img.GrayAt(sx, sy).Y
					k := kernel.Values[ky][kx]

					sum += float64(v) * k
				}
			}

			dst.Gray.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}

	return dst
}

// ConvolveGrayFloat applies a convolution kernel to a grayscale float image.
// Returns float values without clamping.
func ConvolveGrayFloat(img [][]float64, kernel *Kernel) [][]float64 {
	height := len(img)
	if height == 0 {
		return nil
	}
	width := len(img[0])

	dst := make([][]float64, height)
	for y := 0; y < height; y++ {
		dst[y] = make([]float64, width)
	}

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64

			for ky := 0; ky < kernel.Height; ky++ {
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfKW, 0, width-1)
					sy := clampInt(y+ky-halfKH, 0, height-1)

					sum += img[sy][sx] * kernel.Values[ky][kx]
				}
			}

			dst[y][x] = sum
		}
	}

	return dst
}

// GaussianBlurGray applies a Gaussian blur to a grayscale image.
func GaussianBlurGray(img *GrayImage, kernel *Kernel) *GrayImage {
	return ConvolveGray(img, kernel)
}

// SobelGradients returns the horizontal and vertical derivatives of a
// float image using a separable Sobel operator of the given size.
func SobelGradients(img [][]float64, size int) (gx, gy [][]float64, err error) {
	derivative, smoothing, err := SobelKernels(size)
	if err != nil {
		return nil, nil, err
	}
	gx = ConvolveGrayFloat(ConvolveGrayFloat(img, RowKernel(derivative)), ColumnKernel(smoothing))
	gy = ConvolveGrayFloat(ConvolveGrayFloat(img, ColumnKernel(derivative)), RowKernel(smoothing))
	return gx, gy, nil
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
