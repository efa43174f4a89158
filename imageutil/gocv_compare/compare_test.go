// Package gocv_compare contains tests that compare pure Go implementations
// against gocv (OpenCV). These tests require OpenCV to be installed.
//
// Run with: cd imageutil/gocv_compare && go test -v
package gocv_compare

import (
	"image"
	"math"
	"testing"

	"github.com/wbrown/asciify/imageutil"
	"gocv.io/x/gocv"
)

// gocvToRGBA converts a gocv.Mat (BGR) to RGBAImage (RGB).
func gocvToRGBA(mat gocv.Mat) *imageutil.RGBAImage {
	height, width := mat.Rows(), mat.Cols()
	img := imageutil.NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// gocv uses BGR format
			vec := mat.GetVecbAt(y, x)
			img.SetRGB(x, y, imageutil.RGB{R: vec[2], G: vec[1], B: vec[0]})
		}
	}
	return img
}

// gocvGrayToGray converts a gocv.Mat (grayscale) to GrayImage.
func gocvGrayToGray(mat gocv.Mat) *imageutil.GrayImage {
	height, width := mat.Rows(), mat.Cols()
	img := imageutil.NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Gray.Pix[y*img.Stride+x] = mat.GetUCharAt(y, x)
		}
	}
	return img
}

// rgbaToGocv converts an RGBAImage to gocv.Mat (BGR).
func rgbaToGocv(img *imageutil.RGBAImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8UC3)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			// gocv uses BGR format
			mat.SetUCharAt(y, x*3, c.B)
			mat.SetUCharAt(y, x*3+1, c.G)
			mat.SetUCharAt(y, x*3+2, c.R)
		}
	}
	return mat
}

// grayToGocv converts a GrayImage to gocv.Mat (grayscale).
func grayToGocv(img *imageutil.GrayImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8U)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			mat.SetUCharAt(y, x, img.GrayAt(x, y).Y)
		}
	}
	return mat
}

func TestCompareGrayscaleConversion(t *testing.T) {
	img := imageutil.CreateColorBarsImage(256, 256)
	mat := rgbaToGocv(img)
	defer mat.Close()

	grayMat := gocv.NewMat()
	defer grayMat.Close()
	gocv.CvtColor(mat, &grayMat, gocv.ColorBGRToGray)
	gocvGray := gocvGrayToGray(grayMat)

	pureGoGray := imageutil.ToGrayscale(img)

	mse := imageutil.CalculateMSEGray(gocvGray, pureGoGray)
	t.Logf("Grayscale conversion MSE: %f", mse)

	if mse > 1.0 {
		t.Errorf("Grayscale MSE too high: %f (threshold: 1.0)", mse)
	}
}

// OpenCV stores 8-bit HSV as H/2, S*255, V*255.
func TestCompareHSV(t *testing.T) {
	img := imageutil.CreateColorBarsImage(64, 8)
	for x := 0; x < 64; x++ {
		img.SetRGB(x, 4, imageutil.RGB{R: uint8(x * 4), G: uint8(255 - x*3), B: 90})
	}
	mat := rgbaToGocv(img)
	defer mat.Close()

	hsvMat := gocv.NewMat()
	defer hsvMat.Close()
	gocv.CvtColor(mat, &hsvMat, gocv.ColorBGRToHSV)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			hsv := imageutil.RGBToHSV(imageutil.RGBf{R: float64(c.R), G: float64(c.G), B: float64(c.B)})
			vec := hsvMat.GetVecbAt(y, x)

			if d := math.Abs(hsv.V*255 - float64(vec[2])); d > 1 {
				t.Fatalf("(%d,%d) V differs by %f", x, y, d)
			}
			if d := math.Abs(hsv.S*255 - float64(vec[1])); d > 1 {
				t.Fatalf("(%d,%d) S differs by %f", x, y, d)
			}
			if hsv.S == 0 {
				continue
			}
			d := math.Abs(hsv.H/2 - float64(vec[0]))
			if d > 90 {
				d = 180 - d
			}
			if d > 1 {
				t.Fatalf("(%d,%d) H differs by %f", x, y, d)
			}
		}
	}
}

func TestCompareGaussianBlur(t *testing.T) {
	testCases := []struct {
		name   string
		kw, kh int
		sx, sy float64
	}{
		{"Default", 9, 9, 1.5, 1.5},
		{"Anisotropic", 7, 3, 2.0, 0.7},
		{"Small", 3, 3, 0.8, 0.8},
	}

	img := imageutil.ToGrayscale(imageutil.CreateEdgeImage(128, 128))
	mat := grayToGocv(img)
	defer mat.Close()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blurredMat := gocv.NewMat()
			defer blurredMat.Close()
			gocv.GaussianBlur(mat, &blurredMat, image.Point{X: tc.kw, Y: tc.kh}, tc.sx, tc.sy, gocv.BorderReplicate)
			gocvBlurred := gocvGrayToGray(blurredMat)

			kernel, err := imageutil.GaussianKernel(tc.kw, tc.kh, tc.sx, tc.sy)
			if err != nil {
				t.Fatal(err)
			}
			pureGoBlurred := imageutil.GaussianBlurGray(img, kernel)

			mse := imageutil.CalculateMSEGray(gocvBlurred, pureGoBlurred)
			t.Logf("%s blur MSE: %f", tc.name, mse)
			if mse > 1.0 {
				t.Errorf("Blur MSE too high: %f (threshold: 1.0)", mse)
			}
		})
	}
}

// At integer factors INTER_AREA is an exact block mean.
func TestCompareAreaAverage(t *testing.T) {
	testCases := []struct {
		name            string
		srcW, srcH      int
		cols, rows      int
		createImageFunc func(int, int) *imageutil.RGBAImage
	}{
		{"Gradient 4x", 256, 256, 64, 64, imageutil.CreateGradientImage},
		{"ColorBars 5x", 320, 240, 64, 48, imageutil.CreateColorBarsImage},
		{"Edges 10x", 500, 300, 50, 30, imageutil.CreateEdgeImage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := tc.createImageFunc(tc.srcW, tc.srcH)
			mat := rgbaToGocv(img)
			defer mat.Close()

			resizedMat := gocv.NewMat()
			defer resizedMat.Close()
			gocv.Resize(mat, &resizedMat, image.Point{X: tc.cols, Y: tc.rows}, 0, 0, gocv.InterpolationArea)
			gocvResized := gocvToRGBA(resizedMat)

			grid := imageutil.AreaAverage(img, img.Bounds(), tc.cols, tc.rows)
			pureGo := imageutil.NewRGBAImage(tc.cols, tc.rows)
			for r := range grid {
				for c := range grid[r] {
					pureGo.SetRGB(c, r, grid[r][c].RGB())
				}
			}

			maxDiff := imageutil.CalculateMaxDiff(gocvResized, pureGo)
			t.Logf("%s area average max diff: %d", tc.name, maxDiff)
			if maxDiff > 1 {
				t.Errorf("Area average max diff too high: %d (threshold: 1)", maxDiff)
			}
		})
	}
}

func TestCompareCanny(t *testing.T) {
	testCases := []struct {
		name        string
		createImage func(int, int) *imageutil.RGBAImage
		minJaccard  float64
	}{
		// OpenCV uses an L1 magnitude by default, so thin diagonal edges differ.
		{"Edges", imageutil.CreateEdgeImage, 0.4},
		{"Checkerboard", func(w, h int) *imageutil.RGBAImage {
			return imageutil.CreateCheckerboardImage(w, h, 32)
		}, 0.3},
		{"SquareCircle", func(w, h int) *imageutil.RGBAImage {
			img, err := imageutil.CreateSquareCircleImage(w)
			if err != nil {
				t.Fatal(err)
			}
			return img
		}, 0.4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := tc.createImage(256, 256)

			gray := imageutil.ToGrayscale(img)
			grayMat := grayToGocv(gray)
			defer grayMat.Close()

			edgesMat := gocv.NewMat()
			defer edgesMat.Close()
			gocv.Canny(grayMat, &edgesMat, 50, 150)
			gocvEdges := gocvGrayToGray(edgesMat)

			pureGoEdges := imageutil.Canny(gray, 50, 150)

			jaccard := imageutil.CalculateJaccardIndex(gocvEdges, pureGoEdges)
			t.Logf("%s Canny Jaccard index: %f (gocv=%d, pure Go=%d)", tc.name, jaccard,
				imageutil.CountEdges(gocvEdges), imageutil.CountEdges(pureGoEdges))

			if jaccard < tc.minJaccard {
				t.Errorf("Canny Jaccard too low: %f (threshold: %f)", jaccard, tc.minJaccard)
			}
		})
	}
}

func TestCompareEdgePipeline(t *testing.T) {
	img, err := imageutil.CreateSquareCircleImage(500)
	if err != nil {
		t.Fatal(err)
	}
	cols, rows := 50, 50

	mat := rgbaToGocv(img)
	defer mat.Close()
	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(mat, &small, image.Point{X: cols, Y: rows}, 0, 0, gocv.InterpolationArea)
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(small, &gray, gocv.ColorBGRToGray)
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 9, Y: 9}, 1.5, 1.5, gocv.BorderReplicate)
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 200, 300)
	gocvEdges := gocvGrayToGray(edges)

	grid := imageutil.AreaAverage(img, img.Bounds(), cols, rows)
	reduced := imageutil.NewRGBAImage(cols, rows)
	for r := range grid {
		for c := range grid[r] {
			reduced.SetRGB(c, r, grid[r][c].RGB())
		}
	}
	kernel, err := imageutil.GaussianKernel(9, 9, 1.5, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	pureGoEdges := imageutil.Canny(imageutil.GaussianBlurGray(imageutil.ToGrayscale(reduced), kernel), 200, 300)

	jaccard := imageutil.CalculateJaccardIndex(gocvEdges, pureGoEdges)
	t.Logf("Edge pipeline Jaccard index: %f", jaccard)
	if jaccard < 0.4 {
		t.Errorf("Edge pipeline Jaccard too low: %f (threshold: 0.4)", jaccard)
	}
}
