// Package imageutil provides the pure Go image operations behind the
// asciify pipeline: opaque RGB and grayscale image wrappers, colour space
// conversion, convolution, Gaussian smoothing, Sobel gradients, Canny edge
// detection and area-average reduction.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB, discarding alpha. The
// channels are taken un-premultiplied so a translucent pixel keeps its
// stored colour rather than being darkened.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// Every pixel is opaque.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an opaque RGBAImage
// whose origin is (0, 0). The alpha channel of the source is dropped.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rgba := NewRGBAImage(width, height)

	switch src := img.(type) {
	case *RGBAImage:
		copyDroppingAlpha(rgba, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), true)
	case *image.NRGBA:
		copyDroppingAlpha(rgba, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), false)
	case *image.RGBA:
		copyDroppingAlpha(rgba, src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), true)
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				rgba.SetRGB(x, y, RGBFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
			}
		}
	}
	return rgba
}

// copyDroppingAlpha copies 4-byte pixels row by row, forcing alpha to 255.
// Premultiplied sources are divided back out before alpha is dropped.
func copyDroppingAlpha(dst *RGBAImage, pix []uint8, stride, offset int, premultiplied bool) {
	width, height := dst.Width(), dst.Height()
	for y := 0; y < height; y++ {
		s := pix[offset+y*stride : offset+y*stride+width*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for i := 0; i < len(s); i += 4 {
			r, g, b, a := s[i], s[i+1], s[i+2], s[i+3]
			if premultiplied && a != 255 {
				r, g, b = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
			}
			d[i], d[i+1], d[i+2], d[i+3] = r, g, b, 255
		}
	}
}

func unpremultiply(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// GrayImage wraps image.Gray for single-channel images (e.g., edge maps).
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Gray.SetGray(x, y, color.Gray{Y: v})
}

// Float returns the pixel values as a row-major float grid.
func (img *GrayImage) Float() [][]float64 {
	width, height := img.Width(), img.Height()
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			out[y][x] = float64(img.Pix[y*img.Stride+x])
		}
	}
	return out
}
