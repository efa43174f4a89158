package imageutil

import (
	"image/color"
	"math"
)

// RGBf is an RGB colour with float channels in [0, 255], used for
// averaged cell colours that must not be quantised early.
type RGBf struct {
	R, G, B float64
}

// RGB rounds the channels to 8 bits.
func (c RGBf) RGB() RGB {
	return RGB{R: clampUint8(c.R), G: clampUint8(c.G), B: clampUint8(c.B)}
}

// Luminance returns the BT.601 luma of c in [0, 255].
func (c RGBf) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// HSV is a colour in the HSV space. H is in degrees [0, 360), S and V are
// in [0, 1].
type HSV struct {
	H, S, V float64
}

// RGBToHSV converts a float RGB colour (channels in [0, 255]) to HSV.
// Achromatic colours get H = 0.
func RGBToHSV(c RGBf) HSV {
	r, g, b := c.R/255, c.G/255, c.B/255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	hsv := HSV{V: maxC}
	if maxC > 0 {
		hsv.S = delta / maxC
	}
	if delta == 0 {
		return hsv
	}

	switch maxC {
	case r:
		hsv.H = 60 * math.Mod((g-b)/delta, 6)
	case g:
		hsv.H = 60 * ((b-r)/delta + 2)
	default:
		hsv.H = 60 * ((r-g)/delta + 4)
	}
	if hsv.H < 0 {
		hsv.H += 360
	}
	if hsv.H >= 360 {
		hsv.H -= 360
	}
	return hsv
}

// HSVToRGB converts an HSV colour back to float RGB in [0, 255].
func HSVToRGB(c HSV) RGBf {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	chroma := c.V * c.S
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := c.V - chroma

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = chroma, x, 0
	case h < 120:
		r, g, b = x, chroma, 0
	case h < 180:
		r, g, b = 0, chroma, x
	case h < 240:
		r, g, b = 0, x, chroma
	case h < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return RGBf{R: (r + m) * 255, G: (g + m) * 255, B: (b + m) * 255}
}

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 standard used by OpenCV's COLOR_BGR2GRAY.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			// Integer math, scaled by 1000
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}
