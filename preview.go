package asciify

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/asciify/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// PreviewOptions controls RenderPreview.
type PreviewOptions struct {
	// Font draws the glyphs. Nil selects Go Mono.
	Font *truetype.Font
	// Size is the point size at 72 DPI. Zero selects DefaultFontSize.
	Size float64
	// Scale resizes the finished image when it is neither 0 nor 1.
	Scale float64
	// Background fills cells. Nil selects black.
	Background color.Color
}

// RenderPreview draws frame as a raster image, each glyph in its colour,
// the way a terminal with the given font would show it.
func RenderPreview(frame *Frame, opts PreviewOptions) (*imageutil.RGBAImage, error) {
	f := opts.Font
	if f == nil {
		var err error
		if f, err = DefaultFont(); err != nil {
			return nil, err
		}
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	cell := MeasureCell(f, size)
	if cell.Width == 0 || cell.Height == 0 {
		return nil, fmt.Errorf("font has an empty cell at size %g", size)
	}

	dst := imageutil.NewRGBAImage(frame.Width()*cell.Width, frame.Height()*cell.Height)
	draw.Draw(dst.RGBA, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst.RGBA)
	ctx.SetHinting(font.HintingFull)

	for y, row := range frame.Rows {
		for x, g := range row {
			if g.Rune == ' ' {
				continue
			}
			ctx.SetSrc(image.NewUniform(g.Color.ToColor()))
			pt := freetype.Pt(x*cell.Width, y*cell.Height+cell.Baseline)
			if _, err := ctx.DrawString(string(g.Rune), pt); err != nil {
				return nil, fmt.Errorf("draw %q at %d,%d: %w", g.Rune, x, y, err)
			}
		}
	}

	if opts.Scale > 0 && opts.Scale != 1 {
		w := max(1, int(float64(dst.Width())*opts.Scale))
		h := max(1, int(float64(dst.Height())*opts.Scale))
		dst = imageutil.Resize(dst, w, h, imageutil.InterpolationLinear)
	}
	return dst, nil
}
