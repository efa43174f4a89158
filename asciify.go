package asciify

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/wbrown/asciify/imageutil"
)

// DefaultFontAspect is the cell aspect assumed when no Environment is
// supplied.
const DefaultFontAspect = 2.0

// Decoder turns encoded bytes into an image.
type Decoder interface {
	Decode(r io.Reader) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.Reader) (image.Image, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(r io.Reader) (image.Image, error) {
	return f(r)
}

// StandardDecoder decodes PNG, JPEG, GIF, BMP, TIFF and WebP in pure Go.
var StandardDecoder Decoder = DecoderFunc(func(r io.Reader) (image.Image, error) {
	img, _, err := imageutil.Decode(r)
	return img, err
})

// Converter runs the image to text pipeline. It holds only immutable
// collaborators, so one Converter may serve concurrent calls.
type Converter struct {
	env     Environment
	decoder Decoder
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// WithDecoder replaces StandardDecoder.
func WithDecoder(d Decoder) ConverterOption {
	return func(c *Converter) {
		c.decoder = d
	}
}

// NewConverter returns a converter querying env for terminal size and font
// aspect. A nil env behaves like an 80×24 terminal with cells twice as
// tall as wide.
func NewConverter(env Environment, opts ...ConverterOption) *Converter {
	if env == nil {
		env = StaticEnvironment{
			Cols:       DefaultTerminalCols,
			Rows:       DefaultTerminalRows,
			FontAspect: DefaultFontAspect,
		}
	}
	c := &Converter{env: env, decoder: StandardDecoder}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reduction is the analysed form of an image: one entry per output cell
// in every grid.
type Reduction struct {
	Dims   PrintDimensions
	Factor Factor
	Colors *ColorGrid
	HSV    *HSVGrid
	Angles *AngleGrid
	Edges  *EdgeGrid
}

// Reduce validates cfg, sizes the grid and computes every per-cell grid.
func (c *Converter) Reduce(img image.Image, cfg Config) (*Reduction, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := imageutil.RGBAImageFromImage(img)
	srcW, srcH := src.Width(), src.Height()

	dims, derived, err := ComputePrintSize(srcW, srcH, cfg.Width, cfg.Height, c.env, cfg.AspectRatioCorrection)
	if err != nil {
		return nil, err
	}
	k, err := cellAspect(c.env.FontAspectRatio(), cfg.AspectRatioCorrection)
	if err != nil {
		return nil, err
	}

	// Derived dimensions already follow the image aspect, so an exact
	// per-axis factor fills them without distortion.
	keepAspect := cfg.KeepAspectRatio && !derived
	factor := ComputeDownsampleFactor(dims, srcW, srcH, keepAspect, cfg.Fit, k)

	colors := Downsample(src, factor, dims)
	angles, err := ComputeAngles(colors, cfg.AnglesKernelSize)
	if err != nil {
		return nil, err
	}
	edges, err := DetectEdges(colors, cfg.Blur, cfg.Thresholds)
	if err != nil {
		return nil, err
	}

	Logger().Debug("reduced",
		"dims", dims.String(),
		"derived", derived,
		"factor_x", factor.X,
		"factor_y", factor.Y,
		"cell_aspect", k,
		"grid", fmt.Sprintf("%dx%d", colors.Cols, colors.Rows),
		"edges", edges.Count())

	return &Reduction{
		Dims:   dims,
		Factor: factor,
		Colors: colors,
		HSV:    ToHSV(colors),
		Angles: angles,
		Edges:  edges,
	}, nil
}

// Render draws a reduction according to cfg.
func (red *Reduction) Render(cfg Config) *Frame {
	r := NewRenderer(cfg.ColorMode, NewCharset(cfg.Charset))
	if cfg.DetectEdges {
		return r.RenderWithEdges(red.HSV, red.Angles, red.Edges)
	}
	return r.Render(red.HSV)
}

// Convert turns img into a frame.
func (c *Converter) Convert(img image.Image, cfg Config) (*Frame, error) {
	red, err := c.Reduce(img, cfg)
	if err != nil {
		return nil, err
	}
	return red.Render(cfg), nil
}

// Decode reads an image with the converter's decoder. Failures wrap
// ErrDecode.
func (c *Converter) Decode(r io.Reader) (image.Image, error) {
	img, err := c.decoder.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image %v", ErrDecode, b)
	}
	return img, nil
}

// ConvertReader decodes r and converts the image. Decoding happens before
// cfg is validated.
func (c *Converter) ConvertReader(r io.Reader, cfg Config) (*Frame, error) {
	img, err := c.Decode(r)
	if err != nil {
		return nil, err
	}
	return c.Convert(img, cfg)
}

// ConvertFile opens path and converts the image in it. A missing file is
// reported as ErrDecode.
func (c *Converter) ConvertFile(path string, cfg Config) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()
	return c.ConvertReader(f, cfg)
}

// Asciify converts the image at path for the terminal on stdout and
// returns the escaped text.
func Asciify(path string, opts ...Option) (string, error) {
	env, err := NewSystemEnvironment()
	if err != nil {
		return "", err
	}
	frame, err := NewConverter(env).ConvertFile(path, NewConfig(opts...))
	if err != nil {
		return "", err
	}
	return frame.String(), nil
}
