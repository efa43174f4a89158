package asciify

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ColorMode selects how cell colours are emitted.
type ColorMode int

const (
	// ColorModeColor emits the cell's average colour.
	ColorModeColor ColorMode = iota
	// ColorModeGrayscale emits a gray level equal to the cell's brightness.
	ColorModeGrayscale
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeColor:
		return "color"
	case ColorModeGrayscale:
		return "grayscale"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode parses "color" or "grayscale" (also "gray"/"grey").
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "color", "colour":
		return ColorModeColor, nil
	case "grayscale", "greyscale", "gray", "grey":
		return ColorModeGrayscale, nil
	}
	return 0, fmt.Errorf("%w: unknown color mode %q", ErrInvalidConfiguration, s)
}

// FitMode selects how the downsample factor is chosen when the aspect
// ratio is kept.
type FitMode int

const (
	// FitInTerminal uses the larger factor so the whole image fits.
	FitInTerminal FitMode = iota
	// FitExact uses the smaller factor so the grid is filled and the
	// overflowing axis is cropped around the centre.
	FitExact
)

func (m FitMode) String() string {
	switch m {
	case FitInTerminal:
		return "in_terminal"
	case FitExact:
		return "exact"
	default:
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
}

// ParseFitMode parses "in_terminal" or "exact".
func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in_terminal", "in-terminal", "fit":
		return FitInTerminal, nil
	case "exact", "fill":
		return FitExact, nil
	}
	return 0, fmt.Errorf("%w: unknown fit mode %q", ErrInvalidConfiguration, s)
}

// Blur holds the Gaussian smoothing applied before edge detection.
type Blur struct {
	KernelWidth, KernelHeight int
	SigmaX, SigmaY            float64
}

// DefaultBlur returns a 9×9 kernel with sigma 1.5 on both axes.
func DefaultBlur() Blur {
	return Blur{KernelWidth: 9, KernelHeight: 9, SigmaX: 1.5, SigmaY: 1.5}
}

func (b Blur) validate() error {
	if b.KernelWidth <= 0 || b.KernelHeight <= 0 || b.KernelWidth%2 == 0 || b.KernelHeight%2 == 0 {
		return fmt.Errorf("%w: blur kernel must be odd and positive, got %dx%d",
			ErrInvalidConfiguration, b.KernelWidth, b.KernelHeight)
	}
	if b.SigmaX <= 0 || b.SigmaY <= 0 {
		return fmt.Errorf("%w: blur sigma must be positive, got %g, %g",
			ErrInvalidConfiguration, b.SigmaX, b.SigmaY)
	}
	return nil
}

// Thresholds are the Canny hysteresis thresholds.
type Thresholds struct {
	Low, High float64
}

// DefaultThresholds returns (200, 300).
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 200, High: 300}
}

func (t Thresholds) validate() error {
	if t.Low < 0 || t.High < 0 {
		return fmt.Errorf("%w: canny thresholds must not be negative, got (%g, %g)",
			ErrInvalidConfiguration, t.Low, t.High)
	}
	if t.Low >= t.High {
		return fmt.Errorf("%w: canny low threshold %g must be below high threshold %g",
			ErrInvalidConfiguration, t.Low, t.High)
	}
	return nil
}

// Charset is an ordered glyph ramp. Index 0 is drawn for the darkest
// cells and the last rune for the brightest.
type Charset []rune

// DefaultCharset is the brightness ramp used when none is configured. It
// contains none of the edge glyphs so edge cells stay distinguishable.
const DefaultCharset = " .,:;irsXA253hMHGS#9B&@"

// NewCharset splits s into runes.
func NewCharset(s string) Charset {
	return Charset([]rune(s))
}

// Config holds every knob of a conversion. The zero value is not usable;
// build one with NewConfig.
type Config struct {
	// Width and Height request the grid size in characters. Zero means
	// unset: the missing side is derived from the image aspect, and with
	// both unset the terminal size is used.
	Width, Height int

	ColorMode       ColorMode
	DetectEdges     bool
	KeepAspectRatio bool
	Fit             FitMode
	Blur            Blur
	Thresholds      Thresholds

	// AnglesKernelSize is the Sobel aperture used for edge orientation.
	AnglesKernelSize int

	// AspectRatioCorrection divides the font aspect to obtain the
	// effective cell aspect.
	AspectRatioCorrection float64

	Charset string
}

// Option is a functional option for configuring a conversion.
type Option func(*Config)

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		ColorMode:             ColorModeColor,
		KeepAspectRatio:       true,
		Fit:                   FitInTerminal,
		Blur:                  DefaultBlur(),
		Thresholds:            DefaultThresholds(),
		AnglesKernelSize:      3,
		AspectRatioCorrection: 1.10,
		Charset:               DefaultCharset,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWidth requests the grid width in characters.
func WithWidth(width int) Option {
	return func(c *Config) {
		c.Width = width
	}
}

// WithHeight requests the grid height in characters.
func WithHeight(height int) Option {
	return func(c *Config) {
		c.Height = height
	}
}

// WithColorMode sets the colour mode.
func WithColorMode(mode ColorMode) Option {
	return func(c *Config) {
		c.ColorMode = mode
	}
}

// WithEdges enables directional glyphs on detected edges.
func WithEdges(enabled bool) Option {
	return func(c *Config) {
		c.DetectEdges = enabled
	}
}

// WithKeepAspectRatio toggles uniform downsampling.
func WithKeepAspectRatio(keep bool) Option {
	return func(c *Config) {
		c.KeepAspectRatio = keep
	}
}

// WithFit sets the fit mode.
func WithFit(mode FitMode) Option {
	return func(c *Config) {
		c.Fit = mode
	}
}

// WithBlur sets the pre-edge-detection blur.
func WithBlur(b Blur) Option {
	return func(c *Config) {
		c.Blur = b
	}
}

// WithThresholds sets the Canny thresholds.
func WithThresholds(low, high float64) Option {
	return func(c *Config) {
		c.Thresholds = Thresholds{Low: low, High: high}
	}
}

// WithAnglesKernelSize sets the Sobel aperture for edge orientation.
func WithAnglesKernelSize(size int) Option {
	return func(c *Config) {
		c.AnglesKernelSize = size
	}
}

// WithAspectRatioCorrection sets the font aspect correction.
func WithAspectRatioCorrection(correction float64) Option {
	return func(c *Config) {
		c.AspectRatioCorrection = correction
	}
}

// WithCharset sets the brightness ramp.
func WithCharset(charset string) Option {
	return func(c *Config) {
		c.Charset = charset
	}
}

// Validate reports the first problem with c, wrapped in
// ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: size must not be negative, got %dx%d",
			ErrInvalidConfiguration, c.Width, c.Height)
	}
	switch c.ColorMode {
	case ColorModeColor, ColorModeGrayscale:
	default:
		return fmt.Errorf("%w: unknown color mode %v", ErrInvalidConfiguration, c.ColorMode)
	}
	switch c.Fit {
	case FitInTerminal, FitExact:
	default:
		return fmt.Errorf("%w: unknown fit mode %v", ErrInvalidConfiguration, c.Fit)
	}
	if err := c.Blur.validate(); err != nil {
		return err
	}
	if err := c.Thresholds.validate(); err != nil {
		return err
	}
	if c.AnglesKernelSize < 3 || c.AnglesKernelSize%2 == 0 {
		return fmt.Errorf("%w: angles kernel size must be odd and >= 3, got %d",
			ErrInvalidConfiguration, c.AnglesKernelSize)
	}
	if !(c.AspectRatioCorrection > 0) {
		return fmt.Errorf("%w: aspect ratio correction must be positive, got %g",
			ErrInvalidConfiguration, c.AspectRatioCorrection)
	}
	if utf8.RuneCountInString(c.Charset) < 2 {
		return fmt.Errorf("%w: charset needs at least 2 glyphs, got %q",
			ErrInvalidConfiguration, c.Charset)
	}
	return nil
}
