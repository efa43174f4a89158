package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wbrown/asciify"
	"github.com/wbrown/asciify/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output: .png renders a preview, .zst compresses, "+
			"anything else is written as text")
	save := flag.Bool("save", false,
		"Save the output next to the input as <name>_ascii.txt")
	colorMode := flag.String("color", "color",
		"Color mode: color or grayscale")
	edges := flag.Bool("edges", false,
		"Draw detected edges with directional glyphs (- | / \\)")
	width := flag.Int("width", 0,
		"Output width in characters (0 derives it)")
	height := flag.Int("height", 0,
		"Output height in characters (0 derives it)")
	keepAspect := flag.Bool("keep-aspect", true,
		"Use one downsample factor for both axes")
	fitMode := flag.String("fit", "in_terminal",
		"Fit mode when keeping aspect: in_terminal or exact")
	blur := flag.String("blur", "9,9,1.5,1.5",
		"Gaussian blur before edge detection: kernelWidth,kernelHeight,sigmaX,sigmaY")
	canny := flag.String("canny", "200,300",
		"Canny thresholds: low,high")
	anglesKernel := flag.Int("angles-kernel", 3,
		"Sobel kernel size for edge orientation (odd, >= 3)")
	correction := flag.Float64("correction", 1.10,
		"Font aspect ratio correction")
	charset := flag.String("charset", asciify.DefaultCharset,
		"Glyph ramp from dark to light")
	compact := flag.Bool("compact", false,
		"Emit a color escape only when the color changes")
	ansi256 := flag.Bool("256", false,
		"Use 256-colour escapes for terminals without true colour")
	plain := flag.Bool("plain", false,
		"Emit glyphs without color escapes")
	fontSize := flag.Float64("font-size", asciify.DefaultFontSize,
		"Font size in points for PNG previews")
	fontPath := flag.String("font", "",
		"TTF font for PNG previews (default: Go Mono)")
	previewScale := flag.Float64("preview-scale", 1,
		"Scale factor applied to PNG previews")
	debugDir := flag.String("debug-dir", "",
		"Write the reduced grid and edge mask as PNGs to this directory")
	verbose := flag.Bool("v", false,
		"Log pipeline details to stderr")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verbose {
		asciify.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mode, err := asciify.ParseColorMode(*colorMode)
	if err != nil {
		fatalf("%v", err)
	}
	fit, err := asciify.ParseFitMode(*fitMode)
	if err != nil {
		fatalf("%v", err)
	}
	blurCfg, err := parseBlur(*blur)
	if err != nil {
		fatalf("%v", err)
	}
	low, high, err := parseThresholds(*canny)
	if err != nil {
		fatalf("%v", err)
	}

	cfg := asciify.NewConfig(
		asciify.WithColorMode(mode),
		asciify.WithEdges(*edges),
		asciify.WithWidth(*width),
		asciify.WithHeight(*height),
		asciify.WithKeepAspectRatio(*keepAspect),
		asciify.WithFit(fit),
		asciify.WithBlur(blurCfg),
		asciify.WithThresholds(low, high),
		asciify.WithAnglesKernelSize(*anglesKernel),
		asciify.WithAspectRatioCorrection(*correction),
		asciify.WithCharset(*charset),
	)

	beginInit := time.Now()
	env, err := asciify.NewSystemEnvironment()
	if err != nil {
		fatalf("Error measuring font: %v", err)
	}
	conv := asciify.NewConverter(env)

	f, err := os.Open(*inputFile)
	if err != nil {
		fatalf("Error opening image: %v", err)
	}
	img, err := conv.Decode(f)
	f.Close()
	if err != nil {
		fatalf("Error processing image: %v", err)
	}
	endInit := time.Now()

	red, err := conv.Reduce(img, cfg)
	if err != nil {
		fatalf("Error processing image: %v", err)
	}
	frame := red.Render(cfg)
	endComputation := time.Now()

	if *debugDir != "" {
		if err := writeDebug(*debugDir, red); err != nil {
			fatalf("Error writing debug images: %v", err)
		}
	}

	var text string
	switch {
	case *plain:
		text = frame.Text()
	case *ansi256:
		text = frame.Quantized(asciify.Xterm256())
	case *compact:
		text = frame.Compact()
	default:
		text = frame.String()
	}

	target := *outputFile
	if target == "" && *save {
		target = defaultSavePath(*inputFile)
	}

	if target == "" {
		fmt.Print(text)
	} else if strings.HasSuffix(strings.ToLower(target), ".png") {
		opts := asciify.PreviewOptions{Size: *fontSize, Scale: *previewScale}
		if *fontPath != "" {
			ttf, err := os.ReadFile(*fontPath)
			if err != nil {
				fatalf("Error loading font: %v", err)
			}
			if opts.Font, err = asciify.LoadFont(ttf); err != nil {
				fatalf("Error loading font: %v", err)
			}
		}
		preview, err := asciify.RenderPreview(frame, opts)
		if err != nil {
			fatalf("Error rendering preview: %v", err)
		}
		if err := imageutil.SaveImage(preview.RGBA, target); err != nil {
			fatalf("Error writing PNG: %v", err)
		}
		reportWritten("PNG output", target)
	} else {
		if err := writeOutput(target, text); err != nil {
			fatalf("Error writing to file: %v", err)
		}
		reportWritten("Output", target)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Grid: %dx%d (factor %.2f x %.2f)\n",
			red.Colors.Cols, red.Colors.Rows, red.Factor.X, red.Factor.Y)
		fmt.Fprintf(os.Stderr, "Initialization time: %v\n", endInit.Sub(beginInit))
		fmt.Fprintf(os.Stderr, "Computation time: %v\n", endComputation.Sub(endInit))
		fmt.Fprintf(os.Stderr, "Total string length: %d\n", len(frame.String()))
		fmt.Fprintf(os.Stderr, "Compact string length: %d\n", len(frame.Compact()))
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// defaultSavePath returns <dir>/<name>_ascii.txt for an input image.
func defaultSavePath(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+"_ascii.txt")
}

func reportWritten(what, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Printf("%s written to %s\n", what, path)
}

func parseBlur(s string) (asciify.Blur, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return asciify.Blur{}, fmt.Errorf("blur needs kernelWidth,kernelHeight,sigmaX,sigmaY, got %q", s)
	}
	var b asciify.Blur
	var err error
	if b.KernelWidth, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return b, fmt.Errorf("blur kernel width: %w", err)
	}
	if b.KernelHeight, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return b, fmt.Errorf("blur kernel height: %w", err)
	}
	if b.SigmaX, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
		return b, fmt.Errorf("blur sigma x: %w", err)
	}
	if b.SigmaY, err = strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err != nil {
		return b, fmt.Errorf("blur sigma y: %w", err)
	}
	return b, nil
}

func parseThresholds(s string) (low, high float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("canny needs low,high, got %q", s)
	}
	if low, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("canny low: %w", err)
	}
	if high, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("canny high: %w", err)
	}
	return low, high, nil
}
