package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wbrown/asciify"
	"github.com/wbrown/asciify/imageutil"
)

// writeDebug dumps the reduced colour grid and the edge mask, enlarged so
// each cell stays visible.
func writeDebug(dir string, red *asciify.Reduction) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	const cellPx = 8

	reduced := red.Colors.Image()
	reduced = imageutil.Resize(reduced, reduced.Width()*cellPx, reduced.Height()*cellPx, imageutil.InterpolationNearest)
	if err := imageutil.SaveImage(reduced.RGBA, filepath.Join(dir, "reduced.png")); err != nil {
		return err
	}

	edges := red.Edges.Image()
	edges = imageutil.ResizeGray(edges, edges.Width()*cellPx, edges.Height()*cellPx, imageutil.InterpolationNearest)
	if err := imageutil.SaveGrayImage(edges, filepath.Join(dir, "edges.png")); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Debug images written to %s\n", dir)
	return nil
}
