// Package asciify converts raster images into true-colour ASCII art sized
// for a character grid.
//
// A conversion has two stages. The reducer sizes the grid, area-averages
// the image into one colour per cell and measures each cell's brightness,
// gradient orientation and edge presence. The renderer picks a glyph per
// cell from a brightness ramp, or a directional glyph (- | / \) on edge
// cells, and serialises the frame with 24-bit SGR escapes.
//
// Basic usage:
//
//	conv := asciify.NewConverter(env)
//	frame, err := conv.ConvertFile("photo.jpg", asciify.NewConfig(
//		asciify.WithWidth(100),
//		asciify.WithEdges(true),
//	))
//	if err != nil {
//		return err
//	}
//	fmt.Print(frame)
//
// Every call builds its own state; a Converter may be shared between
// goroutines.
package asciify
