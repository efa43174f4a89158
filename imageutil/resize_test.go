package imageutil

import (
	"image"
	"math"
	"testing"
)

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestResizeNearestKeepsBlocks(t *testing.T) {
	img := CreateColorBarsImage(8, 1)
	big := Resize(img, 80, 10, InterpolationNearest)
	for x := 0; x < 80; x++ {
		if got, want := big.GetRGB(x, 5), img.GetRGB(x/10, 0); got != want {
			t.Fatalf("x=%d: expected %v, got %v", x, want, got)
		}
	}
}

func TestBlockBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start, length, n int
		want             []int
	}{
		{0, 10, 2, []int{0, 5, 10}},
		{0, 5, 2, []int{0, 2, 5}},
		{3, 10, 3, []int{3, 6, 9, 13}},
		{0, 2, 4, []int{0, 0, 1, 1, 2}},
	}
	for _, tc := range tests {
		got := BlockBounds(tc.start, tc.length, tc.n)
		if len(got) != len(tc.want) {
			t.Errorf("BlockBounds(%d,%d,%d) = %v, want %v", tc.start, tc.length, tc.n, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("BlockBounds(%d,%d,%d) = %v, want %v", tc.start, tc.length, tc.n, got, tc.want)
				break
			}
		}
	}
}

func TestAreaAverage(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(5, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGB(x, y, RGB{uint8(x * 10), uint8(y * 100), 7})
		}
	}

	grid := AreaAverage(img, img.Bounds(), 2, 1)
	if len(grid) != 1 || len(grid[0]) != 2 {
		t.Fatalf("expected 1x2 grid, got %d rows", len(grid))
	}
	// Columns [0,2) and [2,5).
	want := []RGBf{{R: 5, G: 50, B: 7}, {R: 30, G: 50, B: 7}}
	for i, w := range want {
		g := grid[0][i]
		if math.Abs(g.R-w.R) > 1e-9 || math.Abs(g.G-w.G) > 1e-9 || math.Abs(g.B-w.B) > 1e-9 {
			t.Errorf("cell %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestAreaAverageWindow(t *testing.T) {
	img := CreateSolidImage(10, 10, RGB{0, 0, 0})
	for y := 2; y < 8; y++ {
		for x := 2; x < 8; x++ {
			img.SetRGB(x, y, RGB{255, 255, 255})
		}
	}

	grid := AreaAverage(img, image.Rect(2, 2, 8, 8), 3, 3)
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] != (RGBf{255, 255, 255}) {
				t.Errorf("cell (%d,%d) = %+v, want white", r, c, grid[r][c])
			}
		}
	}
}

func TestAreaAverageUpsamples(t *testing.T) {
	img := NewRGBAImage(2, 1)
	img.SetRGB(0, 0, RGB{0, 0, 0})
	img.SetRGB(1, 0, RGB{200, 200, 200})

	grid := AreaAverage(img, img.Bounds(), 4, 1)
	want := []float64{0, 0, 200, 200}
	for i, w := range want {
		if grid[0][i].R != w {
			t.Errorf("cell %d: R=%f, want %f", i, grid[0][i].R, w)
		}
	}
}
