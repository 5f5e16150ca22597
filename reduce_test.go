package img2ascii

import (
	"errors"
	"image/color"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    color.NRGBA
		want uint8
	}{
		{color.NRGBA{R: 255, A: 255}, 255},
		{color.NRGBA{R: 0, A: 255}, 0},
		{color.NRGBA{R: 128, G: 255, B: 255, A: 255}, 128},
		{color.NRGBA{R: 200, A: 155}, 100},
		{color.NRGBA{R: 50, A: 100}, 0},
		{color.NRGBA{R: 255, A: 0}, 0},
	}
	for _, tt := range tests {
		if got := Penalty(tt.c); got != tt.want {
			t.Errorf("Penalty(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestMeanHalfEven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sum, n int
		want   uint8
	}{
		{10, 4, 2},   // 2.5 -> 2
		{14, 4, 4},   // 3.5 -> 4
		{11, 4, 3},   // 2.75 -> 3
		{9, 4, 2},    // 2.25 -> 2
		{255, 1, 255},
		{0, 9, 0},
		{509, 2, 254}, // 254.5 -> 254
		{507, 2, 254}, // 253.5 -> 254
	}
	for _, tt := range tests {
		if got := meanHalfEven(tt.sum, tt.n); got != tt.want {
			t.Errorf("meanHalfEven(%d, %d) = %d, want %d", tt.sum, tt.n, got, tt.want)
		}
	}
}

func TestReducerWindowSampleCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		srcW, srcH int
		size       Size
	}{
		{10, 10, Size{3, 3}},
		{10, 10, Size{6, 4}},
		{7, 13, Size{2, 5}},
		{100, 37, Size{9, 11}},
		{5, 5, Size{5, 5}},
		{1, 1, Size{1, 1}},
	}

	for _, tt := range tests {
		grid := imageutil.SampleGrid(imageutil.CreateGradientImage(tt.srcW, tt.srcH), false)
		rd, err := NewReducer(grid, tt.size)
		if err != nil {
			t.Fatal(err)
		}
		scaleX, scaleY := rd.Scale()
		if want := (tt.srcW + tt.size.Width - 1) / tt.size.Width; scaleX != want {
			t.Errorf("%dx%d -> %v: scaleX = %d, want %d", tt.srcW, tt.srcH, tt.size, scaleX, want)
		}
		if want := (tt.srcH + tt.size.Height - 1) / tt.size.Height; scaleY != want {
			t.Errorf("%dx%d -> %v: scaleY = %d, want %d", tt.srcW, tt.srcH, tt.size, scaleY, want)
		}

		for row := 0; row < tt.size.Height; row++ {
			for col := 0; col < tt.size.Width; col++ {
				w := rd.Window(row, col)
				n := w.Len()
				if n < 1 || n > scaleX*scaleY {
					t.Fatalf("%dx%d -> %v: window (%d,%d) has %d samples",
						tt.srcW, tt.srcH, tt.size, row, col, n)
				}
				if w.X0 < 0 || w.Y0 < 0 || w.X1 > tt.srcW || w.Y1 > tt.srcH {
					t.Fatalf("%dx%d -> %v: window (%d,%d) out of bounds: %+v",
						tt.srcW, tt.srcH, tt.size, row, col, w)
				}
				interior := (col+1)*scaleX <= tt.srcW && (row+1)*scaleY <= tt.srcH
				if interior && n != scaleX*scaleY {
					t.Fatalf("%dx%d -> %v: interior window (%d,%d) has %d samples, want %d",
						tt.srcW, tt.srcH, tt.size, row, col, n, scaleX*scaleY)
				}
			}
		}
	}
}

func TestReducerTrailingWindowPinned(t *testing.T) {
	t.Parallel()

	// ceil(10/6) = 2, so column 5 would start at x=10, past the edge.
	grid := imageutil.SampleGrid(imageutil.CreateGradientImage(10, 1), false)
	rd, err := NewReducer(grid, Size{6, 1})
	if err != nil {
		t.Fatal(err)
	}
	w := rd.Window(0, 5)
	if w.X0 != 9 || w.X1 != 10 || w.Len() != 1 {
		t.Errorf("Expected window [9,10), got [%d,%d) with %d samples", w.X0, w.X1, w.Len())
	}
	cell := w.Reduce(false)
	if cell.Luminance != 255 {
		t.Errorf("Expected trailing cell to copy the last column (255), got %d", cell.Luminance)
	}
}

func TestReducerTrailingWindowsRepeat(t *testing.T) {
	t.Parallel()

	grid := imageutil.SampleGrid(imageutil.CreateGradientImage(10, 1), false)
	rd, err := NewReducer(grid, Size{9, 1})
	if err != nil {
		t.Fatal(err)
	}
	if w := rd.Window(0, 4); w.X0 != 8 || w.X1 != 10 {
		t.Errorf("Expected cell 4 to cover [8,10), got [%d,%d)", w.X0, w.X1)
	}
	for col := 5; col < 9; col++ {
		if w := rd.Window(0, col); w.X0 != 9 || w.X1 != 10 {
			t.Errorf("Expected cell %d to repeat [9,10), got [%d,%d)", col, w.X0, w.X1)
		}
	}
}

func TestWindowReduce(t *testing.T) {
	t.Parallel()

	img := imageutil.CreateSolidImage(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 11, G: 21, B: 32, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 11, G: 21, B: 32, A: 255})
	grid := imageutil.SampleGrid(img, false)

	rd, err := NewReducer(grid, Size{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	cell := rd.Window(0, 0).Reduce(false)

	// Penalties 10,10,11,11 -> 10 (truncated). R mean 10.5 -> 10 (even),
	// G mean 20.5 -> 20, B mean 31 -> 31.
	want := Cell{Luminance: 10, Color: RGB{10, 20, 31}}
	if cell != want {
		t.Errorf("Expected %+v, got %+v", want, cell)
	}

	gray := rd.Window(0, 0).Reduce(true)
	if gray.Color != White || gray.Luminance != 10 {
		t.Errorf("Expected white grayscale cell with luminance 10, got %+v", gray)
	}
}

func TestWindowReduceTransparency(t *testing.T) {
	t.Parallel()

	img := imageutil.CreateSolidImage(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	rd, err := NewReducer(imageutil.SampleGrid(img, false), Size{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	cell := rd.Window(0, 0).Reduce(false)
	if cell.Luminance != 128 {
		t.Errorf("Expected luminance 128 for half-transparent white, got %d", cell.Luminance)
	}
	if cell.Color != White {
		t.Errorf("Expected straight color white, got %v", cell.Color)
	}
}

func TestReduceSequentialParallelIdentical(t *testing.T) {
	t.Parallel()

	grid := imageutil.SampleGrid(imageutil.CreateNoiseImage(211, 97, 1234), false)
	rd, err := NewReducer(grid, Size{37, 19})
	if err != nil {
		t.Fatal(err)
	}
	seq := rd.Reduce(false, false)
	par := rd.Reduce(true, false)
	for row := range seq {
		for col := range seq[row] {
			if seq[row][col] != par[row][col] {
				t.Fatalf("Cell (%d,%d) differs: %+v vs %+v", row, col, seq[row][col], par[row][col])
			}
		}
	}
}

func TestNewReducerErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewReducer(imageutil.NewGrid(0, 0), Size{1, 1}); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage, got %v", err)
	}
	grid := imageutil.NewGrid(4, 4)
	if _, err := NewReducer(grid, Size{0, 2}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
}
