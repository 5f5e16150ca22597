package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSampleGridMatchesSource(t *testing.T) {
	src := CreateNoiseImage(13, 7, 42)
	grid := SampleGrid(src, false)

	if grid.Width != 13 || grid.Height != 7 {
		t.Fatalf("Expected 13x7 grid, got %dx%d", grid.Width, grid.Height)
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 13; x++ {
			if grid.At(x, y) != src.NRGBAAt(x, y) {
				t.Fatalf("Sample (%d,%d) = %v, want %v",
					x, y, grid.At(x, y), src.NRGBAAt(x, y))
			}
		}
	}
}

func TestSampleGridSequentialParallelIdentical(t *testing.T) {
	sources := map[string]image.Image{
		"nrgba":   CreateNoiseImage(64, 33, 7),
		"rgba":    toRGBA(CreateNoiseImage(31, 50, 9)),
		"gray":    toGray(CreateGradientImage(40, 40)),
		"offset":  CreateNoiseImage(80, 80, 3).SubImage(image.Rect(10, 20, 50, 45)),
		"onerow":  CreateNoiseImage(17, 1, 5),
		"onecell": CreateNoiseImage(1, 1, 11),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			seq := SampleGrid(src, false)
			par := SampleGrid(src, true)
			if seq.Width != par.Width || seq.Height != par.Height {
				t.Fatalf("Dimension mismatch: %dx%d vs %dx%d",
					seq.Width, seq.Height, par.Width, par.Height)
			}
			for i := range seq.Pix {
				if seq.Pix[i] != par.Pix[i] {
					t.Fatalf("Sample %d differs: %v vs %v", i, seq.Pix[i], par.Pix[i])
				}
			}
		})
	}
}

func TestSampleGridRGBAFastPathAgreesWithModel(t *testing.T) {
	src := toRGBA(CreateNoiseImage(20, 20, 99))
	grid := SampleGrid(src, false)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			want := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if grid.At(x, y) != want {
				t.Fatalf("Sample (%d,%d) = %v, want %v", x, y, grid.At(x, y), want)
			}
		}
	}
}

func TestForEachRowVisitsEveryRowOnce(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		counts := make([]int, 257)
		ForEachRow(len(counts), parallel, func(row int) {
			counts[row]++
		})
		for row, n := range counts {
			if n != 1 {
				t.Fatalf("parallel=%v: row %d visited %d times", parallel, row, n)
			}
		}
	}
}

func TestLuma(t *testing.T) {
	if v := Luma(255, 255, 255); v != 255 {
		t.Errorf("White should be 255, got %d", v)
	}
	if v := Luma(0, 0, 0); v != 0 {
		t.Errorf("Black should be 0, got %d", v)
	}
	// 0.2126 * 255 = 54.2
	if v := Luma(255, 0, 0); v != 54 {
		t.Errorf("Red should be 54, got %d", v)
	}
}

func TestToGrayscaleKeepsAlpha(t *testing.T) {
	src := CreateSolidImage(2, 2, color.NRGBA{R: 0, G: 255, B: 0, A: 100})
	gray := ToGrayscale(src)

	c := gray.NRGBAAt(1, 1)
	if c.R != c.G || c.G != c.B {
		t.Errorf("Expected equal channels, got %v", c)
	}
	if c.R != 182 {
		t.Errorf("Expected luma 182, got %d", c.R)
	}
	if c.A != 100 {
		t.Errorf("Expected alpha 100, got %d", c.A)
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Errorf("Expected 50x50, got %v", resized.Bounds())
	}

	resized = ResizeToWidth(img, 200, InterpolationNearest)
	if resized.Bounds() != image.Rect(0, 0, 200, 200) {
		t.Errorf("Expected 200x200, got %v", resized.Bounds())
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solid.png")

	src := CreateSolidImage(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := SaveImage(src, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 6x4, got %v", img.Bounds())
	}
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	if got := color.NRGBAModel.Convert(img.At(3, 2)); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadImage(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(garbage); !errors.Is(err, image.ErrFormat) {
		t.Errorf("Expected image.ErrFormat, got %v", err)
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, CreateCheckerboardImage(8, 8, 2)); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if got := color.NRGBAModel.Convert(img.At(0, 0)); got != white {
		t.Errorf("Expected white corner, got %v", got)
	}
	black := color.NRGBA{A: 255}
	if got := color.NRGBAModel.Convert(img.At(2, 0)); got != black {
		t.Errorf("Expected black square, got %v", got)
	}
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}
