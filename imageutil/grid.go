// Package imageutil provides the pure Go image plumbing used by the
// converter: decoding, sample grids, grayscale conversion and resizing.
package imageutil

import (
	"image"
	"image/color"
	"runtime"
	"sync"
)

// Grid is a dense, row-major grid of straight-alpha RGBA8 samples.
// A Grid is read-only once SampleGrid returns it.
type Grid struct {
	Width  int
	Height int
	Pix    []color.NRGBA
}

// NewGrid allocates a zeroed grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]color.NRGBA, width*height),
	}
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) color.NRGBA {
	return g.Pix[y*g.Width+x]
}

// Row returns the samples of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []color.NRGBA {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// SampleGrid materializes the pixels of img into a Grid whose origin is
// (0, 0). When parallel is set, rows are filled concurrently; every
// worker writes a disjoint set of rows, so both modes yield identical
// grids.
func SampleGrid(img image.Image, parallel bool) *Grid {
	bounds := img.Bounds()
	grid := NewGrid(bounds.Dx(), bounds.Dy())
	if grid.Width == 0 || grid.Height == 0 {
		return grid
	}

	fill := rowSampler(img)
	ForEachRow(grid.Height, parallel, func(y int) {
		fill(grid.Row(y), bounds.Min.X, bounds.Min.Y+y)
	})
	return grid
}

// rowSampler picks a fill routine for one row of img. The concrete
// fast paths must agree with color.NRGBAModel.
func rowSampler(img image.Image) func(dst []color.NRGBA, minX, y int) {
	switch src := img.(type) {
	case *image.NRGBA:
		return func(dst []color.NRGBA, minX, y int) {
			for x := range dst {
				dst[x] = src.NRGBAAt(minX+x, y)
			}
		}
	case *image.RGBA:
		return func(dst []color.NRGBA, minX, y int) {
			for x := range dst {
				dst[x] = color.NRGBAModel.Convert(src.RGBAAt(minX+x, y)).(color.NRGBA)
			}
		}
	default:
		return func(dst []color.NRGBA, minX, y int) {
			for x := range dst {
				dst[x] = color.NRGBAModel.Convert(img.At(minX+x, y)).(color.NRGBA)
			}
		}
	}
}

// ForEachRow calls fn once for every row index in [0, rows). When
// parallel is false the rows are visited in order on the calling
// goroutine. Otherwise a pool of GOMAXPROCS workers pulls row indices
// and ForEachRow returns once every row has been processed. fn must only
// write state owned by its row.
func ForEachRow(rows int, parallel bool, fn func(row int)) {
	workers := runtime.GOMAXPROCS(0)
	if !parallel || rows < 2 || workers < 2 {
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return
	}
	if workers > rows {
		workers = rows
	}

	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for y := range next {
				fn(y)
			}
		}()
	}
	for y := 0; y < rows; y++ {
		next <- y
	}
	close(next)
	wg.Wait()
}
