package img2ascii

import (
	"fmt"
	"image/color"

	"github.com/wbrown/img2ascii/imageutil"
)

// Cell is the reduced value of one source window: the mean brightness
// penalty and the mean color of its samples.
type Cell struct {
	Luminance uint8
	Color     RGB
}

// Penalty approximates the visible brightness of a straight-alpha
// sample against a black background: max(0, R - (255 - A)).
func Penalty(c color.NRGBA) uint8 {
	p := int(c.R) - (255 - int(c.A))
	if p < 0 {
		return 0
	}
	return uint8(p)
}

// Window is a rectangular region [X0, X1) x [Y0, Y1) of a source grid.
type Window struct {
	grid           *imageutil.Grid
	X0, Y0, X1, Y1 int
}

// Len returns the number of samples covered by the window.
func (w Window) Len() int {
	return (w.X1 - w.X0) * (w.Y1 - w.Y0)
}

// Reduce averages the window into a Cell. Luminance is the truncated
// mean penalty; each color channel is the mean rounded half to even.
// With grayscale set the color is White.
func (w Window) Reduce(grayscale bool) Cell {
	var lum, r, g, b int
	for y := w.Y0; y < w.Y1; y++ {
		row := w.grid.Row(y)[w.X0:w.X1]
		for _, px := range row {
			lum += int(Penalty(px))
			r += int(px.R)
			g += int(px.G)
			b += int(px.B)
		}
	}

	n := w.Len()
	cell := Cell{Luminance: uint8(lum / n), Color: White}
	if !grayscale {
		cell.Color = RGB{
			R: meanHalfEven(r, n),
			G: meanHalfEven(g, n),
			B: meanHalfEven(b, n),
		}
	}
	return cell
}

// meanHalfEven returns sum/n rounded to the nearest integer, ties to
// even. Integer arithmetic keeps it exact for any window size.
func meanHalfEven(sum, n int) uint8 {
	q, rem := sum/n, sum%n
	switch {
	case 2*rem > n:
		q++
	case 2*rem == n && q%2 == 1:
		q++
	}
	return uint8(q)
}

// blockScale returns ceil(src/dst), at least 1.
func blockScale(src, dst int) int {
	s := (src + dst - 1) / dst
	if s < 1 {
		return 1
	}
	return s
}

// Reducer partitions a source grid into windows aligned to a target
// grid.
type Reducer struct {
	grid   *imageutil.Grid
	size   Size
	scaleX int
	scaleY int
}

// NewReducer prepares the reduction of grid onto a target of size.
func NewReducer(grid *imageutil.Grid, size Size) (*Reducer, error) {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return nil, ErrEmptyImage
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidSize, size)
	}
	return &Reducer{
		grid:   grid,
		size:   size,
		scaleX: blockScale(grid.Width, size.Width),
		scaleY: blockScale(grid.Height, size.Height),
	}, nil
}

// Scale returns the window width and height in source pixels.
func (rd *Reducer) Scale() (int, int) {
	return rd.scaleX, rd.scaleY
}

// Window returns the source window of target cell (row, col), clipped
// to the source. Ceil scaling can push the origin of trailing windows
// past the source edge; such origins are pinned to the last source
// column or row so a window always holds at least one sample. Several
// trailing cells may then repeat that column or row: 10 source columns
// over 9 cells give scale 2, and cells 5 through 8 all cover column 9.
func (rd *Reducer) Window(row, col int) Window {
	x0 := min(col*rd.scaleX, rd.grid.Width-1)
	y0 := min(row*rd.scaleY, rd.grid.Height-1)
	return Window{
		grid: rd.grid,
		X0:   x0,
		Y0:   y0,
		X1:   min(x0+rd.scaleX, rd.grid.Width),
		Y1:   min(y0+rd.scaleY, rd.grid.Height),
	}
}

// Reduce computes every target cell. Rows are independent, so the
// parallel strategy only changes scheduling, never the result.
func (rd *Reducer) Reduce(parallel, grayscale bool) [][]Cell {
	cells := make([][]Cell, rd.size.Height)
	imageutil.ForEachRow(rd.size.Height, parallel, func(row int) {
		out := make([]Cell, rd.size.Width)
		for col := range out {
			out[col] = rd.Window(row, col).Reduce(grayscale)
		}
		cells[row] = out
	})
	return cells
}
