package img2ascii

import (
	"fmt"
	"math"
)

// CellAspect is how many times taller a terminal character cell is than
// it is wide.
const CellAspect = 2.0

// Size is a character grid size. In a request a zero dimension means
// "derive it"; a resolved Size always has both dimensions >= 1.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ResolveSize computes the target grid for a source of srcW x srcH
// pixels.
//
// With neither dimension requested the source size is used. With only
// one, the other is derived from the source proportions, corrected by
// CellAspect. With both, each is clamped to its source bound on its own
// and no aspect correction is applied. Every resolved dimension lies in
// [1, source bound].
func ResolveSize(requested Size, srcW, srcH int) (Size, error) {
	if srcW <= 0 || srcH <= 0 {
		return Size{}, fmt.Errorf("%w: source is %dx%d", ErrEmptyImage, srcW, srcH)
	}
	if requested.Width < 0 || requested.Height < 0 {
		return Size{}, fmt.Errorf("%w: requested %s", ErrInvalidSize, requested)
	}

	var w, h int
	switch {
	case requested.Width == 0 && requested.Height == 0:
		return Size{Width: srcW, Height: srcH}, nil
	case requested.Height == 0:
		w = requested.Width
		h = int(math.Round(float64(w) * float64(srcH) / float64(srcW) / CellAspect))
	case requested.Width == 0:
		h = requested.Height
		w = int(math.Round(float64(h) * float64(srcW) / float64(srcH) * CellAspect))
	default:
		w, h = requested.Width, requested.Height
	}

	return Size{Width: clamp(w, 1, srcW), Height: clamp(h, 1, srcH)}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
