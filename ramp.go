package img2ascii

import "fmt"

// DensityRamp is an ordered set of characters from the least to the
// most visual ink.
type DensityRamp []rune

// DefaultRamp is the ten-step ramp used unless another is configured.
var DefaultRamp = DensityRamp(" .:-=+*#%@")

// NewDensityRamp builds a ramp from chars, least dense first.
func NewDensityRamp(chars string) (DensityRamp, error) {
	ramp := DensityRamp(chars)
	if len(ramp) < 2 {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidRamp, chars)
	}
	return ramp, nil
}

// Index maps a luminance to a ramp position: floor(lum * N / 256).
// With invert the traversal direction is reversed.
func (r DensityRamp) Index(lum uint8, invert bool) int {
	n := len(r)
	i := clamp(int(lum)*n/256, 0, n-1)
	if invert {
		i = n - 1 - i
	}
	return i
}

// Densest returns the ramp's most dense character.
func (r DensityRamp) Densest() rune {
	return r[len(r)-1]
}

// ClassifyOptions selects how cells map to characters.
type ClassifyOptions struct {
	Invert  bool
	Colored bool
	// Uniform always picks the densest character and leaves contrast to
	// the cell color. Only meaningful with Colored.
	Uniform bool
}

// Classify pairs the character chosen for cell with its color.
func (r DensityRamp) Classify(cell Cell, opts ClassifyOptions) ColorChar {
	cc := ColorChar{FG: cell.Color, Colored: opts.Colored}
	if opts.Uniform {
		cc.Rune = r.Densest()
	} else {
		cc.Rune = r[r.Index(cell.Luminance, opts.Invert)]
	}
	return cc
}
