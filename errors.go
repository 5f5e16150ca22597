package img2ascii

import "errors"

var (
	// ErrDecode wraps failures to read or decode the source image.
	ErrDecode = errors.New("img2ascii: could not decode image")

	// ErrEmptyImage is returned when the source has no pixels.
	ErrEmptyImage = errors.New("img2ascii: source image is empty")

	// ErrInvalidSize is returned for negative requested dimensions or a
	// fixed target grid with a zero dimension.
	ErrInvalidSize = errors.New("img2ascii: invalid target size")

	// ErrUniformRequiresColor is returned when uniform character mode is
	// requested without color output.
	ErrUniformRequiresColor = errors.New("img2ascii: uniform character mode requires color output")

	// ErrInvalidRamp is returned for density ramps shorter than two runes.
	ErrInvalidRamp = errors.New("img2ascii: density ramp needs at least two characters")
)
