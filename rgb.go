package img2ascii

import (
	"image/color"
	"strconv"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// White is the cell color used in grayscale mode.
var White = RGB{255, 255, 255}

// IsBlack reports whether every channel is zero.
func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// ToColor converts an RGB color to an opaque color.RGBA.
func (c RGB) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// appendForeground appends the 24-bit foreground escape for c to dst.
func (c RGB) appendForeground(dst []byte) []byte {
	dst = append(dst, ESC+"[38;2;"...)
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, 'm')
}
