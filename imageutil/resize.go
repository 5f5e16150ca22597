package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest, and keeps glyph edges sharp.
	InterpolationNearest
)

// Resize resizes an image to the specified dimensions using the given
// interpolation method.
func Resize(img image.Image, width, height int, interp Interpolation) *image.RGBA {
	dstRect := image.Rect(0, 0, width, height)
	dst := image.NewRGBA(dstRect)

	var scaler draw.Scaler
	switch interp {
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst, dstRect, img, img.Bounds(), draw.Over, nil)
	return dst
}

// ResizeToWidth resizes an image to the specified width while maintaining
// aspect ratio.
func ResizeToWidth(img image.Image, width int, interp Interpolation) *image.RGBA {
	b := img.Bounds()
	height := width * b.Dy() / b.Dx()
	if height < 1 {
		height = 1
	}
	return Resize(img, width, height, interp)
}
