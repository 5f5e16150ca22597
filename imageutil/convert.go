package imageutil

import (
	"image"
	"image/color"
)

// Luma returns the Rec. 709 luma of an RGB triple, rounded to the
// nearest integer: Y = 0.2126*R + 0.7152*G + 0.0722*B.
func Luma(r, g, b uint8) uint8 {
	// Integer math scaled by 10000
	y := (2126*int(r) + 7152*int(g) + 722*int(b) + 5000) / 10000
	if y > 255 {
		y = 255
	}
	return uint8(y)
}

// ToGrayscale converts img to a grayscale image that keeps the alpha
// channel, so transparency still darkens cells after conversion.
func ToGrayscale(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	gray := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			v := Luma(c.R, c.G, c.B)
			gray.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y,
				color.NRGBA{R: v, G: v, B: v, A: c.A})
		}
	}

	return gray
}
