package img2ascii

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wbrown/img2ascii/imageutil"
)

// PreviewOptions configures rendering AsciiArt to a raster image.
type PreviewOptions struct {
	// FontPath is a TrueType font. Empty selects the built-in 7x13
	// bitmap face.
	FontPath string
	// FontSize is the TrueType size in points. Defaults to 12.
	FontSize float64
	// Width rescales the rendered image to this many pixels, keeping
	// its proportions. Zero keeps the natural size.
	Width int
	// Background fills every cell before drawing. Defaults to black.
	Background RGB
}

// LoadFace loads a TrueType font face from path.
func LoadFace(path string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	if size <= 0 {
		size = 12
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// cellMetrics returns the pixel size of one character cell for face and
// the baseline offset from the top of the cell.
func cellMetrics(face font.Face) (width, height, ascent int) {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = fixed.I(8)
	}
	m := face.Metrics()
	width = adv.Ceil()
	height = m.Height.Ceil()
	ascent = m.Ascent.Ceil()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height, ascent
}

// RenderImage draws the art with face on a background of bg. Colored
// characters use their foreground color; plain ones are drawn white.
func (a AsciiArt) RenderImage(face font.Face, bg RGB) *image.RGBA {
	cellW, cellH, ascent := cellMetrics(face)
	img := image.NewRGBA(image.Rect(0, 0, a.Width()*cellW, a.Height()*cellH))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.ToColor()), image.Point{}, draw.Src)

	d := font.Drawer{Dst: img, Face: face}
	for y, row := range a {
		for x, c := range row {
			if c.Rune == ' ' {
				continue
			}
			fg := White
			if c.Colored {
				fg = c.FG
			}
			d.Src = image.NewUniform(fg.ToColor())
			d.Dot = fixed.P(x*cellW, y*cellH+ascent)
			d.DrawString(string(c.Rune))
		}
	}
	return img
}

// SavePreview renders the art and writes it to path. The format follows
// the file extension, defaulting to PNG.
func (a AsciiArt) SavePreview(path string, opts PreviewOptions) error {
	if a.Height() == 0 || a.Width() == 0 {
		return ErrEmptyImage
	}

	var face font.Face = basicfont.Face7x13
	if opts.FontPath != "" {
		ttfFace, err := LoadFace(opts.FontPath, opts.FontSize)
		if err != nil {
			return err
		}
		defer ttfFace.Close()
		face = ttfFace
	}

	var out image.Image = a.RenderImage(face, opts.Background)
	if opts.Width > 0 {
		out = imageutil.ResizeToWidth(out, opts.Width, imageutil.InterpolationNearest)
	}
	return imageutil.SaveImage(out, path)
}
