package img2ascii

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// Converter turns decoded images into AsciiArt. A Converter holds only
// configuration, so one value may serve concurrent conversions.
type Converter struct {
	// Size is the requested grid; zero dimensions are derived.
	Size      Size
	Invert    bool
	Colored   bool
	Grayscale bool
	Uniform   bool
	Parallel  bool
	Ramp      DensityRamp

	logger *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// NewConverter creates a Converter with the given options.
// Defaults: source-sized grid, DefaultRamp, no color, parallel execution.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		Ramp:     DefaultRamp,
		Parallel: true,
		logger:   discardLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSize sets the requested width and height in characters. Either
// may be zero to derive it from the other.
func WithSize(width, height int) Option {
	return func(c *Converter) {
		c.Size = Size{Width: width, Height: height}
	}
}

// WithInvert reverses the density ramp.
func WithInvert(invert bool) Option {
	return func(c *Converter) {
		c.Invert = invert
	}
}

// WithColor enables 24-bit foreground color escapes.
func WithColor(colored bool) Option {
	return func(c *Converter) {
		c.Colored = colored
	}
}

// WithGrayscale converts the source to luma before sampling and colors
// every cell white.
func WithGrayscale(grayscale bool) Option {
	return func(c *Converter) {
		c.Grayscale = grayscale
	}
}

// WithUniform makes every character the densest one. Requires color.
func WithUniform(uniform bool) Option {
	return func(c *Converter) {
		c.Uniform = uniform
	}
}

// WithParallel selects the row-parallel execution strategy.
func WithParallel(parallel bool) Option {
	return func(c *Converter) {
		c.Parallel = parallel
	}
}

// WithRamp sets the density ramp.
func WithRamp(ramp DensityRamp) Option {
	return func(c *Converter) {
		c.Ramp = ramp
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Validate checks the configuration. It runs before any pixel work.
func (c *Converter) Validate() error {
	if c.Uniform && !c.Colored {
		return ErrUniformRequiresColor
	}
	if len(c.Ramp) < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidRamp, len(c.Ramp))
	}
	if c.Size.Width < 0 || c.Size.Height < 0 {
		return fmt.Errorf("%w: requested %s", ErrInvalidSize, c.Size)
	}
	return nil
}

// ConvertFile decodes the image at path and converts it.
func (c *Converter) ConvertFile(path string) (AsciiArt, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return c.ConvertImage(img)
}

// ConvertReader decodes an image from r and converts it.
func (c *Converter) ConvertReader(r io.Reader) (AsciiArt, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	img, err := imageutil.DecodeImage(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return c.ConvertImage(img)
}

// ResolveSize returns the grid the configured Size resolves to for img.
func (c *Converter) ResolveSize(img image.Image) (Size, error) {
	b := img.Bounds()
	return ResolveSize(c.Size, b.Dx(), b.Dy())
}

// ConvertImage converts img using the configured Size.
func (c *Converter) ConvertImage(img image.Image) (AsciiArt, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	size, err := c.ResolveSize(img)
	if err != nil {
		return nil, err
	}
	return c.convert(img, size)
}

// ConvertImageToSize converts img onto a fixed grid, ignoring the
// configured Size. Video drivers resolve one grid and reuse it for every
// frame. Dimensions larger than the source are clamped to it.
func (c *Converter) ConvertImageToSize(img image.Image, size Size) (AsciiArt, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: fixed grid %s", ErrInvalidSize, size)
	}
	b := img.Bounds()
	size, err := ResolveSize(size, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	return c.convert(img, size)
}

// log returns the configured logger, or a discarding one for a
// Converter built without NewConverter.
func (c *Converter) log() *slog.Logger {
	if c.logger == nil {
		return discardLogger
	}
	return c.logger
}

func (c *Converter) convert(img image.Image, size Size) (AsciiArt, error) {
	start := time.Now()
	if c.Grayscale {
		img = imageutil.ToGrayscale(img)
	}

	grid := imageutil.SampleGrid(img, c.Parallel)
	reducer, err := NewReducer(grid, size)
	if err != nil {
		return nil, err
	}
	scaleX, scaleY := reducer.Scale()
	c.log().Debug("converting image",
		"source", Size{Width: grid.Width, Height: grid.Height},
		"target", size,
		"scale_x", scaleX,
		"scale_y", scaleY,
		"parallel", c.Parallel)

	cells := reducer.Reduce(c.Parallel, c.Grayscale)

	opts := ClassifyOptions{Invert: c.Invert, Colored: c.Colored, Uniform: c.Uniform}
	art := make(AsciiArt, len(cells))
	imageutil.ForEachRow(len(cells), c.Parallel, func(row int) {
		out := make([]ColorChar, len(cells[row]))
		for col, cell := range cells[row] {
			out[col] = c.Ramp.Classify(cell, opts)
		}
		art[row] = out
	})

	c.log().Debug("conversion done", "elapsed", time.Since(start))
	return art, nil
}
