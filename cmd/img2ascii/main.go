package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/video"
	"github.com/wbrown/img2ascii/video/capture"
)

const usage = `Usage: img2ascii <command> [flags]

Commands:
  image   Convert an image to ASCII art
  video   Convert a video to ASCII art frames

Run "img2ascii <command> -h" for the flags of a command.
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err != errUsage && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	switch args[0] {
	case "image":
		return runImage(args[1:], stdout, stderr)
	case "video":
		return runVideo(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

// commonFlags are shared by the image and video commands.
type commonFlags struct {
	path       string
	width      int
	height     int
	invert     bool
	colored    bool
	uniform    bool
	noParallel bool
	fit        bool
	ramp       string
	verbose    bool
}

func (c *commonFlags) register(fs *flag.FlagSet, what string) {
	fs.StringVar(&c.path, "path", "", "Path to the "+what+" to convert (required)")
	fs.IntVar(&c.width, "width", 0,
		"Width in characters. Derived from -height when omitted; "+
			"the source width when both are omitted")
	fs.IntVar(&c.width, "W", 0, "alias for -width")
	fs.IntVar(&c.height, "height", 0,
		"Height in characters. Derived from -width when omitted; "+
			"the source height when both are omitted")
	fs.IntVar(&c.height, "H", 0, "alias for -height")
	fs.BoolVar(&c.invert, "invert", false,
		"Invert the ramp (dark areas become dense and vice-versa)")
	fs.BoolVar(&c.colored, "colored", false,
		"Emit 24-bit ANSI foreground colors")
	fs.BoolVar(&c.colored, "c", false, "alias for -colored")
	fs.BoolVar(&c.uniform, "uniform-char", false,
		"Use the densest character everywhere (requires -colored)")
	fs.BoolVar(&c.uniform, "u", false, "alias for -uniform-char")
	fs.BoolVar(&c.noParallel, "no-parallel", false,
		"Disable parallel conversion")
	fs.BoolVar(&c.fit, "fit", false,
		"Default the width to the terminal width when no size is given")
	fs.StringVar(&c.ramp, "ramp", string(img2ascii.DefaultRamp),
		"Density ramp, least dense character first")
	fs.BoolVar(&c.verbose, "v", false, "Log debug diagnostics to stderr")
}

// converter validates the flags and builds the Converter they describe.
func (c *commonFlags) converter(stderr io.Writer) (*img2ascii.Converter, error) {
	if c.path == "" {
		return nil, fmt.Errorf("%w: -path is required", errUsage)
	}
	if c.uniform && !c.colored {
		return nil, fmt.Errorf("-uniform-char: %w", img2ascii.ErrUniformRequiresColor)
	}
	ramp, err := img2ascii.NewDensityRamp(c.ramp)
	if err != nil {
		return nil, err
	}

	width, height := c.width, c.height
	if c.fit && width == 0 && height == 0 {
		width = terminalWidth()
	}

	logger := slog.New(slog.NewTextHandler(stderr, verboseLevel(c.verbose)))

	return img2ascii.NewConverter(
		img2ascii.WithSize(width, height),
		img2ascii.WithInvert(c.invert),
		img2ascii.WithColor(c.colored),
		img2ascii.WithGrayscale(!c.colored),
		img2ascii.WithUniform(c.uniform),
		img2ascii.WithParallel(!c.noParallel),
		img2ascii.WithRamp(ramp),
		img2ascii.WithLogger(logger),
	), nil
}

// terminalWidth returns the width of the terminal on stdout, or 0 when
// stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func runImage(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("image", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs, "image")
	savePath := fs.String("savepath", "",
		"Save the ASCII art to this file instead of printing it")
	fs.StringVar(savePath, "s", "", "alias for -savepath")
	previewPath := fs.String("preview", "",
		"Also render the ASCII art to an image file (PNG, JPEG or GIF)")
	fontPath := fs.String("font", "",
		"TrueType font for -preview (default: built-in 7x13 bitmap font)")
	fontSize := fs.Float64("font-size", 12, "Font size in points for -font")
	previewWidth := fs.Int("preview-width", 0,
		"Rescale the preview to this width in pixels")

	if err := fs.Parse(args); err != nil {
		return err
	}
	conv, err := common.converter(stderr)
	if err != nil {
		return err
	}

	start := time.Now()
	art, err := conv.ConvertFile(common.path)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if *savePath != "" {
		if err := os.WriteFile(*savePath, []byte(art.String()), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(stdout, "Output written to %s\n", *savePath)
	} else {
		if _, err := art.WriteTo(stdout); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	}

	if *previewPath != "" {
		opts := img2ascii.PreviewOptions{
			FontPath: *fontPath,
			FontSize: *fontSize,
			Width:    *previewWidth,
		}
		if err := art.SavePreview(*previewPath, opts); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		fmt.Fprintf(stdout, "Preview written to %s\n", *previewPath)
	}

	if common.verbose {
		fmt.Fprintf(stderr, "Computation time: %v\n", elapsed)
		fmt.Fprintf(stderr, "Grid: %dx%d\n", art.Width(), art.Height())
	}
	return nil
}

func runVideo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("video", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs, "video")
	frames := fs.Int("number-frames", 0,
		"Total number of frames to keep, sampled evenly (default: all)")
	fs.IntVar(frames, "f", 0, "alias for -number-frames")
	saveDir := fs.String("savepath", "",
		"Directory receiving one text file per frame. "+
			"If not specified, the video is played in the terminal")
	fs.StringVar(saveDir, "s", "", "alias for -savepath")
	delayMs := fs.Int("delay-frames", 0,
		"Delay between frames in milliseconds (default: the video frame rate)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *saveDir != "" && *delayMs != 0 {
		return fmt.Errorf("%w: -savepath and -delay-frames are mutually exclusive", errUsage)
	}
	if *frames < 0 || *delayMs < 0 {
		return fmt.Errorf("%w: -number-frames and -delay-frames must not be negative", errUsage)
	}
	conv, err := common.converter(stderr)
	if err != nil {
		return err
	}

	src, err := capture.Open(common.path)
	if err != nil {
		return fmt.Errorf("%w: %w", img2ascii.ErrDecode, err)
	}
	defer src.Close()

	driver := video.NewDriver(conv, video.Options{
		Frames:  *frames,
		Delay:   time.Duration(*delayMs) * time.Millisecond,
		SaveDir: *saveDir,
		Out:     stdout,
		Logger:  slog.New(slog.NewTextHandler(stderr, verboseLevel(common.verbose))),
	})
	if err := driver.Run(ctx, src); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if *saveDir != "" {
		fmt.Fprintf(stdout, "Frames written to %s\n", strings.TrimSuffix(*saveDir, "/"))
	}
	return nil
}

func verboseLevel(verbose bool) *slog.HandlerOptions {
	if verbose {
		return &slog.HandlerOptions{Level: slog.LevelDebug}
	}
	return &slog.HandlerOptions{Level: slog.LevelInfo}
}
