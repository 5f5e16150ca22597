// Package video converts a sequence of decoded frames to AsciiArt,
// either writing each frame to a directory or playing them back on a
// terminal.
package video

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/wbrown/img2ascii"
)

// ClearScreen moves the cursor home and clears the terminal.
const ClearScreen = img2ascii.ESC + "[H" + img2ascii.ESC + "[2J"

// FrameSource yields decoded frames in display order.
type FrameSource interface {
	// Next returns the next frame, or io.EOF once the source is drained.
	Next() (image.Image, error)
	// FrameCount returns the number of frames, or 0 when unknown.
	FrameCount() int
	// FPS returns the native frame rate, or 0 when unknown.
	FPS() float64
	Close() error
}

// Options configures a Driver.
type Options struct {
	// Frames is the number of frames to keep, sampled evenly across the
	// source. Zero keeps every frame. Sampling needs the source frame
	// count; when the source cannot report it every frame is kept.
	Frames int
	// Delay between frames during playback. Zero derives it from the
	// source frame rate.
	Delay time.Duration
	// SaveDir receives one text file per frame instead of playback.
	SaveDir string
	// Out receives playback output. Defaults to os.Stdout.
	Out io.Writer
	// Logger receives progress diagnostics.
	Logger *slog.Logger
}

// Driver runs a Converter over every selected frame of a source. The
// grid is resolved from the first frame and reused for the rest so the
// output keeps a constant size.
type Driver struct {
	conv *img2ascii.Converter
	opts Options
	log  *slog.Logger
}

// NewDriver creates a Driver for conv.
func NewDriver(conv *img2ascii.Converter, opts Options) *Driver {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{conv: conv, opts: opts, log: log}
}

// SelectFrames returns the indices of n frames spread evenly over
// total frames. A non-positive n, or one at least total, keeps every
// frame; a nil result means "keep all" when total is unknown.
func SelectFrames(total, n int) []int {
	if total <= 0 {
		return nil
	}
	if n <= 0 || n >= total {
		n = total
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i * total / n
	}
	return indices
}

// FrameDelay returns the playback delay: override when set, otherwise
// one frame period at fps, falling back to 30 fps.
func FrameDelay(fps float64, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	if fps <= 0 {
		fps = 30
	}
	return time.Duration(float64(time.Second) / fps)
}

// FrameFileName returns the file name used for the n-th saved frame,
// counting from 1.
func FrameFileName(n int) string {
	return fmt.Sprintf("frame_%05d.txt", n)
}

// Run converts the selected frames of src. It returns ctx.Err() when
// the context is cancelled between frames.
func (d *Driver) Run(ctx context.Context, src FrameSource) error {
	if err := d.conv.Validate(); err != nil {
		return err
	}
	if d.opts.SaveDir != "" {
		if err := os.MkdirAll(d.opts.SaveDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	keep := SelectFrames(src.FrameCount(), d.opts.Frames)
	if keep == nil && d.opts.Frames > 0 {
		d.log.Info("frame count unknown, keeping every frame",
			"requested_frames", d.opts.Frames)
	}
	delay := FrameDelay(src.FPS(), d.opts.Delay)
	d.log.Debug("starting video conversion",
		"frames", src.FrameCount(), "keep", len(keep), "delay", delay)

	var (
		grid    img2ascii.Size
		written int
		next    int
	)
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if keep != nil && next >= len(keep) {
			break
		}

		frame, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read frame %d: %w", index, err)
		}
		if keep != nil {
			if keep[next] != index {
				continue
			}
			next++
		}

		if written == 0 {
			grid, err = d.conv.ResolveSize(frame)
			if err != nil {
				return err
			}
			d.log.Debug("resolved video grid", "size", grid)
		}
		art, err := d.conv.ConvertImageToSize(frame, grid)
		if err != nil {
			return fmt.Errorf("failed to convert frame %d: %w", index, err)
		}
		written++

		if err := d.emit(ctx, art, written, delay); err != nil {
			return err
		}
	}

	d.log.Debug("video conversion done", "frames_written", written)
	return nil
}

func (d *Driver) emit(ctx context.Context, art img2ascii.AsciiArt, n int, delay time.Duration) error {
	if d.opts.SaveDir != "" {
		path := filepath.Join(d.opts.SaveDir, FrameFileName(n))
		if err := os.WriteFile(path, []byte(art.String()), 0644); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
		return nil
	}

	if _, err := io.WriteString(d.opts.Out, ClearScreen); err != nil {
		return err
	}
	if _, err := art.WriteTo(d.opts.Out); err != nil {
		return err
	}
	if _, err := io.WriteString(d.opts.Out, "\n"); err != nil {
		return err
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
