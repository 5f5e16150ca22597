// Package capture decodes video files frame by frame with OpenCV.
package capture

import (
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"
)

// Source reads frames from a video file. It satisfies video.FrameSource.
type Source struct {
	vc    *gocv.VideoCapture
	frame gocv.Mat
	count int
	fps   float64
}

// Open opens the video at path.
func Open(path string) (*Source, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open video %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("could not open video %s", path)
	}
	return &Source{
		vc:    vc,
		frame: gocv.NewMat(),
		count: int(vc.Get(gocv.VideoCaptureFrameCount)),
		fps:   vc.Get(gocv.VideoCaptureFPS),
	}, nil
}

// Next decodes the next frame.
func (s *Source) Next() (image.Image, error) {
	if ok := s.vc.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, io.EOF
	}
	img, err := s.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("could not convert frame: %w", err)
	}
	return img, nil
}

// FrameCount returns the container's frame count, 0 when unknown.
func (s *Source) FrameCount() int {
	if s.count < 0 {
		return 0
	}
	return s.count
}

// FPS returns the container's frame rate.
func (s *Source) FPS() float64 {
	return s.fps
}

// Close releases the decoder.
func (s *Source) Close() error {
	if err := s.frame.Close(); err != nil {
		s.vc.Close()
		return err
	}
	return s.vc.Close()
}
