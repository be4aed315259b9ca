// Package video reads recorded videos and writes annotated ones using OpenCV.
package video

import (
	"errors"
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// ErrNotOpened indicates OpenCV could not open a file.
var ErrNotOpened = errors.New("video: could not open")

// Props describes a video stream.
type Props struct {
	FPS    float64
	Width  int
	Height int
	Frames int // Reported frame count, 0 if unknown
}

// Source is a video file opened for sequential reading.
type Source struct {
	path  string
	cap   *gocv.VideoCapture
	props Props
}

// OpenFile opens path for reading.
func OpenFile(path string) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}

	c, err := gocv.VideoCaptureFile(path)
	if err != nil {
		if c != nil {
			c.Close()
		}
		return nil, fmt.Errorf("%w %s: %v", ErrNotOpened, path, err)
	}
	if !c.IsOpened() {
		c.Close()
		return nil, fmt.Errorf("%w %s", ErrNotOpened, path)
	}

	return &Source{
		path: path,
		cap:  c,
		props: Props{
			FPS:    c.Get(gocv.VideoCaptureFPS),
			Width:  int(c.Get(gocv.VideoCaptureFrameWidth)),
			Height: int(c.Get(gocv.VideoCaptureFrameHeight)),
			Frames: int(c.Get(gocv.VideoCaptureFrameCount)),
		},
	}, nil
}

// Path returns the file being read.
func (s *Source) Path() string {
	return s.path
}

// Props returns the stream properties reported by the container.
func (s *Source) Props() Props {
	return s.props
}

// Read decodes the next frame into frame. It returns false at end of stream.
func (s *Source) Read(frame *gocv.Mat) bool {
	return s.cap.Read(frame)
}

// Close releases the capture.
func (s *Source) Close() error {
	return s.cap.Close()
}
