package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// DefaultCodec is the FourCC for H.264 in an mp4 container.
const DefaultCodec = "avc1"

// Writer encodes annotated frames to a file.
type Writer struct {
	path string
	vw   *gocv.VideoWriter
}

// CreateWriter opens path for writing color frames of the given size.
func CreateWriter(path, codec string, fps float64, width, height int) (*Writer, error) {
	if codec == "" {
		codec = DefaultCodec
	}
	if fps <= 0 {
		return nil, fmt.Errorf("video: invalid frame rate %v for %s", fps, path)
	}

	vw, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
	if err != nil {
		if vw != nil {
			vw.Close()
		}
		return nil, fmt.Errorf("%w %s for writing: %v", ErrNotOpened, path, err)
	}
	if !vw.IsOpened() {
		vw.Close()
		return nil, fmt.Errorf("%w %s for writing (codec %s)", ErrNotOpened, path, codec)
	}
	return &Writer{path: path, vw: vw}, nil
}

// Path returns the output file.
func (w *Writer) Path() string {
	return w.path
}

// Write appends one frame.
func (w *Writer) Write(frame gocv.Mat) error {
	return w.vw.Write(frame)
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	return w.vw.Close()
}
