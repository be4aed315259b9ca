package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// EncodeJPEG compresses frame for streaming.
func EncodeJPEG(frame gocv.Mat) ([]byte, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("video: empty frame")
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return nil, fmt.Errorf("video: encode jpeg: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases the native buffer.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
