package detection

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// NewSubtractor creates a fresh background model for one session.
func NewSubtractor(cfg Config) (Subtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Method {
	case MethodKNN:
		return NewKNN(cfg), nil
	case MethodStatic:
		if _, err := os.Stat(cfg.BackgroundPath); err != nil {
			return nil, fmt.Errorf("background image: %w", err)
		}
		bg := gocv.IMRead(cfg.BackgroundPath, gocv.IMReadColor)
		defer bg.Close()
		if bg.Empty() {
			return nil, fmt.Errorf("background image %s could not be decoded", cfg.BackgroundPath)
		}
		return NewStatic(bg, cfg.DiffThreshold), nil
	default:
		return NewMOG2(cfg), nil
	}
}

// MOG2 wraps OpenCV's Gaussian mixture background subtractor.
// Shadow pixels are marked 127, foreground 255.
type MOG2 struct {
	bs gocv.BackgroundSubtractorMOG2
}

// NewMOG2 creates a MOG2 model with the configured history and threshold.
func NewMOG2(cfg Config) *MOG2 {
	return &MOG2{
		bs: gocv.NewBackgroundSubtractorMOG2WithParams(cfg.History, cfg.VarThreshold, cfg.DetectShadows),
	}
}

// Apply updates the model and writes the mask.
func (m *MOG2) Apply(frame gocv.Mat, mask *gocv.Mat) {
	m.bs.Apply(frame, mask)
}

// Close releases the model.
func (m *MOG2) Close() error {
	return m.bs.Close()
}

// KNN wraps OpenCV's K-nearest neighbours background subtractor.
type KNN struct {
	bs gocv.BackgroundSubtractorKNN
}

// NewKNN creates a KNN model with the configured history and threshold.
func NewKNN(cfg Config) *KNN {
	return &KNN{
		bs: gocv.NewBackgroundSubtractorKNNWithParams(cfg.History, cfg.Dist2Threshold, cfg.DetectShadows),
	}
}

// Apply updates the model and writes the mask.
func (k *KNN) Apply(frame gocv.Mat, mask *gocv.Mat) {
	k.bs.Apply(frame, mask)
}

// Close releases the model.
func (k *KNN) Close() error {
	return k.bs.Close()
}

// Static compares every frame against one fixed background image, such as a
// shot of the empty arena. The model never adapts.
type Static struct {
	background gocv.Mat // Grayscale
	threshold  float32
	gray       gocv.Mat
}

// NewStatic creates a static model. The background is copied.
func NewStatic(background gocv.Mat, threshold float32) *Static {
	s := &Static{
		background: gocv.NewMat(),
		threshold:  threshold,
		gray:       gocv.NewMat(),
	}
	toGray(background, &s.background)
	return s
}

// Apply writes a 0/255 mask of pixels that differ from the background.
func (s *Static) Apply(frame gocv.Mat, mask *gocv.Mat) {
	toGray(frame, &s.gray)
	gocv.AbsDiff(s.gray, s.background, mask)
	gocv.Threshold(*mask, mask, s.threshold, 255, gocv.ThresholdBinary)
}

// Close releases the stored images.
func (s *Static) Close() error {
	if err := s.gray.Close(); err != nil {
		return err
	}
	return s.background.Close()
}

func toGray(src gocv.Mat, dst *gocv.Mat) {
	if src.Channels() == 1 {
		src.CopyTo(dst)
		return
	}
	gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
}
