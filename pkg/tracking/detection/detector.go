// Package detection isolates the tracked subject from the static scene using
// background subtraction, mask cleanup and contour centroids.
package detection

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Method names a background subtraction backend.
type Method string

const (
	MethodMOG2   Method = "mog2"   // Gaussian mixture model
	MethodKNN    Method = "knn"    // K-nearest neighbours model
	MethodStatic Method = "static" // Difference against a fixed background image
)

// Subtractor is the interface for background model backends.
type Subtractor interface {
	// Apply updates the model with frame and writes its foreground mask to mask.
	Apply(frame gocv.Mat, mask *gocv.Mat)

	// Close releases resources
	Close() error
}

// Config holds background model and mask cleanup parameters.
type Config struct {
	Method Method

	// Adaptive models
	History        int     // Frames in the model's trailing window
	VarThreshold   float64 // MOG2 squared Mahalanobis distance threshold
	Dist2Threshold float64 // KNN squared distance threshold
	DetectShadows  bool    // Mark shadows separately from foreground

	// Static model
	BackgroundPath string  // Background image for MethodStatic
	DiffThreshold  float32 // Gray-level difference counted as foreground

	// Mask cleanup
	BlurKernel      int     // Gaussian kernel size (odd)
	BaseThreshold   float32 // Base cutoff combined with Otsu
	MorphKernel     int     // Square structuring element size
	MorphIterations int     // Iterations for both close and open
}

// DefaultConfig returns the settings used for open-field recordings.
func DefaultConfig() Config {
	return Config{
		Method:          MethodMOG2,
		History:         2000,
		VarThreshold:    32,
		Dist2Threshold:  400,
		DetectShadows:   true,
		DiffThreshold:   25,
		BlurKernel:      5,
		BaseThreshold:   128,
		MorphKernel:     5,
		MorphIterations: 2,
	}
}

// WarmupFrames returns how many leading frames the model must see before
// its mask can be trusted. Adaptive models start with no background and
// mark every pixel of their first frame as foreground.
func (c Config) WarmupFrames() int {
	if c.Method == MethodStatic {
		return 0
	}
	return 1
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Method {
	case MethodMOG2, MethodKNN:
		if c.History <= 0 {
			return &ConfigError{Field: "History", Message: "history must be positive"}
		}
	case MethodStatic:
		if c.BackgroundPath == "" {
			return &ConfigError{Field: "BackgroundPath", Message: "static method needs a background image"}
		}
	default:
		return &ConfigError{Field: "Method", Message: fmt.Sprintf("unknown method %q", c.Method)}
	}
	if c.BlurKernel <= 0 || c.BlurKernel%2 == 0 {
		return &ConfigError{Field: "BlurKernel", Message: "blur kernel must be a positive odd number"}
	}
	if c.MorphKernel <= 0 {
		return &ConfigError{Field: "MorphKernel", Message: "morph kernel must be positive"}
	}
	if c.MorphIterations < 0 {
		return &ConfigError{Field: "MorphIterations", Message: "morph iterations must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "detection: " + e.Message
}
