package tracking

import (
	"errors"
	"fmt"
)

// Sentinel errors for tracking sessions.
var (
	// ErrNoFrame indicates an empty frame was passed to the session.
	ErrNoFrame = errors.New("tracking: empty frame")

	// ErrFinished indicates the session already finished.
	ErrFinished = errors.New("tracking: session finished")

	// ErrRegionCount indicates the selector returned the wrong number of regions.
	ErrRegionCount = errors.New("tracking: wrong number of regions")

	// ErrEmptyRegion indicates a region has no area inside the frame.
	ErrEmptyRegion = errors.New("tracking: region has no area inside the frame")

	// ErrSelectionCancelled indicates the user aborted region selection.
	ErrSelectionCancelled = errors.New("tracking: region selection cancelled")
)

// SetupError is returned when a session cannot start processing.
// No records are emitted for a session that fails setup.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("tracking: %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tracking: invalid %s: %s", e.Field, e.Message)
}
