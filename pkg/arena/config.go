// Package arena runs tracking sessions over recorded videos and writes
// their records, annotated videos and live monitor feed.
package arena

import (
	"fmt"
	"strings"

	"github.com/teslashibe/go-arena/internal/config"
	"github.com/teslashibe/go-arena/pkg/roi"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/video"
)

// Default configuration values.
const (
	DefaultPattern   = "*.mp4"
	DefaultContainer = "mp4"
)

// Config holds all configuration for a tracking run.
// Flag parsing is done in cmd/arenatrack; this struct is data only.
type Config struct {
	// Input is a video file or a directory of videos.
	Input string

	// OutputDir receives CSV files and annotated videos.
	OutputDir string

	// Pattern selects videos when Input is a directory.
	Pattern string

	// Codec is the FourCC of annotated videos; Container their extension.
	Codec     string
	Container string

	// Regions fixes the regions as "x,y,w,h;x,y,w,h". Empty selects them
	// interactively on each video's first frame.
	Regions string

	// ReuseRegions selects regions once for a whole directory.
	ReuseRegions bool

	// Display shows annotated frames while tracking. A key press stops the
	// current video.
	Display bool

	// MonitorAddr enables the live monitor when set, e.g. ":8090".
	MonitorAddr string

	// DBPath stores records in SQLite as well when set.
	DBPath string

	Tracking tracking.Config
}

// DefaultConfig returns defaults with environment overrides applied.
func DefaultConfig() Config {
	return Config{
		OutputDir:   config.OutputDir(),
		Pattern:     DefaultPattern,
		Codec:       video.DefaultCodec,
		Container:   DefaultContainer,
		MonitorAddr: config.MonitorAddr(),
		DBPath:      config.DBPath(),
		Tracking:    tracking.DefaultConfig(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Input == "" {
		return &ConfigError{Field: "Input", Message: "an input video or directory is required"}
	}
	if c.OutputDir == "" {
		return &ConfigError{Field: "OutputDir", Message: "must not be empty"}
	}
	if len(c.Codec) != 4 {
		return &ConfigError{Field: "Codec", Message: fmt.Sprintf("%q is not a four character code", c.Codec)}
	}
	if c.Container == "" || strings.ContainsAny(c.Container, "./\\") {
		return &ConfigError{Field: "Container", Message: fmt.Sprintf("%q is not a file extension", c.Container)}
	}
	if c.Pattern == "" {
		return &ConfigError{Field: "Pattern", Message: "must not be empty"}
	}
	if c.Regions != "" {
		rects, err := roi.ParseRects(c.Regions)
		if err != nil {
			return &ConfigError{Field: "Regions", Message: err.Error()}
		}
		if len(rects) < c.Tracking.Regions {
			return &ConfigError{Field: "Regions", Message: fmt.Sprintf("%d given, %d needed", len(rects), c.Tracking.Regions)}
		}
	}
	if err := c.Tracking.Validate(); err != nil {
		return err
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("arena: invalid %s: %s", e.Field, e.Message)
}
