package tracking

import (
	"fmt"

	"github.com/teslashibe/go-arena/pkg/tracking/detection"
	"github.com/teslashibe/go-arena/pkg/zone"
)

// Mode selects how the subject is located among the regions.
type Mode string

const (
	// ModePerRegion tracks one subject inside each region independently.
	ModePerRegion Mode = "per-region"

	// ModeWholeFrame tracks one subject across the whole frame and reports
	// which region it is in.
	ModeWholeFrame Mode = "whole-frame"
)

// SubZones selects how each region is subdivided.
type SubZones string

const (
	SubZonesNone   SubZones = "none"
	SubZonesCenter SubZones = "center" // central fraction vs edge
	SubZonesHalves SubZones = "halves" // Left / Right
	SubZonesThirds SubZones = "thirds" // Left / Center / Right
)

// Config holds all tunable parameters for a tracking session
type Config struct {
	// Regions
	Regions  int           // Number of regions selected on the first frame
	Mode     Mode          // Per-region or whole-frame tracking
	Labeling zone.Labeling // How region labels are assigned

	// Sub-zones
	SubZones       SubZones // Subdivision applied to every region
	CenterFraction float64  // Share of width/height covered by the center zone

	// Labels
	UnknownLabel string // Reported before the first match
	OutsideLabel string // Whole-frame only: label for points between regions

	// Output
	Annotate bool // Draw regions, zones and marker onto frames

	// Foreground extraction and mask cleanup
	Detection detection.Config
}

// DefaultConfig returns a single-region session without sub-zones.
func DefaultConfig() Config {
	return Config{
		Regions:        1,
		Mode:           ModePerRegion,
		Labeling:       zone.LabelOrdinal,
		SubZones:       SubZonesNone,
		CenterFraction: zone.DefaultCenterFraction,
		UnknownLabel:   zone.DefaultFallback,
		Annotate:       true,
		Detection:      detection.DefaultConfig(),
	}
}

// OpenFieldConfig returns the open-field setup: two arenas side by side,
// each split into center and edge.
func OpenFieldConfig() Config {
	cfg := DefaultConfig()
	cfg.Regions = 2
	cfg.Labeling = zone.LabelPosition
	cfg.SubZones = SubZonesCenter
	return cfg
}

// ThirdsConfig returns a single arena split into left, center and right thirds.
func ThirdsConfig() Config {
	cfg := DefaultConfig()
	cfg.SubZones = SubZonesThirds
	return cfg
}

// SocialInteractionConfig returns the social-interaction setup: one subject
// moving between two side chambers, reported as CENTER when in neither.
func SocialInteractionConfig() Config {
	cfg := DefaultConfig()
	cfg.Regions = 2
	cfg.Mode = ModeWholeFrame
	cfg.Labeling = zone.LabelPosition
	cfg.UnknownLabel = "CENTER"
	cfg.OutsideLabel = "CENTER"
	return cfg
}

// Preset returns a named configuration.
func Preset(name string) (Config, error) {
	switch name {
	case "", "default":
		return DefaultConfig(), nil
	case "open-field":
		return OpenFieldConfig(), nil
	case "thirds":
		return ThirdsConfig(), nil
	case "social":
		return SocialInteractionConfig(), nil
	}
	return Config{}, fmt.Errorf("tracking: unknown preset %q", name)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Regions < 1 {
		return &ConfigError{Field: "Regions", Message: "at least one region is required"}
	}
	switch c.Mode {
	case ModePerRegion, ModeWholeFrame:
	default:
		return &ConfigError{Field: "Mode", Message: fmt.Sprintf("unknown mode %q", c.Mode)}
	}
	switch c.SubZones {
	case SubZonesNone, SubZonesCenter, SubZonesHalves, SubZonesThirds:
	default:
		return &ConfigError{Field: "SubZones", Message: fmt.Sprintf("unknown sub-zone policy %q", c.SubZones)}
	}
	if c.Mode == ModeWholeFrame && c.SubZones != SubZonesNone {
		return &ConfigError{Field: "SubZones", Message: "whole-frame mode does not support sub-zones"}
	}
	if c.SubZones == SubZonesCenter && (c.CenterFraction <= 0 || c.CenterFraction > 1) {
		return &ConfigError{Field: "CenterFraction", Message: "center fraction must be in (0, 1]"}
	}
	if _, err := zone.ParseLabeling(string(c.Labeling)); err != nil {
		return &ConfigError{Field: "Labeling", Message: err.Error()}
	}
	if err := c.Detection.Validate(); err != nil {
		return &ConfigError{Field: "Detection", Message: err.Error()}
	}
	return nil
}

// HasZones reports whether records carry a zone label per region.
func (c *Config) HasZones() bool {
	return c.Mode == ModePerRegion && c.SubZones != SubZonesNone
}

func (c *Config) subZones(r zone.Rect) []zone.Zone {
	switch c.SubZones {
	case SubZonesCenter:
		return []zone.Zone{{Label: zone.Center, Rect: zone.Central(r, c.CenterFraction)}}
	case SubZonesHalves:
		return strips(r, 2)
	case SubZonesThirds:
		return strips(r, 3)
	}
	return nil
}

func strips(r zone.Rect, n int) []zone.Zone {
	rects := zone.Strips(r, n)
	labels := zone.StripLabels(n)
	zones := make([]zone.Zone, n)
	for i := range rects {
		zones[i] = zone.Zone{Label: labels[i], Rect: rects[i]}
	}
	return zones
}
