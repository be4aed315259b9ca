package tracking

import (
	"github.com/teslashibe/go-arena/pkg/overlay"
	"github.com/teslashibe/go-arena/pkg/tracking/detection"
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// Perception tracks the subject inside one crop of the cleaned mask and
// holds the state carried between frames: the last valid point and the
// classifier's last label.
type Perception struct {
	label   string    // Region label, empty in whole-frame mode
	bounds  zone.Rect // Crop in frame coordinates
	regions []Region  // Whole-frame mode: regions classified against

	classifier *zone.Classifier // nil when the region has no sub-zones

	// Detection state
	lastValidPoint    zone.Point
	hasLastPoint      bool
	consecutiveMisses int
}

// Observation is one perception result in frame coordinates.
type Observation struct {
	Point    zone.Point
	Zone     string
	Matched  bool
	Detected bool
}

func newRegionPerception(cfg *Config, r Region) *Perception {
	p := &Perception{label: r.Label, bounds: r.Rect}
	if zones := cfg.subZones(r.Rect); len(zones) > 0 {
		p.classifier = zone.NewClassifier(zones, cfg.UnknownLabel)
		if cfg.SubZones == SubZonesCenter {
			p.classifier.SetOutside(zone.Edge)
		}
	}
	return p
}

func newScenePerception(cfg *Config, bounds zone.Rect, regions []Region) *Perception {
	zones := make([]zone.Zone, len(regions))
	for i, r := range regions {
		zones[i] = zone.Zone{Label: r.Label, Rect: r.Rect}
	}
	c := zone.NewClassifier(zones, cfg.UnknownLabel)
	c.SetOutside(cfg.OutsideLabel)
	return &Perception{bounds: bounds, regions: regions, classifier: c}
}

// Observe locates the subject in mask, a full-frame cleaned mask.
func (p *Perception) Observe(mask gocv.Mat) Observation {
	crop := mask.Region(p.bounds.Image())
	local, found := detection.Estimate(crop)
	crop.Close()

	return p.update(translate(local, p.bounds), found)
}

// Miss records a frame without a usable mask, such as one the background
// model is still learning from.
func (p *Perception) Miss() Observation {
	return p.update(translate(zone.Point{}, p.bounds), false)
}

func (p *Perception) update(point zone.Point, found bool) Observation {
	if found {
		p.lastValidPoint = point
		p.hasLastPoint = true
		p.consecutiveMisses = 0
	} else {
		p.consecutiveMisses++
		if p.hasLastPoint {
			point = p.lastValidPoint
		}
	}

	obs := Observation{Point: point, Detected: found}
	if p.classifier != nil {
		obs.Zone, obs.Matched = p.classifier.Classify(point, found)
	}
	return obs
}

// Draw annotates frame with the crop's regions, zones and the observed point.
// The marker takes the color of the zone the point is classified in.
func (p *Perception) Draw(frame *gocv.Mat, r *overlay.Renderer, obs Observation) {
	if p.regions != nil {
		for _, reg := range p.regions {
			r.Region(frame, reg.Rect, reg.Label, obs.Matched && obs.Zone == reg.Label)
		}
		r.Marker(frame, obs.Point, p.zoneIndex(obs.Zone))
		return
	}

	r.Region(frame, p.bounds, p.label, false)
	if p.classifier != nil {
		for _, z := range p.classifier.Zones() {
			r.SubZone(frame, z.Rect)
		}
	}
	r.Marker(frame, obs.Point, p.zoneIndex(obs.Zone))
}

// zoneIndex returns the left-to-right position of the zone labeled label,
// or -1 when it names no zone.
func (p *Perception) zoneIndex(label string) int {
	if p.classifier == nil {
		return -1
	}
	for i, z := range p.classifier.Zones() {
		if z.Label == label {
			return i
		}
	}
	return -1
}

// ConsecutiveMisses returns how many frames in a row had no detection.
func (p *Perception) ConsecutiveMisses() int {
	return p.consecutiveMisses
}

// translate converts a centroid local to bounds into frame coordinates.
func translate(local zone.Point, bounds zone.Rect) zone.Point {
	return local.Add(float64(bounds.X), float64(bounds.Y))
}
