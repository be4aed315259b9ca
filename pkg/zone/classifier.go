package zone

import "sort"

// DefaultFallback is reported before any zone has matched.
const DefaultFallback = "NONE"

// Zone is a labeled rectangle.
type Zone struct {
	Label string
	Rect  Rect
}

// Classifier assigns zone labels to points and remembers the last match.
// Zones are tested in ascending X order, so overlapping zones resolve to the
// leftmost one.
type Classifier struct {
	zones    []Zone
	fallback string
	outside  string
	last     string
	matched  bool
}

// NewClassifier creates a classifier over zones. An empty fallback uses
// DefaultFallback.
func NewClassifier(zones []Zone, fallback string) *Classifier {
	if fallback == "" {
		fallback = DefaultFallback
	}
	sorted := make([]Zone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rect.X < sorted[j].Rect.X
	})
	return &Classifier{zones: sorted, fallback: fallback}
}

// Match returns the first zone containing p.
func (c *Classifier) Match(p Point) (Zone, bool) {
	for _, z := range c.zones {
		if Contains(p, z.Rect) {
			return z, true
		}
	}
	return Zone{}, false
}

// SetOutside names the area between zones. Detected points outside every
// zone then get this label instead of the last matched one.
func (c *Classifier) SetOutside(label string) {
	c.outside = label
}

// Classify labels p. When detected is false, or p lies in no zone and no
// outside label is set, the last label is repeated and matched is false.
func (c *Classifier) Classify(p Point, detected bool) (label string, matched bool) {
	if !detected {
		return c.Last(), false
	}
	if z, ok := c.Match(p); ok {
		c.remember(z.Label)
		return z.Label, true
	}
	if c.outside != "" {
		c.remember(c.outside)
		return c.outside, true
	}
	return c.Last(), false
}

func (c *Classifier) remember(label string) {
	c.last = label
	c.matched = true
}

// Last returns the last matched label, or the fallback if nothing matched yet.
func (c *Classifier) Last() string {
	if !c.matched {
		return c.fallback
	}
	return c.last
}

// Zones returns the zones in test order.
func (c *Classifier) Zones() []Zone {
	return c.zones
}

// Reset forgets the last matched label.
func (c *Classifier) Reset() {
	c.last = ""
	c.matched = false
}
