// Package roi provides region-of-interest selection for tracking sessions.
package roi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// Fixed returns the same rectangles for every session.
type Fixed struct {
	Rects []zone.Rect
}

// SelectRegions returns the first n configured rectangles.
func (f Fixed) SelectRegions(_ gocv.Mat, n int) ([]zone.Rect, error) {
	if len(f.Rects) < n {
		return nil, fmt.Errorf("%w: %d configured, %d requested", tracking.ErrRegionCount, len(f.Rects), n)
	}
	rects := make([]zone.Rect, n)
	copy(rects, f.Rects)
	return rects, nil
}

// ParseRects parses rectangles written as "x,y,w,h;x,y,w,h".
func ParseRects(s string) ([]zone.Rect, error) {
	var rects []zone.Rect
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("roi: %q: want x,y,w,h", part)
		}
		var v [4]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("roi: %q: %w", part, err)
			}
			v[i] = n
		}
		r := zone.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
		if !r.Valid() {
			return nil, fmt.Errorf("roi: %q: width and height must be positive", part)
		}
		rects = append(rects, r)
	}
	if len(rects) == 0 {
		return nil, errors.New("roi: no rectangles")
	}
	return rects, nil
}

// Cache asks the wrapped selector once and reuses its answer, for batches
// recorded with a fixed camera mount.
type Cache struct {
	next tracking.RegionSelector

	mu    sync.Mutex
	rects []zone.Rect
}

// NewCache wraps next.
func NewCache(next tracking.RegionSelector) *Cache {
	return &Cache{next: next}
}

// SelectRegions returns the cached selection, selecting on the first call.
func (c *Cache) SelectRegions(frame gocv.Mat, n int) ([]zone.Rect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rects == nil || len(c.rects) != n {
		rects, err := c.next.SelectRegions(frame, n)
		if err != nil {
			return nil, err
		}
		c.rects = rects
	}
	out := make([]zone.Rect, len(c.rects))
	copy(out, c.rects)
	return out, nil
}
