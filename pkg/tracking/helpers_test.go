package tracking

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/teslashibe/go-arena/pkg/tracking/detection"
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

var white = color.RGBA{255, 255, 255, 0}

type fixedSelector []zone.Rect

func (f fixedSelector) SelectRegions(_ gocv.Mat, _ int) ([]zone.Rect, error) {
	out := make([]zone.Rect, len(f))
	copy(out, f)
	return out, nil
}

type sliceSource struct {
	frames []gocv.Mat
	next   int
}

func (s *sliceSource) Read(m *gocv.Mat) bool {
	if s.next >= len(s.frames) {
		return false
	}
	s.frames[s.next].CopyTo(m)
	s.next++
	return true
}

type recordCollector struct {
	records []Record
}

func (c *recordCollector) WriteRecord(rec Record) error {
	c.records = append(c.records, rec)
	return nil
}

// writeBackground saves a black w x h image and returns its path.
func writeBackground(t *testing.T, w, h int) string {
	t.Helper()
	bg := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC3)
	defer bg.Close()

	path := filepath.Join(t.TempDir(), "background.png")
	if !gocv.IMWrite(path, bg) {
		t.Fatalf("failed to write %s", path)
	}
	return path
}

// squareFrame returns a black frame with a bright 10x10 square at each
// top-left corner given.
func squareFrame(t *testing.T, w, h int, corners ...image.Point) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC3)
	for _, c := range corners {
		gocv.Rectangle(&m, image.Rect(c.X, c.Y, c.X+9, c.Y+9), white, -1)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

// staticConfig switches cfg to a fixed black background of size w x h.
func staticConfig(t *testing.T, cfg Config, w, h int) Config {
	t.Helper()
	cfg.Detection.Method = detection.MethodStatic
	cfg.Detection.BackgroundPath = writeBackground(t, w, h)
	return cfg
}

func newTestSession(t *testing.T, cfg Config, rects ...zone.Rect) *Session {
	t.Helper()
	s, err := NewSession(cfg, fixedSelector(rects))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
