package roi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

func TestParseRects(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []zone.Rect
		wantErr bool
	}{
		{"single", "10,20,30,40", []zone.Rect{{10, 20, 30, 40}}, false},
		{"two with spaces", " 0, 0, 50, 50 ; 60,0,50,50 ;", []zone.Rect{{0, 0, 50, 50}, {60, 0, 50, 50}}, false},
		{"empty", "", nil, true},
		{"short", "1,2,3", nil, true},
		{"not a number", "a,2,3,4", nil, true},
		{"zero width", "1,2,0,4", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRects(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRects(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRects mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFixed(t *testing.T) {
	f := Fixed{Rects: []zone.Rect{{0, 0, 10, 10}, {20, 0, 10, 10}}}
	frame := gocv.NewMat()
	defer frame.Close()

	got, err := f.SelectRegions(frame, 1)
	if err != nil {
		t.Fatalf("SelectRegions failed: %v", err)
	}
	if len(got) != 1 || got[0] != f.Rects[0] {
		t.Errorf("got %v, want first rect", got)
	}

	if _, err := f.SelectRegions(frame, 3); !errors.Is(err, tracking.ErrRegionCount) {
		t.Errorf("Expected ErrRegionCount, got %v", err)
	}
}

type countingSelector struct {
	calls int
}

func (c *countingSelector) SelectRegions(_ gocv.Mat, n int) ([]zone.Rect, error) {
	c.calls++
	rects := make([]zone.Rect, n)
	for i := range rects {
		rects[i] = zone.Rect{X: i * 10 * c.calls, W: 5, H: 5}
	}
	return rects, nil
}

func TestCacheReusesSelection(t *testing.T) {
	inner := &countingSelector{}
	c := NewCache(inner)
	frame := gocv.NewMat()
	defer frame.Close()

	first, _ := c.SelectRegions(frame, 2)
	second, _ := c.SelectRegions(frame, 2)

	if inner.calls != 1 {
		t.Errorf("inner selector called %d times, want 1", inner.calls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached selection changed (-first +second):\n%s", diff)
	}

	// Returned slices are copies.
	second[0].X = 999
	third, _ := c.SelectRegions(frame, 2)
	if third[0].X == 999 {
		t.Error("Cache leaked its internal slice")
	}
}
