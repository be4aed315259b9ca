package zone

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabelRegions(t *testing.T) {
	tests := []struct {
		name     string
		rects    []Rect
		labeling Labeling
		want     []string
	}{
		{
			name:     "two regions right selected first",
			rects:    []Rect{{X: 100, W: 10, H: 10}, {X: 50, W: 10, H: 10}},
			labeling: LabelPosition,
			want:     []string{Right, Left},
		},
		{
			name:     "two regions in order",
			rects:    []Rect{{X: 50, W: 10, H: 10}, {X: 100, W: 10, H: 10}},
			labeling: LabelPosition,
			want:     []string{Left, Right},
		},
		{
			name:     "equal x keeps selection order",
			rects:    []Rect{{X: 10, Y: 80, W: 10, H: 10}, {X: 10, Y: 0, W: 10, H: 10}},
			labeling: LabelPosition,
			want:     []string{Left, Right},
		},
		{
			name:     "three regions ranked by x",
			rects:    []Rect{{X: 300, W: 1, H: 1}, {X: 10, W: 1, H: 1}, {X: 150, W: 1, H: 1}},
			labeling: LabelPosition,
			want:     []string{"3", "1", "2"},
		},
		{
			name:     "ordinal ranks by x",
			rects:    []Rect{{X: 100, W: 10, H: 10}, {X: 50, W: 10, H: 10}},
			labeling: LabelOrdinal,
			want:     []string{"2", "1"},
		},
		{
			name:     "ordinal equal x keeps selection order",
			rects:    []Rect{{X: 40, Y: 50, W: 10, H: 10}, {X: 40, W: 10, H: 10}, {X: 5, W: 10, H: 10}},
			labeling: LabelOrdinal,
			want:     []string{"2", "3", "1"},
		},
		{
			name:     "selection ignores position",
			rects:    []Rect{{X: 100, W: 10, H: 10}, {X: 50, W: 10, H: 10}},
			labeling: LabelSelection,
			want:     []string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabelRegions(tt.rects, tt.labeling)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LabelRegions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStripLabels(t *testing.T) {
	if diff := cmp.Diff([]string{"Left", "Center", "Right"}, StripLabels(3)); diff != "" {
		t.Errorf("thirds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4"}, StripLabels(4)); diff != "" {
		t.Errorf("quarters (-want +got):\n%s", diff)
	}
}

func TestParseLabeling(t *testing.T) {
	for _, name := range []string{"ordinal", "selection", "position"} {
		if _, err := ParseLabeling(name); err != nil {
			t.Errorf("ParseLabeling(%s) error: %v", name, err)
		}
	}
	if _, err := ParseLabeling("compass"); err == nil {
		t.Error("Expected error for unknown labeling")
	}
}
