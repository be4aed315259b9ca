package zone

import (
	"fmt"
	"sort"
	"strconv"
)

// Labeling selects how region labels are assigned.
type Labeling string

const (
	// LabelOrdinal numbers regions 1..N from left to right.
	LabelOrdinal Labeling = "ordinal"

	// LabelSelection numbers regions 1..N in the order they were selected.
	LabelSelection Labeling = "selection"

	// LabelPosition names two regions LEFT and RIGHT, and numbers any other
	// count 1..N from left to right.
	LabelPosition Labeling = "position"
)

// Region and strip labels.
const (
	Left   = "LEFT"
	Right  = "RIGHT"
	Center = "center"
	Edge   = "edge"
)

// ParseLabeling validates a labeling name.
func ParseLabeling(s string) (Labeling, error) {
	switch Labeling(s) {
	case LabelOrdinal, LabelSelection, LabelPosition:
		return Labeling(s), nil
	}
	return "", fmt.Errorf("zone: unknown labeling %q", s)
}

// OrderByX returns the indices of rects sorted by ascending top-left X.
// Equal X keeps the input order.
func OrderByX(rects []Rect) []int {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rects[order[a]].X < rects[order[b]].X
	})
	return order
}

// LabelRegions returns one label per rect, in input order.
func LabelRegions(rects []Rect, labeling Labeling) []string {
	labels := make([]string, len(rects))
	if labeling == LabelSelection {
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
		return labels
	}

	order := OrderByX(rects)
	if labeling == LabelPosition && len(rects) == 2 {
		labels[order[0]] = Left
		labels[order[1]] = Right
		return labels
	}
	for rank, idx := range order {
		labels[idx] = strconv.Itoa(rank + 1)
	}
	return labels
}

// StripLabels names n strips from left to right.
func StripLabels(n int) []string {
	switch n {
	case 2:
		return []string{"Left", "Right"}
	case 3:
		return []string{"Left", "Center", "Right"}
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}
