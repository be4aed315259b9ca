package roi

import (
	"strconv"

	"github.com/teslashibe/go-arena/pkg/overlay"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// Window lets the user drag each region over the first frame.
type Window struct {
	Title string
}

// NewWindow creates an interactive selector.
func NewWindow(title string) *Window {
	if title == "" {
		title = "Select regions"
	}
	return &Window{Title: title}
}

// SelectRegions opens a window and asks for n rectangles in turn. Regions
// already chosen stay drawn with their number. An empty selection cancels.
func (w *Window) SelectRegions(frame gocv.Mat, n int) ([]zone.Rect, error) {
	canvas := frame.Clone()
	defer canvas.Close()

	renderer := overlay.NewRenderer()
	rects := make([]zone.Rect, 0, n)
	for i := 0; i < n; i++ {
		r := zone.FromImage(gocv.SelectROI(w.Title, canvas))
		if !r.Valid() {
			closeWindow(w.Title)
			return nil, tracking.ErrSelectionCancelled
		}
		rects = append(rects, r)
		renderer.Region(&canvas, r, strconv.Itoa(i+1), false)
	}
	closeWindow(w.Title)
	return rects, nil
}

func closeWindow(title string) {
	win := gocv.NewWindow(title)
	win.Close()
}
