package tracking

import (
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// Record is the tracked position of one region in one frame.
type Record struct {
	Session  string `json:"session"`
	Frame    int    `json:"frame"`
	Region   string `json:"region,omitempty"` // Region label; empty in whole-frame mode
	Zone     string `json:"zone,omitempty"`   // Sub-zone, or the matched region in whole-frame mode
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Detected bool   `json:"detected"`
}

// Result holds the records emitted for one frame.
type Result struct {
	Frame   int
	Records []Record
}

// Region is a labeled region as selected for a session.
type Region struct {
	Label string    `json:"label"`
	Rect  zone.Rect `json:"rect"`
}

// Snapshot describes a session after a processed frame.
type Snapshot struct {
	Session string   `json:"session"`
	Source  string   `json:"source"`
	State   State    `json:"state"`
	Frame   int      `json:"frame"`
	Regions []Region `json:"regions"`
	Records []Record `json:"records"`
}

// FrameSource yields frames in order. *gocv.VideoCapture satisfies it.
type FrameSource interface {
	Read(frame *gocv.Mat) bool
}

// RegionSelector provides the session's regions given its first frame.
type RegionSelector interface {
	SelectRegions(frame gocv.Mat, n int) ([]zone.Rect, error)
}

// RecordSink receives records in emission order.
type RecordSink interface {
	WriteRecord(rec Record) error
}

// FrameSink receives annotated frames. *gocv.VideoWriter satisfies it.
type FrameSink interface {
	Write(frame gocv.Mat) error
}

// Viewer displays annotated frames. Show returns true when the user asked
// to stop.
type Viewer interface {
	Show(frame gocv.Mat) bool
}

// Observer is notified after every processed frame. The frame is only valid
// during the call.
type Observer interface {
	Observe(frame gocv.Mat, snap Snapshot)
}

// Outputs bundles the optional destinations for a run.
type Outputs struct {
	Records  RecordSink
	Video    FrameSink
	Viewer   Viewer
	Observer Observer
}
