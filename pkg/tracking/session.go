// Package tracking drives per-frame subject tracking across a video:
// foreground extraction, mask cleanup, centroid estimation and zone labeling
// for every region selected on the first frame.
package tracking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/teslashibe/go-arena/internal/log"
	"github.com/teslashibe/go-arena/pkg/overlay"
	"github.com/teslashibe/go-arena/pkg/tracking/detection"
	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// lostAfter is the number of consecutive empty frames after which a
// region's subject is reported lost.
const lostAfter = 30

// Session tracks one video. It owns its background model, so every video
// needs its own session.
type Session struct {
	id       string
	config   Config
	selector RegionSelector
	source   string
	logger   *slog.Logger

	// Pipeline
	subtractor detection.Subtractor
	refiner    *detection.Refiner
	renderer   *overlay.Renderer
	mask       gocv.Mat
	clean      gocv.Mat

	// State
	state       State
	frame       int
	regions     []Region
	perceptions []*Perception
}

// NewSession creates a session with a fresh background model.
func NewSession(config Config, selector RegionSelector) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if selector == nil {
		return nil, &SetupError{Stage: "select regions", Err: fmt.Errorf("no region selector")}
	}

	subtractor, err := detection.NewSubtractor(config.Detection)
	if err != nil {
		return nil, &SetupError{Stage: "background model", Err: err}
	}

	id := uuid.New().String()
	return &Session{
		id:         id,
		config:     config,
		selector:   selector,
		logger:     log.With("session", id),
		subtractor: subtractor,
		refiner:    detection.NewRefiner(config.Detection),
		renderer:   overlay.NewRenderer(),
		mask:       gocv.NewMat(),
		clean:      gocv.NewMat(),
	}, nil
}

// SetSource names the video being tracked, for logs and snapshots.
func (s *Session) SetSource(name string) {
	s.source = name
	s.logger = s.logger.With("source", name)
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle stage.
func (s *Session) State() State {
	return s.state
}

// Frame returns the number of frames processed so far.
func (s *Session) Frame() int {
	return s.frame
}

// Regions returns the selected regions, or nil before the first frame.
func (s *Session) Regions() []Region {
	return s.regions
}

// Process runs one frame through the pipeline and returns one record per
// tracked region. Regions are selected on the first call. Frames the
// background model is still learning from are reported as misses. When
// annotation is enabled the frame is drawn on in place.
func (s *Session) Process(frame *gocv.Mat) (Result, error) {
	if s.state == StateFinished {
		return Result{}, ErrFinished
	}
	if frame == nil || frame.Empty() {
		return Result{}, ErrNoFrame
	}

	s.subtractor.Apply(*frame, &s.mask)
	s.refiner.Refine(s.mask, &s.clean)

	if s.state == StateUninitialized {
		if err := s.selectRegions(*frame); err != nil {
			return Result{}, err
		}
		s.state = StateRunning
	}

	warmup := s.frame < s.config.Detection.WarmupFrames()
	records := make([]Record, 0, len(s.perceptions))
	for _, p := range s.perceptions {
		var obs Observation
		if warmup {
			obs = p.Miss()
		} else {
			obs = p.Observe(s.clean)
		}
		if p.ConsecutiveMisses() == lostAfter {
			s.logger.Warn("subject lost", "region", p.label, "frame", s.frame, "misses", lostAfter)
		}
		records = append(records, s.record(p, obs))
		if s.config.Annotate {
			p.Draw(frame, s.renderer, obs)
		}
	}

	res := Result{Frame: s.frame, Records: records}
	s.frame++
	return res, nil
}

func (s *Session) record(p *Perception, obs Observation) Record {
	pt := obs.Point.Int()
	return Record{
		Session:  s.id,
		Frame:    s.frame,
		Region:   p.label,
		Zone:     obs.Zone,
		X:        pt.X,
		Y:        pt.Y,
		Detected: obs.Detected,
	}
}

func (s *Session) selectRegions(frame gocv.Mat) error {
	rects, err := s.selector.SelectRegions(frame, s.config.Regions)
	if err != nil {
		return &SetupError{Stage: "select regions", Err: err}
	}
	if len(rects) != s.config.Regions {
		return &SetupError{
			Stage: "select regions",
			Err:   fmt.Errorf("%w: got %d, want %d", ErrRegionCount, len(rects), s.config.Regions),
		}
	}

	width, height := frame.Cols(), frame.Rows()
	clamped := make([]zone.Rect, len(rects))
	for i, r := range rects {
		clamped[i] = r.Clamp(width, height)
		if !clamped[i].Valid() {
			return &SetupError{Stage: "select regions", Err: fmt.Errorf("%w: region %d (%v)", ErrEmptyRegion, i+1, r)}
		}
		if clamped[i] != r {
			s.logger.Warn("region clipped to frame", "region", i+1, "selected", r.String(), "clipped", clamped[i].String())
		}
	}

	labels := zone.LabelRegions(clamped, s.config.Labeling)
	s.regions = make([]Region, len(clamped))
	for i := range clamped {
		s.regions[i] = Region{Label: labels[i], Rect: clamped[i]}
	}
	s.state = StateRegionsSelected

	switch s.config.Mode {
	case ModeWholeFrame:
		full := zone.Rect{W: width, H: height}
		s.perceptions = []*Perception{newScenePerception(&s.config, full, s.regions)}
	default:
		s.perceptions = make([]*Perception, len(s.regions))
		for i, r := range s.regions {
			s.perceptions[i] = newRegionPerception(&s.config, r)
		}
	}

	for _, r := range s.regions {
		s.logger.Info("region selected", "label", r.Label, "rect", r.Rect.String())
	}
	return nil
}

// Run processes frames from src until it is exhausted, the viewer asks to
// stop, or ctx is cancelled. Cancellation is checked between frames only.
func (s *Session) Run(ctx context.Context, src FrameSource, out Outputs) error {
	frame := gocv.NewMat()
	defer frame.Close()
	defer s.finishRun(out)

	s.logger.Info("tracking started",
		"regions", s.config.Regions,
		"mode", s.config.Mode,
		"subzones", s.config.SubZones,
		"method", s.config.Detection.Method)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("tracking cancelled", "frames", s.frame)
			return ctx.Err()
		default:
		}

		if !src.Read(&frame) || frame.Empty() {
			s.logger.Info("tracking finished", "frames", s.frame)
			return nil
		}

		res, err := s.Process(&frame)
		if err != nil {
			return err
		}
		if err := s.emit(frame, res, out); err != nil {
			return err
		}

		if out.Viewer != nil && out.Viewer.Show(frame) {
			s.logger.Info("tracking stopped by user", "frames", s.frame)
			return nil
		}
	}
}

func (s *Session) emit(frame gocv.Mat, res Result, out Outputs) error {
	if out.Records != nil {
		for _, rec := range res.Records {
			if err := out.Records.WriteRecord(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
	}
	if out.Video != nil {
		if err := out.Video.Write(frame); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	if out.Observer != nil {
		out.Observer.Observe(frame, s.Snapshot(res))
	}
	return nil
}

// Snapshot describes the session with the records of res.
func (s *Session) Snapshot(res Result) Snapshot {
	return Snapshot{
		Session: s.id,
		Source:  s.source,
		State:   s.state,
		Frame:   res.Frame,
		Regions: s.regions,
		Records: res.Records,
	}
}

func (s *Session) finishRun(out Outputs) {
	s.finish()
	if out.Observer != nil {
		empty := gocv.NewMat()
		out.Observer.Observe(empty, s.Snapshot(Result{Frame: s.frame}))
		empty.Close()
	}
}

func (s *Session) finish() {
	s.state = StateFinished
}

// Close finishes the session and releases the background model.
func (s *Session) Close() error {
	s.finish()
	s.mask.Close()
	s.clean.Close()
	s.refiner.Close()
	return s.subtractor.Close()
}
