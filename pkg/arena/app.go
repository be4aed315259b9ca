package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/teslashibe/go-arena/internal/log"
	"github.com/teslashibe/go-arena/pkg/monitor"
	"github.com/teslashibe/go-arena/pkg/record"
	"github.com/teslashibe/go-arena/pkg/roi"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/video"
)

// fallbackFPS is used for annotated videos when the input reports no rate.
const fallbackFPS = 30

// App tracks every video of a run in turn.
type App struct {
	config Config
	logger *slog.Logger

	jobs     []Job
	selector tracking.RegionSelector
	store    *record.Store
	monitor  *monitor.Server
}

// New creates an App with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{
		config: cfg,
		logger: log.Component("arena"),
	}, nil
}

// Init plans the jobs and opens shared resources.
// Call this after New() and before Run().
func (a *App) Init() error {
	jobs, err := Plan(a.config)
	if err != nil {
		return err
	}
	for _, dir := range outputDirs(jobs) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("arena: create output dir: %w", err)
		}
	}
	a.jobs = jobs

	a.selector = a.newSelector()

	if a.config.DBPath != "" {
		store, err := record.OpenStore(a.config.DBPath)
		if err != nil {
			return err
		}
		a.store = store
	}

	if a.config.MonitorAddr != "" {
		a.monitor = monitor.New(monitor.DefaultConfig())
	}

	a.logger.Info("run planned",
		"videos", len(jobs),
		"output", a.config.OutputDir,
		"regions", a.config.Tracking.Regions,
		"mode", a.config.Tracking.Mode)
	return nil
}

// Jobs returns the planned jobs.
func (a *App) Jobs() []Job {
	return a.jobs
}

func (a *App) newSelector() tracking.RegionSelector {
	var sel tracking.RegionSelector
	if a.config.Regions != "" {
		// Validate already parsed them.
		rects, _ := roi.ParseRects(a.config.Regions)
		sel = roi.Fixed{Rects: rects}
	} else {
		sel = roi.NewWindow("Select regions")
	}
	if a.config.ReuseRegions {
		sel = roi.NewCache(sel)
	}
	return sel
}

// Run tracks every planned video. It stops at the first failing video or
// when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.monitor != nil {
		mctx, stop := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := a.monitor.Start(mctx, a.config.MonitorAddr); err != nil {
				a.logger.Error("monitor stopped", "error", err)
			}
		}()
		defer func() {
			stop()
			<-done
		}()
	}

	for i, job := range a.jobs {
		a.logger.Info("tracking video", "video", i+1, "total", len(a.jobs), "input", job.Input)
		if err := a.track(ctx, job); err != nil {
			return fmt.Errorf("arena: %s: %w", job.Input, err)
		}
	}
	return nil
}

// track runs a fresh session over one video.
func (a *App) track(ctx context.Context, job Job) (err error) {
	src, err := video.OpenFile(job.Input)
	if err != nil {
		return &tracking.SetupError{Stage: "open video", Err: err}
	}
	defer src.Close()

	session, err := tracking.NewSession(a.config.Tracking, a.selector)
	if err != nil {
		return err
	}
	defer session.Close()
	session.SetSource(job.Name())

	// Runs after the sinks are closed.
	defer func() {
		var setup *tracking.SetupError
		if errors.As(err, &setup) {
			a.discard(job)
		}
	}()

	csv, err := record.CreateCSV(job.CSV, record.LayoutFor(a.config.Tracking))
	if err != nil {
		return &tracking.SetupError{Stage: "create csv", Err: err}
	}
	defer func() {
		if cerr := csv.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()

	props := src.Props()
	fps := props.FPS
	if fps <= 0 {
		fps = fallbackFPS
	}
	writer, err := video.CreateWriter(job.Video, a.config.Codec, fps, props.Width, props.Height)
	if err != nil {
		return &tracking.SetupError{Stage: "create video", Err: err}
	}
	defer writer.Close()

	sinks := record.Multi{csv}
	var stored *record.SessionWriter
	if a.store != nil {
		// Records already written are kept when the run is cancelled.
		stored, err = a.store.BeginSession(context.WithoutCancel(ctx), session.ID(), job.Input, a.config.Tracking)
		if err != nil {
			return &tracking.SetupError{Stage: "begin store session", Err: err}
		}
		sinks = append(sinks, stored)
	}

	out := tracking.Outputs{Records: sinks, Video: writer}
	if a.config.Display {
		win := video.NewWindow("Tracking " + job.Name())
		defer win.Close()
		out.Viewer = win
	}
	if a.monitor != nil {
		out.Observer = a.monitor
	}

	runErr := session.Run(ctx, src, out)

	if stored != nil {
		status := record.StatusFinished
		if runErr != nil {
			status = record.StatusFailed
		}
		if ferr := stored.Finish(session.Frame(), session.Regions(), status); ferr != nil && runErr == nil {
			runErr = ferr
		}
	}
	if runErr != nil {
		return runErr
	}

	a.logger.Info("video tracked",
		"input", job.Input,
		"frames", session.Frame(),
		"csv", job.CSV,
		"video", job.Video)
	return nil
}

// discard removes the outputs of a job that failed before tracking started.
func (a *App) discard(job Job) {
	for _, path := range []string{job.CSV, job.Video} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			a.logger.Warn("remove partial output", "path", path, "error", err)
		}
	}
}

// Shutdown releases shared resources.
func (a *App) Shutdown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close store", "error", err)
		}
	}
}

// IsCancelled reports whether err came from a cancelled run.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
