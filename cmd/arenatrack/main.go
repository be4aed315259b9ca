// arenatrack tracks animals in recorded behavioural videos and writes
// per-frame centroid CSVs and annotated videos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-arena/internal/config"
	"github.com/teslashibe/go-arena/internal/log"
	"github.com/teslashibe/go-arena/pkg/arena"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/tracking/detection"
	"github.com/teslashibe/go-arena/pkg/zone"
)

func main() {
	cfg, level, err := parseFlags()
	log.Init(level)
	if err != nil {
		fatal("configuration error", err)
	}

	app, err := arena.New(cfg)
	if err != nil {
		fatal("configuration error", err)
	}

	if err := app.Init(); err != nil {
		fatal("initialization failed", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		if arena.IsCancelled(err) {
			log.Info("interrupted")
			return
		}
		app.Shutdown()
		fatal("tracking failed", err)
	}
}

func fatal(msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() (arena.Config, string, error) {
	cfg := arena.DefaultConfig()

	input := flag.String("input", "", "Video file or directory of videos")
	output := flag.String("out", cfg.OutputDir, "Output directory (ARENA_OUTPUT_DIR)")
	pattern := flag.String("pattern", cfg.Pattern, "Glob selecting videos in a directory")
	codec := flag.String("codec", cfg.Codec, "FourCC of annotated videos")
	container := flag.String("container", cfg.Container, "File extension of annotated videos")
	level := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error (ARENA_LOG_LEVEL)")

	preset := flag.String("preset", "default", "Tracking preset: default, open-field, thirds, social")
	regions := flag.Int("regions", 0, "Number of regions (overrides preset)")
	mode := flag.String("mode", "", "Tracking mode: per-region, whole-frame (overrides preset)")
	labels := flag.String("labels", "", "Region labels: ordinal, selection, position (overrides preset)")
	subZones := flag.String("subzones", "", "Sub-zones: none, center, halves, thirds (overrides preset)")
	noAnnotate := flag.Bool("no-annotate", false, "Write frames without overlays")

	method := flag.String("method", string(detection.MethodMOG2), "Background model: mog2, knn, static")
	background := flag.String("background", "", "Background image for -method static")
	history := flag.Int("history", 0, "Background model history in frames")
	varThreshold := flag.Float64("var-threshold", 0, "MOG2 variance threshold")

	rois := flag.String("rois", "", "Fixed regions as x,y,w,h;x,y,w,h (default: select interactively)")
	reuse := flag.Bool("reuse-rois", false, "Select regions once for a whole directory")
	display := flag.Bool("display", false, "Show annotated frames while tracking")
	monitorAddr := flag.String("monitor", cfg.MonitorAddr, "Live monitor listen address, e.g. :8090 (ARENA_MONITOR_ADDR)")
	db := flag.String("db", cfg.DBPath, "SQLite record store (ARENA_DB)")

	flag.Parse()
	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}

	tc, err := tracking.Preset(*preset)
	if err != nil {
		return cfg, *level, err
	}
	if *regions > 0 {
		tc.Regions = *regions
	}
	if *mode != "" {
		tc.Mode = tracking.Mode(*mode)
	}
	if *labels != "" {
		l, err := zone.ParseLabeling(*labels)
		if err != nil {
			return cfg, *level, err
		}
		tc.Labeling = l
	}
	if *subZones != "" {
		tc.SubZones = tracking.SubZones(*subZones)
	}
	if *noAnnotate {
		tc.Annotate = false
	}

	tc.Detection.Method = detection.Method(*method)
	tc.Detection.BackgroundPath = *background
	if *history > 0 {
		tc.Detection.History = *history
	}
	if *varThreshold > 0 {
		tc.Detection.VarThreshold = *varThreshold
	}

	cfg.Input = *input
	cfg.OutputDir = *output
	cfg.Pattern = *pattern
	cfg.Codec = *codec
	cfg.Container = *container
	cfg.Regions = *rois
	cfg.ReuseRegions = *reuse
	cfg.Display = *display
	cfg.MonitorAddr = *monitorAddr
	cfg.DBPath = *db
	cfg.Tracking = tc

	if cfg.Input == "" {
		flag.Usage()
		return cfg, *level, fmt.Errorf("missing -input")
	}
	return cfg, *level, nil
}
