// arenastats turns tracking CSVs into distance, speed and dwell-time
// reports.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-arena/internal/config"
	"github.com/teslashibe/go-arena/internal/log"
	"github.com/teslashibe/go-arena/pkg/analysis"
)

func main() {
	params := analysis.DefaultParams()

	input := flag.String("input", "", "Tracking CSV or directory of CSVs")
	output := flag.String("out", "analysed_csv", "Output directory")
	flag.Float64Var(&params.FPS, "fps", params.FPS, "Recording frame rate")
	flag.Float64Var(&params.ArenaCM, "arena-cm", params.ArenaCM, "Arena side length in cm")
	flag.Float64Var(&params.Start, "start", params.Start, "Seconds skipped at the start")
	flag.Float64Var(&params.Duration, "duration", params.Duration, "Seconds analysed after -start (0 for all)")
	flag.IntVar(&params.Window, "window", params.Window, "Frames in the rolling distance mean")
	plots := flag.Bool("plots", true, "Write trajectory plots and speed charts")
	level := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	files, err := analysis.FindCSVs(*input)
	if err != nil {
		log.Error("no input", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	batch := analysis.Batch{Params: params, OutputDir: *output, Plots: *plots}
	results, err := batch.Run(ctx, files)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("interrupted")
			return
		}
		log.Error("analysis failed", "error", err)
		os.Exit(1)
	}
	log.Info("analysis complete", "tracks", len(results), "output", *output)
}
