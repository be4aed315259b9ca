package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teslashibe/go-arena/internal/log"
)

// Batch analyses tracking CSVs and writes a report per track plus a
// summary of all of them.
type Batch struct {
	Params    Params
	OutputDir string
	Plots     bool // Write trajectory PNGs and speed charts
}

// FindCSVs returns path itself, or the CSV files inside it when it is a
// directory, in name order.
func FindCSVs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no csv files in %s", ErrEmpty, path)
	}
	return files, nil
}

// Run analyses every file and writes the reports. Tracks that cannot be
// analysed are logged and skipped.
func (b Batch) Run(ctx context.Context, files []string) ([]Named, error) {
	if err := b.Params.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	logger := log.Component("analysis")
	var results []Named
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		samples, err := ReadFile(file)
		if err != nil {
			return results, err
		}
		base := strings.TrimPrefix(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)), "centroid_")

		for _, track := range SplitByRegion(samples) {
			name := base
			if track.Region != "" {
				name += "_" + track.Region
			}

			res, err := Analyze(track, b.Params)
			if err != nil {
				logger.Warn("track skipped", "file", file, "region", track.Region, "error", err)
				continue
			}
			if err := b.write(name, res); err != nil {
				return results, err
			}
			logger.Info("track analysed",
				"name", name,
				"seconds", res.Seconds(),
				"distance_cm", res.TotalDistance,
				"mean_speed", res.MeanSpeed)
			results = append(results, Named{Name: name, Result: res})
		}
	}

	if err := b.writeFile("summary.csv", func(f *os.File) error {
		return WriteSummary(f, results)
	}); err != nil {
		return results, err
	}
	return results, nil
}

func (b Batch) write(name string, res Result) error {
	if err := b.writeFile("analysed_"+name+".csv", func(f *os.File) error {
		return WriteSeries(f, res)
	}); err != nil {
		return err
	}
	if !b.Plots {
		return nil
	}
	if err := PlotTrajectory(res, name, filepath.Join(b.OutputDir, "trajectory_"+name+".png")); err != nil {
		return err
	}
	return b.writeFile("speed_"+name+".html", func(f *os.File) error {
		return RenderSpeedChart(f, res, name)
	})
}

func (b Batch) writeFile(name string, fn func(*os.File) error) error {
	path := filepath.Join(b.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("analysis: write %s: %w", path, err)
	}
	return f.Close()
}
