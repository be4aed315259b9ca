package arena

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoVideos indicates a directory input matched no videos.
var ErrNoVideos = errors.New("arena: no videos found")

// Job is one video and the files tracking it produces.
type Job struct {
	Input string
	CSV   string
	Video string
}

// Name is the input's base name without extension.
func (j Job) Name() string {
	return baseName(j.Input)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Plan lists the jobs for cfg. A single file writes into OutputDir; a
// directory writes into its output_csv and output_videos subdirectories.
// Directory videos are processed in name order.
func Plan(cfg Config) ([]Job, error) {
	info, err := os.Stat(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	if !info.IsDir() {
		return []Job{newJob(cfg, cfg.Input, cfg.OutputDir, cfg.OutputDir)}, nil
	}

	inputs, err := filepath.Glob(filepath.Join(cfg.Input, cfg.Pattern))
	if err != nil {
		return nil, fmt.Errorf("arena: pattern %q: %w", cfg.Pattern, err)
	}
	csvDir := filepath.Join(cfg.OutputDir, "output_csv")
	videoDir := filepath.Join(cfg.OutputDir, "output_videos")

	var jobs []Job
	for _, in := range inputs {
		if fi, err := os.Stat(in); err != nil || fi.IsDir() {
			continue
		}
		jobs = append(jobs, newJob(cfg, in, csvDir, videoDir))
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w in %s matching %s", ErrNoVideos, cfg.Input, cfg.Pattern)
	}
	return jobs, nil
}

func newJob(cfg Config, input, csvDir, videoDir string) Job {
	name := baseName(input)
	return Job{
		Input: input,
		CSV:   filepath.Join(csvDir, "centroid_"+name+".csv"),
		Video: filepath.Join(videoDir, "tracked_"+name+"."+cfg.Container),
	}
}

// outputDirs returns the directories jobs write into.
func outputDirs(jobs []Job) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, j := range jobs {
		for _, d := range []string{filepath.Dir(j.CSV), filepath.Dir(j.Video)} {
			if !seen[d] {
				seen[d] = true
				dirs = append(dirs, d)
			}
		}
	}
	return dirs
}
