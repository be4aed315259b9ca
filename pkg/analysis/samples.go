// Package analysis derives distance, speed and dwell time from tracking
// CSV files.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Errors returned while reading samples.
var (
	ErrMissingColumn = errors.New("analysis: missing column")
	ErrEmpty         = errors.New("analysis: no samples")
)

// Sample is one CSV row: the position of one animal in one frame.
type Sample struct {
	Region   string
	Location string
	X, Y     float64
}

// ReadCSV parses a record CSV in any of the layouts written by the tracker.
// Columns are found by header name; x and y are required.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("analysis: read header: %w", err)
	}

	col := map[string]int{"rectangle": -1, "location": -1, "x": -1, "y": -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := col[name]; ok {
			col[name] = i
		}
	}
	for _, name := range []string{"x", "y"} {
		if col[name] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var samples []Sample
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("analysis: line %d: %w", line, err)
		}

		var s Sample
		if s.X, err = field(row, col["x"]); err != nil {
			return nil, fmt.Errorf("analysis: line %d: x: %w", line, err)
		}
		if s.Y, err = field(row, col["y"]); err != nil {
			return nil, fmt.Errorf("analysis: line %d: y: %w", line, err)
		}
		if i := col["rectangle"]; i >= 0 && i < len(row) {
			s.Region = row[i]
		}
		if i := col["location"]; i >= 0 && i < len(row) {
			s.Location = row[i]
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, ErrEmpty
	}
	return samples, nil
}

func field(row []string, i int) (float64, error) {
	if i >= len(row) {
		return 0, errors.New("missing value")
	}
	return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
}

// ReadFile reads samples from a CSV file.
func ReadFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// Track is the sample series of one region.
type Track struct {
	Region  string
	Samples []Sample
}

// SplitByRegion groups samples by region label in order of first
// appearance.
func SplitByRegion(samples []Sample) []Track {
	index := make(map[string]int)
	var tracks []Track
	for _, s := range samples {
		i, ok := index[s.Region]
		if !ok {
			i = len(tracks)
			index[s.Region] = i
			tracks = append(tracks, Track{Region: s.Region})
		}
		tracks[i].Samples = append(tracks[i].Samples, s)
	}
	return tracks
}
