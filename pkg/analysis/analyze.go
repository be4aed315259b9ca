package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by Analyze.
var (
	ErrTooFewSamples = errors.New("analysis: fewer than two samples in range")
	ErrNoExtent      = errors.New("analysis: track does not span the arena")
)

// Params configures an analysis.
type Params struct {
	FPS      float64 // Recording frame rate
	ArenaCM  float64 // Side length of the square arena
	Start    float64 // Seconds skipped at the start of the recording
	Duration float64 // Seconds analysed after Start; 0 keeps the rest
	Window   int     // Frames in the rolling distance mean
}

// DefaultParams matches a ten minute open field test in a 48 cm arena.
func DefaultParams() Params {
	return Params{
		FPS:      32.318,
		ArenaCM:  48,
		Duration: 600,
		Window:   5,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	switch {
	case p.FPS <= 0:
		return fmt.Errorf("analysis: fps must be positive, got %g", p.FPS)
	case p.ArenaCM <= 0:
		return fmt.Errorf("analysis: arena size must be positive, got %g", p.ArenaCM)
	case p.Start < 0:
		return fmt.Errorf("analysis: start must not be negative, got %g", p.Start)
	case p.Duration < 0:
		return fmt.Errorf("analysis: duration must not be negative, got %g", p.Duration)
	case p.Window < 1:
		return fmt.Errorf("analysis: window must be at least 1, got %d", p.Window)
	}
	return nil
}

// Result holds per-frame series and totals for one track. Series values are
// NaN where they are undefined: the first frame has no distance and the
// rolling mean needs a full window.
type Result struct {
	Region      string
	Params      Params
	Samples     []Sample
	PixelsPerCM float64

	Distance   []float64 // cm moved since the previous frame
	Rolling    []float64 // Rolling mean of Distance over Window frames
	Cumulative []float64 // Running sum of Rolling
	Speed      []float64 // cm/s

	TotalDistance float64            // cm
	MeanSpeed     float64            // cm/s
	Dwell         map[string]float64 // Seconds spent per location
}

// Seconds is the analysed duration.
func (r Result) Seconds() float64 {
	return float64(len(r.Samples)) / r.Params.FPS
}

// Analyze computes distance, speed and dwell time for a single track.
func Analyze(t Track, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	samples := trim(t.Samples, p)
	if len(samples) < 2 {
		return Result{}, ErrTooFewSamples
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = s.X, s.Y
	}
	extent := stat.Mean([]float64{
		floats.Max(xs) - floats.Min(xs),
		floats.Max(ys) - floats.Min(ys),
	}, nil)
	if extent <= 0 {
		return Result{}, ErrNoExtent
	}

	r := Result{
		Region:      t.Region,
		Params:      p,
		Samples:     samples,
		PixelsPerCM: extent / p.ArenaCM,
		Dwell:       make(map[string]float64),
	}

	n := len(samples)
	r.Distance = make([]float64, n)
	r.Distance[0] = math.NaN()
	for i := 1; i < n; i++ {
		r.Distance[i] = math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1]) / r.PixelsPerCM
	}

	r.Rolling = rollingMean(r.Distance, p.Window)

	r.Cumulative = make([]float64, n)
	r.Speed = make([]float64, n)
	var sum float64
	var valid []float64
	for i, d := range r.Rolling {
		if math.IsNaN(d) {
			r.Cumulative[i] = math.NaN()
			r.Speed[i] = math.NaN()
			continue
		}
		sum += d
		r.Cumulative[i] = sum
		r.Speed[i] = d * p.FPS
		valid = append(valid, r.Speed[i])
	}
	r.TotalDistance = sum
	if len(valid) > 0 {
		r.MeanSpeed = stat.Mean(valid, nil)
	}

	for _, s := range samples {
		if s.Location != "" {
			r.Dwell[s.Location] += 1 / p.FPS
		}
	}
	return r, nil
}

// trim drops Start seconds of frames then keeps Duration seconds.
func trim(samples []Sample, p Params) []Sample {
	start := int(p.Start * p.FPS)
	if start >= len(samples) {
		return nil
	}
	samples = samples[start:]
	if p.Duration > 0 {
		if end := int(p.Duration * p.FPS); end < len(samples) {
			samples = samples[:end]
		}
	}
	return samples
}

// rollingMean averages each value with the window-1 values before it. A
// window containing NaN yields NaN.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		w := values[i+1-window : i+1]
		if floats.HasNaN(w) {
			out[i] = math.NaN()
			continue
		}
		out[i] = floats.Sum(w) / float64(window)
	}
	return out
}

// Locations returns the locations with dwell time across results, sorted.
func Locations(results []Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range results {
		for loc := range r.Dwell {
			if !seen[loc] {
				seen[loc] = true
				out = append(out, loc)
			}
		}
	}
	sort.Strings(out)
	return out
}
