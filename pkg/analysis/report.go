package analysis

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteSeries writes the per-frame series of r as CSV. Undefined values
// are left empty.
func WriteSeries(w io.Writer, r Result) error {
	cw := csv.NewWriter(w)
	header := []string{"frame", "rectangle", "location", "x", "y", "distance_cm", "rolling_cm", "cumulative_cm", "speed_cm_s"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, s := range r.Samples {
		row := []string{
			strconv.Itoa(i),
			s.Region,
			s.Location,
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(r.Distance[i]),
			formatFloat(r.Rolling[i]),
			formatFloat(r.Cumulative[i]),
			formatFloat(r.Speed[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Named pairs a result with the name it is reported under, usually the
// animal or file it came from.
type Named struct {
	Name string
	Result
}

// WriteSummary writes one row per result with totals and dwell time for
// every location seen in any result.
func WriteSummary(w io.Writer, results []Named) error {
	plain := make([]Result, len(results))
	for i, r := range results {
		plain[i] = r.Result
	}
	locations := Locations(plain)

	cw := csv.NewWriter(w)
	header := []string{"name", "rectangle", "seconds", "pixels_per_cm", "distance_cm", "mean_speed_cm_s"}
	for _, loc := range locations {
		header = append(header, loc+"_s")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Name,
			r.Region,
			formatFloat(r.Seconds()),
			formatFloat(r.PixelsPerCM),
			formatFloat(r.TotalDistance),
			formatFloat(r.MeanSpeed),
		}
		for _, loc := range locations {
			row = append(row, formatFloat(r.Dwell[loc]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
