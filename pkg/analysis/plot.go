package analysis

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotTrajectory saves the path of r as an image. The format follows the
// file extension (.png, .svg, .pdf).
func PlotTrajectory(r Result, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"

	pts := make(plotter.XYs, len(r.Samples))
	for i, s := range r.Samples {
		// Image rows grow downward.
		pts[i] = plotter.XY{X: s.X, Y: -s.Y}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("analysis: trajectory: %w", err)
	}
	line.Width = vg.Points(0.5)
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("analysis: save %s: %w", path, err)
	}
	return nil
}

// RenderSpeedChart writes an HTML page charting speed and cumulative
// distance over time.
func RenderSpeedChart(w io.Writer, r Result, title string) error {
	seconds := make([]string, len(r.Samples))
	speed := make([]opts.LineData, len(r.Samples))
	cumulative := make([]opts.LineData, len(r.Samples))
	for i := range r.Samples {
		seconds[i] = fmt.Sprintf("%.2f", float64(i)/r.Params.FPS)
		speed[i] = lineValue(r.Speed[i])
		cumulative[i] = lineValue(r.Cumulative[i])
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("distance=%.1f cm mean speed=%.2f cm/s", r.TotalDistance, r.MeanSpeed),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)", NameLocation: "middle", NameGap: 25}),
	)
	line.SetXAxis(seconds).
		AddSeries("speed (cm/s)", speed).
		AddSeries("cumulative distance (cm)", cumulative)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("analysis: render chart: %w", err)
	}
	return nil
}

// lineValue maps NaN to a gap in the chart.
func lineValue(v float64) opts.LineData {
	if math.IsNaN(v) {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: v}
}
