package render

import (
	"errors"
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/chesstrend/chesstrend/internal/history"
)

// WritePNG renders the history as a raster chart at path. The SVG is the
// canonical artifact; this one exists for contexts that cannot embed SVG
// (some chat clients and older markdown renderers).
func WritePNG(path, title string, entries []history.Entry) error {
	if len(entries) == 0 {
		return errors.New("render: no history entries")
	}

	xs := make([]time.Time, 0, len(entries))
	ys := make([]float64, 0, len(entries))
	for _, e := range entries {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return fmt.Errorf("render: bad entry date %q: %w", e.Date, err)
		}
		xs = append(xs, d)
		ys = append(ys, float64(e.Rating))
	}
	if len(xs) == 1 {
		// go-chart needs two x values to draw a series; extend a single point
		// into a flat one-day segment.
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	minR, maxR := entries[0].Rating, entries[0].Rating
	for _, e := range entries {
		if e.Rating < minR {
			minR = e.Rating
		}
		if e.Rating > maxR {
			maxR = e.Rating
		}
	}

	line := drawing.ColorFromHex("00ff88")
	series := chart.TimeSeries{
		Name:    "rating",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: line,
			StrokeWidth: 3,
			FillColor:   line.WithAlpha(50),
			DotColor:    line,
			DotWidth:    4,
		},
	}

	ch := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis: chart.YAxis{
			Name: "rating",
			// Same vertical padding as the SVG; also keeps the range
			// non-degenerate when every entry has the same rating.
			Range: &chart.ContinuousRange{
				Min: float64(minR - ratingPad),
				Max: float64(maxR + ratingPad),
			},
		},
		Series: []chart.Series{series},
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create png: %w", err)
	}
	defer f.Close()

	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render: render png: %w", err)
	}
	return nil
}
