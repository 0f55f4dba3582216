// Package chart exports per-symbol trend charts as PNG images.
//
// It consumes exactly the data the tracking core hands out in a
// stockwatch.Series: the ordered price series plus the baseline and target
// price levels, drawn as dashed horizontal lines.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/dipwatch/stockwatch"
)

// ErrNotEnoughData reports a series too short to draw a trend line.
var ErrNotEnoughData = fmt.Errorf("not enough observations to chart")

// Export renders the series as a PNG trend chart. A series needs at least
// two observations; shorter ones fail with ErrNotEnoughData so callers can
// skip them cleanly.
func Export(w io.Writer, s stockwatch.Series) error {
	if len(s.Prices) < 2 {
		return fmt.Errorf("%w: %q has %d", ErrNotEnoughData, s.Symbol, len(s.Prices))
	}

	xs := make([]time.Time, len(s.Dates))
	for i, d := range s.Dates {
		xs[i] = d.Time()
	}
	first, last := xs[0], xs[len(xs)-1]

	series := []chart.Series{
		chart.TimeSeries{
			Name:    s.Symbol,
			XValues: xs,
			YValues: s.Prices,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 2,
				DotColor:    chart.ColorBlue,
				DotWidth:    3,
			},
		},
	}
	if s.Baseline > 0 {
		series = append(series,
			chart.TimeSeries{
				Name:    "Baseline",
				XValues: []time.Time{first, last},
				YValues: []float64{s.Baseline, s.Baseline},
				Style: chart.Style{
					StrokeColor:     chart.ColorAlternateGray,
					StrokeDashArray: []float64{5, 5},
				},
			},
			chart.TimeSeries{
				Name:    "Target",
				XValues: []time.Time{first, last},
				YValues: []float64{s.TargetPrice, s.TargetPrice},
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeDashArray: []float64{5, 5},
				},
			},
		)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s)", s.Name, s.Symbol),
		Width:  1000,
		Height: 600,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: fmt.Sprintf("Price (%s)", s.Currency),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// ExportAll writes one PNG per record with enough observations into dir,
// named after the sanitized symbol. It returns the written file paths in
// store order.
func ExportAll(dir string, store *stockwatch.Store) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create chart directory %q: %w", dir, err)
	}

	var written []string
	for rec := range store.Records() {
		if rec.Len() < 2 {
			continue
		}
		path := filepath.Join(dir, fileName(rec.Symbol()))
		if err := writeChart(path, rec.Series()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeChart(path string, s stockwatch.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create chart file %q: %w", path, err)
	}
	defer f.Close()
	if err := Export(f, s); err != nil {
		return fmt.Errorf("cannot render chart for %q: %w", s.Symbol, err)
	}
	return nil
}

// fileName maps a symbol to a filesystem-safe PNG name, e.g.
// "1398.HK" to "1398_HK.png".
func fileName(symbol string) string {
	return strings.ReplaceAll(symbol, ".", "_") + ".png"
}
