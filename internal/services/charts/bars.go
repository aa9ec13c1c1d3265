package charts

import (
	"fmt"
	"image/color"
	"math"

	"SentiPnL/internal/domain/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Palette colors the PnL bars per zone.
var Palette = map[models.Bucket]color.RGBA{
	models.BucketExtremeFear:  hexColor("#d62728"),
	models.BucketFear:         hexColor("#ff7f0e"),
	models.BucketGreed:        hexColor("#2ca02c"),
	models.BucketExtremeGreed: hexColor("#1f77b4"),
}

var teal = hexColor("#008080")

func styledPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.Title.Padding = vg.Points(20)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Padding = vg.Points(20)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Padding = vg.Points(10)
	p.X.Tick.Label.Font.Size = vg.Points(12)
	p.Y.Tick.Label.Font.Size = vg.Points(12)
	p.Add(plotter.NewGrid())
	return p
}

// addBars draws one bar per bucket at x = index, each with its own color and a value label
// above positive bars and below negative ones.
func addBars(p *plot.Plot, stats []models.BucketStats, value func(models.BucketStats) float64, fill func(models.Bucket) color.Color, format func(float64) string) error {
	names := make([]string, len(stats))
	for i, s := range stats {
		v := value(s)
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(60))
		if err != nil {
			return fmt.Errorf("bar %s: %w", s.Bucket, err)
		}
		bar.XMin = float64(i)
		bar.Color = fill(s.Bucket)
		bar.LineStyle.Width = 0
		p.Add(bar)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: float64(i), Y: v}},
			Labels: []string{format(v)},
		})
		if err != nil {
			return fmt.Errorf("label %s: %w", s.Bucket, err)
		}
		for j := range lbl.TextStyle {
			lbl.TextStyle[j].XAlign = text.XCenter
			lbl.TextStyle[j].Font.Size = vg.Points(11)
		}
		if v >= 0 {
			lbl.Offset = vg.Point{Y: vg.Points(4)}
		} else {
			lbl.Offset = vg.Point{Y: -vg.Points(14)}
		}
		p.Add(lbl)

		names[i] = string(s.Bucket)
	}
	p.NominalX(names...)
	return nil
}

// RenderPnLBySentiment draws mean PnL per zone with a dashed zero line.
func (r *Renderer) RenderPnLBySentiment(stats []models.BucketStats) (string, error) {
	if len(stats) == 0 {
		return "", nil
	}
	p := styledPlot("Average Trader PnL per Sentiment Zone", "Market Sentiment", "Average PnL (USD)")

	err := addBars(p, stats,
		func(s models.BucketStats) float64 { return s.MeanPnL },
		func(b models.Bucket) color.Color { return Palette[b] },
		func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	)
	if err != nil {
		return "", err
	}

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Black
	zero.Width = vg.Points(1.5)
	zero.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(zero)

	lo, hi := 0.0, 0.0
	for _, s := range stats {
		lo = math.Min(lo, s.MeanPnL)
		hi = math.Max(hi, s.MeanPnL)
	}
	pad := (hi - lo) * 0.15
	if pad == 0 {
		pad = 1
	}
	p.Y.Min, p.Y.Max = lo-pad, hi+pad
	if lo == 0 {
		p.Y.Min = 0
	}

	return r.save(p, PnLFile)
}

// RenderWinRateBySentiment draws the share of winning trades per zone on a 0-110% axis.
func (r *Renderer) RenderWinRateBySentiment(stats []models.BucketStats) (string, error) {
	if len(stats) == 0 {
		return "", nil
	}
	p := styledPlot("Win Rate by Market Sentiment", "Market Sentiment", "Win Rate (%)")

	err := addBars(p, stats,
		func(s models.BucketStats) float64 { return s.WinRate },
		func(models.Bucket) color.Color { return teal },
		func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	)
	if err != nil {
		return "", err
	}

	p.Y.Min, p.Y.Max = 0, 1.1
	p.Y.Tick.Marker = plot.TickerFunc(percentTicks)

	return r.save(p, WinRateFile)
}

// percentTicks labels every 20% up to max.
func percentTicks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for v := 0.0; v <= max+1e-9; v += 0.2 {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.0f%%", v*100)})
	}
	return ticks
}
