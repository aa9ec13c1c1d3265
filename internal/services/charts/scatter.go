package charts

import (
	"fmt"
	"image/color"

	"SentiPnL/internal/domain/models"

	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// RenderLeverage scatters leverage against the index value, colored by the value.
// It returns "" without error when there are no points.
func (r *Renderer) RenderLeverage(points []models.LeveragePoint) (string, error) {
	if len(points) == 0 {
		r.l.Info("leverage column missing, skipping leverage plot")
		return "", nil
	}
	p := styledPlot("Leverage Usage vs. Fear & Greed Index", "Fear & Greed Index", "Leverage (x)")

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.Value
		xys[i].Y = pt.Leverage
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return "", fmt.Errorf("scatter: %w", err)
	}

	cmap := moreland.Kindlmann()
	cmap.SetMin(0)
	cmap.SetMax(100)
	cmap.SetAlpha(0.5)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		v := xys[i].X
		if v < 0 {
			v = 0
		} else if v > 100 {
			v = 100
		}
		c, err := cmap.At(v)
		if err != nil {
			c = color.Gray{Y: 128}
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)
	p.X.Min, p.X.Max = 0, 100

	return r.save(p, LeverageFile)
}
