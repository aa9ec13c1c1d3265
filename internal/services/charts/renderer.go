package charts

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
	applogger "SentiPnL/pkg/logger"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Output file names inside the image directory.
const (
	PnLFile      = "pnl_by_sentiment.png"
	WinRateFile  = "win_rate_by_sentiment.png"
	LeverageFile = "leverage_vs_sentiment.png"
)

// Renderer writes report charts as PNG files.
type Renderer struct {
	Dir    string
	DPI    int
	Width  vg.Length
	Height vg.Length
	l      *applogger.Logger
}

// Option configures Renderer.
type Option func(*Renderer)

func WithDPI(dpi int) Option {
	return func(r *Renderer) {
		if dpi > 0 {
			r.DPI = dpi
		}
	}
}

// WithSizeInches sets the canvas size.
func WithSizeInches(w, h float64) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.Width = vg.Length(w) * vg.Inch
			r.Height = vg.Length(h) * vg.Inch
		}
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.l = l
		}
	}
}

func New(dir string, opts ...Option) *Renderer {
	r := &Renderer{
		Dir:    dir,
		DPI:    300,
		Width:  12 * vg.Inch,
		Height: 8 * vg.Inch,
		l:      applogger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ domrepo.ChartRenderer = (*Renderer)(nil)

// RenderAll draws every chart the report has data for and returns the written paths
// in pnl, win rate, leverage order. A report without buckets yields no charts.
func (r *Renderer) RenderAll(ctx context.Context, rep *models.Report) ([]string, error) {
	if len(rep.Buckets) == 0 {
		r.l.Warn("no sentiment buckets, skipping charts")
		return nil, nil
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("image dir: %w", err)
	}

	var (
		mu    sync.Mutex
		paths = map[string]string{}
	)
	keep := func(name, path string) {
		if path == "" {
			return
		}
		mu.Lock()
		paths[name] = path
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p, err := r.RenderPnLBySentiment(rep.Buckets)
		keep(PnLFile, p)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p, err := r.RenderWinRateBySentiment(rep.Buckets)
		keep(WinRateFile, p)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p, err := r.RenderLeverage(rep.Leverage)
		keep(LeverageFile, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(paths))
	for _, name := range []string{PnLFile, WinRateFile, LeverageFile} {
		if p, ok := paths[name]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// save rasterizes p at the renderer DPI.
func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	c := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	p.Draw(draw.New(c))

	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	r.l.Info("chart saved", applogger.String("path", path))
	return path, nil
}

func hexColor(s string) color.RGBA {
	var c color.RGBA
	c.A = 0xff
	_, _ = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}
