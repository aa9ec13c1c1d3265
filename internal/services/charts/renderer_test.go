package charts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"SentiPnL/internal/domain/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		Buckets: []models.BucketStats{
			{Bucket: models.BucketExtremeFear, Trades: 3, MeanPnL: -12.5, WinRate: 0.33},
			{Bucket: models.BucketFear, Trades: 2, MeanPnL: 4, WinRate: 0.5},
			{Bucket: models.BucketGreed, Trades: 4, MeanPnL: 40.25, WinRate: 0.75},
			{Bucket: models.BucketExtremeGreed, Trades: 1, MeanPnL: 0, WinRate: 0},
		},
		Leverage: []models.LeveragePoint{{Value: 10, Leverage: 5}, {Value: 80, Leverage: 20}},
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("%s is not a png", path)
	}
}

func TestRenderAllWritesThreeCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	r := New(dir, WithDPI(72), WithSizeInches(4, 3))

	paths, err := r.RenderAll(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{
		filepath.Join(dir, PnLFile),
		filepath.Join(dir, WinRateFile),
		filepath.Join(dir, LeverageFile),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path %d: got %s want %s", i, paths[i], want[i])
		}
		assertPNG(t, paths[i])
	}
}

func TestRenderAllSkipsLeverageWithoutPoints(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()
	rep.Leverage = nil

	paths, err := New(dir, WithDPI(72), WithSizeInches(4, 3)).RenderAll(context.Background(), rep)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths %v", paths)
	}
	if _, err := os.Stat(filepath.Join(dir, LeverageFile)); !os.IsNotExist(err) {
		t.Fatalf("leverage chart should not exist: %v", err)
	}
}

func TestRenderAllEmptyReport(t *testing.T) {
	paths, err := New(t.TempDir()).RenderAll(context.Background(), &models.Report{})
	if err != nil || len(paths) != 0 {
		t.Fatalf("got %v %v", paths, err)
	}
}

func TestPercentTicks(t *testing.T) {
	ticks := percentTicks(0, 1.1)
	if len(ticks) != 6 {
		t.Fatalf("ticks %v", ticks)
	}
	if ticks[5].Label != "100%" {
		t.Fatalf("last tick %q", ticks[5].Label)
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor("#d62728")
	if c.R != 0xd6 || c.G != 0x27 || c.B != 0x28 || c.A != 0xff {
		t.Fatalf("got %+v", c)
	}
}
