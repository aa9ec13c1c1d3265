package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"SentiPnL/internal/domain/models"
	dservice "SentiPnL/internal/domain/service"
	"SentiPnL/internal/repository"
	"SentiPnL/internal/service/cache"
)

func day(d int) time.Time { return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC) }

type fakeTrades struct {
	set *models.TradeSet
	err error
}

func (f fakeTrades) LoadTrades(context.Context) (*models.TradeSet, error) { return f.set, f.err }

type fakeSentiment struct {
	set *models.SentimentSet
	err error
}

func (f fakeSentiment) LoadSentiment(context.Context) (*models.SentimentSet, error) {
	return f.set, f.err
}

type fakeCharts struct {
	calls int
}

func (f *fakeCharts) RenderAll(context.Context, *models.Report) ([]string, error) {
	f.calls++
	return []string{"images/pnl_by_sentiment.png"}, nil
}

type fakeNotifier struct {
	mu  sync.Mutex
	got []string
}

func (f *fakeNotifier) Broadcast(r *models.Report) {
	f.mu.Lock()
	f.got = append(f.got, r.ID)
	f.mu.Unlock()
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, *models.Report) error { return errors.New("broker down") }
func (failingPublisher) Close() error                                   { return nil }

func tradeSet() *models.TradeSet {
	rec := func(d int, pnl, lev string) models.TradeRecord {
		return models.TradeRecord{
			DateKey: day(d),
			Row:     map[string]string{"account": "0xabc", "closed pnl": pnl, "leverage": lev},
		}
	}
	return &models.TradeSet{
		Source:  "trades.csv",
		Columns: []string{"account", "closed pnl", "leverage"},
		Records: []models.TradeRecord{
			rec(1, "100", "10"),
			rec(1, "-50", "20"),
			rec(2, "25", "5"),
			rec(5, "999", "1"), // no sentiment for this day
		},
	}
}

func sentimentSet() *models.SentimentSet {
	pt := func(d int, v, c string) models.SentimentPoint {
		return models.SentimentPoint{
			DateKey: day(d),
			Row:     map[string]string{"value": v, "classification": c, "date": day(d).Format("2006-01-02")},
		}
	}
	return &models.SentimentSet{
		Source:  "fear_greed_index.csv",
		Columns: []string{"timestamp", "value", "classification", "date"},
		Points:  []models.SentimentPoint{pt(1, "20", "Extreme Fear"), pt(2, "80", "Extreme Greed"), pt(3, "50", "Neutral")},
	}
}

func newAnalyzer(opts ...AnalyzerOption) *ReportAnalyzer {
	a := NewReportAnalyzer(fakeTrades{set: tradeSet()}, fakeSentiment{set: sentimentSet()}, opts...)
	a.newID = func() string { return "report-1" }
	a.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestAnalyzeBuildsReport(t *testing.T) {
	charts := &fakeCharts{}
	a := newAnalyzer(WithCharts(charts))

	rep, err := a.Analyze(context.Background(), dservice.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if rep.ID != "report-1" || rep.MergedRows != 3 || rep.TradeRows != 4 || rep.SentimentRows != 3 {
		t.Fatalf("report %+v", rep)
	}
	if !rep.Overlap {
		t.Fatalf("ranges should overlap")
	}
	if rep.Mapping.PnL != "closed pnl" || rep.Mapping.Leverage != "leverage" || rep.Mapping.Value != "value" {
		t.Fatalf("mapping %+v", rep.Mapping)
	}
	fear, ok := rep.Bucket(models.BucketExtremeFear)
	if !ok || fear.Trades != 2 || fear.Wins != 1 || fear.MeanPnL != 25 || fear.TotalPnL != "50" {
		t.Fatalf("extreme fear %+v", fear)
	}
	greed, ok := rep.Bucket(models.BucketExtremeGreed)
	if !ok || greed.Trades != 1 || greed.WinRate != 1 {
		t.Fatalf("extreme greed %+v", greed)
	}
	if len(rep.Leverage) != 3 {
		t.Fatalf("leverage points %d", len(rep.Leverage))
	}
	if charts.calls != 1 || len(rep.Charts) != 1 {
		t.Fatalf("charts calls=%d paths=%v", charts.calls, rep.Charts)
	}
}

func TestAnalyzeSkipCharts(t *testing.T) {
	charts := &fakeCharts{}
	a := newAnalyzer(WithCharts(charts))
	if _, err := a.Analyze(context.Background(), dservice.AnalyzeOptions{SkipCharts: true}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if charts.calls != 0 {
		t.Fatalf("charts should be skipped")
	}
}

func TestAnalyzeEmptyMerge(t *testing.T) {
	sent := sentimentSet()
	for i := range sent.Points {
		sent.Points[i].DateKey = sent.Points[i].DateKey.AddDate(1, 0, 0)
	}
	a := NewReportAnalyzer(fakeTrades{set: tradeSet()}, fakeSentiment{set: sent})
	if _, err := a.Analyze(context.Background(), dservice.AnalyzeOptions{}); !errors.Is(err, models.ErrEmptyMerge) {
		t.Fatalf("expected ErrEmptyMerge, got %v", err)
	}
}

func TestAnalyzeLoadError(t *testing.T) {
	a := NewReportAnalyzer(fakeTrades{err: models.ErrSourceNotFound}, fakeSentiment{set: sentimentSet()})
	if _, err := a.Analyze(context.Background(), dservice.AnalyzeOptions{}); !errors.Is(err, models.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestAnalyzeFansOutAndToleratesSinkFailure(t *testing.T) {
	ctx := context.Background()
	rc := cache.NewReportCache(cache.NewTTLCache(), "test", time.Hour)
	store := repository.NewMemoryReportStore(10)
	notifier := &fakeNotifier{}
	a := newAnalyzer(
		WithCache(rc),
		WithStore(store),
		WithPublisher(failingPublisher{}),
		WithNotifier(notifier),
	)

	if _, err := a.Analyze(ctx, dservice.AnalyzeOptions{}); err != nil {
		t.Fatalf("publisher failure must not fail analysis: %v", err)
	}
	if got, err := rc.Latest(ctx); err != nil || got.ID != "report-1" {
		t.Fatalf("cache %v %v", got, err)
	}
	if list, _ := store.List(ctx, 10); len(list) != 1 {
		t.Fatalf("store has %d reports", len(list))
	}
	if len(notifier.got) != 1 || notifier.got[0] != "report-1" {
		t.Fatalf("notified %v", notifier.got)
	}
}

func TestLatestFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	rc := cache.NewReportCache(cache.NewTTLCache(), "test", time.Hour)
	store := repository.NewMemoryReportStore(10)
	_ = store.Save(ctx, &models.Report{ID: "stored"})

	a := newAnalyzer(WithCache(rc), WithStore(store))
	got, err := a.Latest(ctx)
	if err != nil || got.ID != "stored" {
		t.Fatalf("latest %v %v", got, err)
	}
	if cached, err := rc.Latest(ctx); err != nil || cached.ID != "stored" {
		t.Fatalf("store hit should warm the cache: %v %v", cached, err)
	}
}

func TestLatestNoSinks(t *testing.T) {
	a := newAnalyzer()
	if _, err := a.Latest(context.Background()); !errors.Is(err, models.ErrNoReport) {
		t.Fatalf("expected ErrNoReport, got %v", err)
	}
	list, err := a.History(context.Background(), 5)
	if err != nil || len(list) != 0 {
		t.Fatalf("history %v %v", list, err)
	}
}
