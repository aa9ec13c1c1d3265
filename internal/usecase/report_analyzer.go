package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"SentiPnL/internal/domain/models"
	drepo "SentiPnL/internal/domain/repository"
	dservice "SentiPnL/internal/domain/service"
	"SentiPnL/internal/services/analytics"
	applogger "SentiPnL/pkg/logger"
	"SentiPnL/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ReportAnalyzer runs the trader/sentiment analysis and fans the report out to the configured sinks.
type ReportAnalyzer struct {
	trades    drepo.TradeSource
	sentiment drepo.SentimentSource
	charts    drepo.ChartRenderer
	cache     drepo.ReportCache
	store     drepo.ReportStore
	pub       drepo.ReportPublisher
	notifier  drepo.ReportNotifier
	metrics   drepo.Metrics
	l         *applogger.Logger
	timeout   time.Duration
	now       func() time.Time
	newID     func() string

	// one analysis at a time; HTTP and startup runs share the sinks
	runMu sync.Mutex
}

var _ dservice.ReportService = (*ReportAnalyzer)(nil)

// AnalyzerOption configures ReportAnalyzer.
type AnalyzerOption func(*ReportAnalyzer)

func WithCharts(r drepo.ChartRenderer) AnalyzerOption {
	return func(a *ReportAnalyzer) { a.charts = r }
}

func WithCache(c drepo.ReportCache) AnalyzerOption {
	return func(a *ReportAnalyzer) { a.cache = c }
}

func WithStore(s drepo.ReportStore) AnalyzerOption {
	return func(a *ReportAnalyzer) { a.store = s }
}

func WithPublisher(p drepo.ReportPublisher) AnalyzerOption {
	return func(a *ReportAnalyzer) { a.pub = p }
}

func WithNotifier(n drepo.ReportNotifier) AnalyzerOption {
	return func(a *ReportAnalyzer) { a.notifier = n }
}

func WithMetrics(m drepo.Metrics) AnalyzerOption {
	return func(a *ReportAnalyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

func WithLogger(l *applogger.Logger) AnalyzerOption {
	return func(a *ReportAnalyzer) {
		if l != nil {
			a.l = l
		}
	}
}

// WithTimeout bounds a single Analyze call; zero means no limit.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *ReportAnalyzer) { a.timeout = d }
}

func NewReportAnalyzer(trades drepo.TradeSource, sentiment drepo.SentimentSource, opts ...AnalyzerOption) *ReportAnalyzer {
	a := &ReportAnalyzer{
		trades:    trades,
		sentiment: sentiment,
		metrics:   metrics.Nop{},
		l:         applogger.Nop(),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze loads both sources, merges them on calendar day and computes per-zone statistics.
func (a *ReportAnalyzer) Analyze(ctx context.Context, opts dservice.AnalyzeOptions) (*models.Report, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := a.now()
	rep, err := a.analyze(ctx, opts)
	a.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordAnalysis("error")
		return nil, err
	}
	a.metrics.RecordAnalysis("ok")

	a.fanOut(ctx, rep)
	return rep, nil
}

func (a *ReportAnalyzer) analyze(ctx context.Context, opts dservice.AnalyzeOptions) (*models.Report, error) {
	var (
		tradeSet *models.TradeSet
		sentSet  *models.SentimentSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		set, err := a.trades.LoadTrades(gctx)
		if err != nil {
			a.metrics.RecordError("load_trades")
			return fmt.Errorf("load trader data: %w", err)
		}
		tradeSet = set
		return nil
	})
	g.Go(func() error {
		set, err := a.sentiment.LoadSentiment(gctx)
		if err != nil {
			a.metrics.RecordError("load_sentiment")
			return fmt.Errorf("load sentiment data: %w", err)
		}
		sentSet = set
		return nil
	})
	if err := g.Wait(); err != nil {
		a.l.Error("loading data failed", applogger.Error(err))
		return nil, err
	}
	a.metrics.RecordRowsLoaded("trades", len(tradeSet.Records))
	a.metrics.RecordRowsLoaded("sentiment", len(sentSet.Points))

	tr := analytics.TradeRange(tradeSet)
	sr := analytics.SentimentRange(sentSet)
	a.l.Info("trader data loaded",
		applogger.String("source", tradeSet.Source),
		applogger.Int("rows", len(tradeSet.Records)),
		applogger.Int("dropped", tradeSet.Dropped),
		applogger.Date("from", tr.From),
		applogger.Date("to", tr.To),
	)
	a.l.Info("sentiment data loaded",
		applogger.String("source", sentSet.Source),
		applogger.Int("rows", len(sentSet.Points)),
		applogger.Int("dropped", sentSet.Dropped),
		applogger.Date("from", sr.From),
		applogger.Date("to", sr.To),
	)
	overlap := analytics.Overlaps(tr, sr)
	if !overlap {
		a.l.Warn("date ranges do not overlap, merge will be empty")
	}

	rows := analytics.Merge(tradeSet, sentSet)
	a.metrics.RecordMergedRows(len(rows))
	if len(rows) == 0 {
		a.metrics.RecordError("empty_merge")
		return nil, models.ErrEmptyMerge
	}
	a.l.Info("datasets merged",
		applogger.Int("rows", len(rows)),
		applogger.Bool("overlap", overlap),
		applogger.Bool("charts", a.charts != nil && !opts.SkipCharts),
	)

	mapping := analytics.MapColumns(analytics.MergedColumns(tradeSet.Columns, sentSet.Columns))
	if mapping.PnL == "" {
		a.l.Warn("no pnl column found, pnl statistics will be empty")
	}
	if mapping.Leverage == "" {
		a.l.Info("no leverage column found")
	}
	analytics.Enrich(rows, mapping)

	rep := &models.Report{
		ID:             a.newID(),
		GeneratedAt:    a.now().UTC(),
		TraderSource:   tradeSet.Source,
		SentimentSrc:   sentSet.Source,
		TraderRange:    tr,
		SentimentRange: sr,
		Overlap:        overlap,
		TradeRows:      len(tradeSet.Records),
		SentimentRows:  len(sentSet.Points),
		MergedRows:     len(rows),
		Mapping:        mapping,
		Buckets:        analytics.Aggregate(rows),
		Correlations:   analytics.Correlate(rows),
		Leverage:       analytics.LeveragePoints(rows),
	}
	for _, b := range rep.Buckets {
		a.metrics.RecordBucket(string(b.Bucket), b.MeanPnL, b.WinRate)
	}

	if a.charts != nil && !opts.SkipCharts {
		paths, err := a.charts.RenderAll(ctx, rep)
		if err != nil {
			a.metrics.RecordError("charts")
			return nil, fmt.Errorf("render charts: %w", err)
		}
		rep.Charts = paths
	}
	return rep, nil
}

// fanOut delivers rep to every configured sink. Failures are logged and counted only.
func (a *ReportAnalyzer) fanOut(ctx context.Context, rep *models.Report) {
	sink := func(name string, fn func() error) {
		if err := fn(); err != nil {
			a.metrics.RecordError("sink_" + name)
			a.l.Warn("report sink failed",
				applogger.String("sink", name),
				applogger.String("id", rep.ID),
				applogger.Error(err),
			)
		}
	}
	if a.cache != nil {
		sink("cache", func() error { return a.cache.SetLatest(ctx, rep) })
	}
	if a.store != nil {
		sink("store", func() error { return a.store.Save(ctx, rep) })
	}
	if a.pub != nil {
		sink("publish", func() error { return a.pub.Publish(ctx, rep) })
	}
	if a.notifier != nil {
		a.notifier.Broadcast(rep)
	}
}

// Latest returns the newest report from the cache, falling back to the store.
func (a *ReportAnalyzer) Latest(ctx context.Context) (*models.Report, error) {
	if a.cache != nil {
		rep, err := a.cache.Latest(ctx)
		if err == nil {
			return rep, nil
		}
		if !errors.Is(err, models.ErrNoReport) {
			a.l.Warn("report cache read failed", applogger.Error(err))
		}
	}
	if a.store != nil {
		rep, err := a.store.Latest(ctx)
		if err != nil {
			return nil, err
		}
		if a.cache != nil {
			_ = a.cache.SetLatest(ctx, rep)
		}
		return rep, nil
	}
	return nil, models.ErrNoReport
}

// History lists stored reports newest first; without a store it is empty.
func (a *ReportAnalyzer) History(ctx context.Context, limit int) ([]models.Report, error) {
	if a.store == nil {
		return []models.Report{}, nil
	}
	return a.store.List(ctx, limit)
}
