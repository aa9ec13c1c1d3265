package repository

import (
	"context"

	"SentiPnL/internal/domain/models"
)

type TradeSource interface {
	LoadTrades(ctx context.Context) (*models.TradeSet, error)
}

type SentimentSource interface {
	LoadSentiment(ctx context.Context) (*models.SentimentSet, error)
}

// ReportStore persists reports for history queries.
type ReportStore interface {
	Save(ctx context.Context, r *models.Report) error
	Latest(ctx context.Context) (*models.Report, error)
	List(ctx context.Context, limit int) ([]models.Report, error)
	Close() error
}

type ReportPublisher interface {
	Publish(ctx context.Context, r *models.Report) error
	Close() error
}

// ReportCache keeps the latest report close to the HTTP handlers.
type ReportCache interface {
	SetLatest(ctx context.Context, r *models.Report) error
	Latest(ctx context.Context) (*models.Report, error)
}

// ReportNotifier pushes a finished report to live subscribers.
type ReportNotifier interface {
	Broadcast(r *models.Report)
}

// HealthChecker is implemented by sinks backed by a remote service.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type ChartRenderer interface {
	RenderAll(ctx context.Context, r *models.Report) ([]string, error)
}

type Metrics interface {
	RecordAnalysis(result string)
	RecordRowsLoaded(source string, n int)
	RecordMergedRows(n int)
	RecordBucket(bucket string, meanPnL, winRate float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
