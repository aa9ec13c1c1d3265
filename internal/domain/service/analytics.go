package service

import (
	"context"

	"SentiPnL/internal/domain/models"
)

// AnalyzeOptions tunes a single analysis run.
type AnalyzeOptions struct {
	SkipCharts bool
}

// ReportService runs the sentiment/performance analysis and serves its results.
type ReportService interface {
	Analyze(ctx context.Context, opts AnalyzeOptions) (*models.Report, error)
	Latest(ctx context.Context) (*models.Report, error)
	History(ctx context.Context, limit int) ([]models.Report, error)
}
