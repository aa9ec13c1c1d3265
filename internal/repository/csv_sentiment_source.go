package repository

import (
	"context"
	"fmt"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
	applogger "SentiPnL/pkg/logger"
	"SentiPnL/pkg/util"
)

// CSVSentimentSource loads a Fear & Greed CSV from the first existing path.
type CSVSentimentSource struct {
	paths []string
	l     *applogger.Logger
}

func NewCSVSentimentSource(paths []string, l *applogger.Logger) *CSVSentimentSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &CSVSentimentSource{paths: paths, l: l}
}

var _ domrepo.SentimentSource = (*CSVSentimentSource)(nil)

func (s *CSVSentimentSource) LoadSentiment(ctx context.Context) (*models.SentimentSet, error) {
	path, err := firstExisting(s.paths)
	if err != nil {
		return nil, fmt.Errorf("sentiment data: %w", err)
	}
	t, err := readCSVFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.build(t)
}

func (s *CSVSentimentSource) build(t *csvTable) (*models.SentimentSet, error) {
	var col string
	switch {
	case t.has("date"):
		col = "date"
	case t.has("timestamp"):
		col = "timestamp"
	default:
		return nil, fmt.Errorf("%s: %w", t.path, models.ErrNoDateColumn)
	}
	s.l.Info("sentiment date column", applogger.String("column", col))

	set := &models.SentimentSet{Source: t.path, Columns: t.columns, Points: make([]models.SentimentPoint, 0, len(t.rows))}
	for _, row := range t.rows {
		ts, ok := util.ParseDayFirst(row[col])
		if !ok {
			set.Dropped++
			continue
		}
		set.Points = append(set.Points, models.SentimentPoint{Row: row, DateKey: util.DateKey(ts)})
	}
	if set.Dropped > 0 {
		s.l.Warn("sentiment rows without a parsable date dropped", applogger.Int("dropped", set.Dropped))
	}
	return set, nil
}
