package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
	applogger "SentiPnL/pkg/logger"
	"SentiPnL/pkg/util"
)

const (
	colEpochMillis  = "timestamp"
	colTimestampIST = "timestamp ist"
)

// CSVTradeSource loads the trader export from the first existing path.
type CSVTradeSource struct {
	paths []string
	l     *applogger.Logger
}

func NewCSVTradeSource(paths []string, l *applogger.Logger) *CSVTradeSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &CSVTradeSource{paths: paths, l: l}
}

var _ domrepo.TradeSource = (*CSVTradeSource)(nil)

func (s *CSVTradeSource) LoadTrades(ctx context.Context) (*models.TradeSet, error) {
	path, err := firstExisting(s.paths)
	if err != nil {
		return nil, fmt.Errorf("trader data: %w", err)
	}
	t, err := readCSVFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.build(t)
}

func (s *CSVTradeSource) build(t *csvTable) (*models.TradeSet, error) {
	var parse func(string) (time.Time, bool)
	var col string
	switch {
	case t.has(colEpochMillis) && allNumeric(t.rows, colEpochMillis):
		s.l.Info("trader time from numeric column", applogger.String("column", colEpochMillis))
		col, parse = colEpochMillis, util.ParseEpochMillis
	case t.has(colTimestampIST):
		s.l.Info("trader time from string column", applogger.String("column", colTimestampIST))
		col, parse = colTimestampIST, util.ParseDayFirst
	default:
		return nil, fmt.Errorf("%s: %w", t.path, models.ErrNoTimeColumn)
	}

	set := &models.TradeSet{Source: t.path, Columns: t.columns, Records: make([]models.TradeRecord, 0, len(t.rows))}
	for _, row := range t.rows {
		ts, ok := parse(row[col])
		if !ok {
			set.Dropped++
			continue
		}
		set.Records = append(set.Records, models.TradeRecord{Row: row, Time: ts, DateKey: util.DateKey(ts)})
	}
	if set.Dropped > 0 {
		s.l.Warn("trader rows without a parsable time dropped", applogger.Int("dropped", set.Dropped))
	}
	return set, nil
}

// allNumeric reports whether every present value of col is a number.
// Empty and NaN-like cells are skipped; a column of only those is not numeric.
func allNumeric(rows []map[string]string, col string) bool {
	seen := false
	for _, r := range rows {
		v := strings.TrimSpace(r[col])
		if util.IsMissing(v) {
			continue
		}
		if !util.IsNumeric(v) {
			return false
		}
		seen = true
	}
	return seen
}
