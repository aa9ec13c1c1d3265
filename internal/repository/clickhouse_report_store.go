package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
	pkgch "SentiPnL/pkg/clickhouse"
	applogger "SentiPnL/pkg/logger"

	"github.com/shopspring/decimal"
)

// CHReportStore implements ReportStore backed by ClickHouse.
// The full report is kept as JSON; bucket rows are flattened for ad-hoc queries.
type CHReportStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger
}

var (
	_ domrepo.ReportStore   = (*CHReportStore)(nil)
	_ domrepo.HealthChecker = (*CHReportStore)(nil)
)

func NewCHReportStore(ch *pkgch.Client, l *applogger.Logger) *CHReportStore {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHReportStore{ch: ch, db: ch.DB(), l: l}
}

// Health pings the ClickHouse connection.
func (s *CHReportStore) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

func (s *CHReportStore) Save(ctx context.Context, r *models.Report) error {
	start := time.Now()
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := fmt.Sprintf(`INSERT INTO %s.reports
        (id, generated_at, trader_source, sentiment_source, trade_rows, sentiment_rows, merged_rows, overlap, payload)`, s.ch.Database())
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare reports: %w", err)
	}
	if _, err := stmt.ExecContext(ctx,
		r.ID, r.GeneratedAt, r.TraderSource, r.SentimentSrc,
		uint32(r.TradeRows), uint32(r.SentimentRows), uint32(r.MergedRows), boolToUInt8(r.Overlap),
		string(payload),
	); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	qb := fmt.Sprintf(`INSERT INTO %s.report_buckets
        (report_id, generated_at, bucket, trades, pnl_samples, wins, mean_pnl, win_rate, total_pnl, mean_leverage)`, s.ch.Database())
	bstmt, err := tx.PrepareContext(ctx, qb)
	if err != nil {
		return fmt.Errorf("prepare buckets: %w", err)
	}
	for _, b := range r.Buckets {
		total, err := decimal.NewFromString(b.TotalPnL)
		if err != nil {
			total = decimal.Zero
		}
		if _, err := bstmt.ExecContext(ctx,
			r.ID, r.GeneratedAt, string(b.Bucket),
			uint32(b.Trades), uint32(b.PnLSamples), uint32(b.Wins),
			b.MeanPnL, b.WinRate, total, b.MeanLeverage,
		); err != nil {
			return fmt.Errorf("insert bucket %s: %w", b.Bucket, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.l.Error("clickhouse save_report commit error", applogger.String("id", r.ID), applogger.Error(err))
		return fmt.Errorf("commit: %w", err)
	}
	s.l.Info("clickhouse save_report ok",
		applogger.String("id", r.ID),
		applogger.Int("buckets", len(r.Buckets)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

// Latest returns models.ErrNoReport when the table is empty.
func (s *CHReportStore) Latest(ctx context.Context) (*models.Report, error) {
	list, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, models.ErrNoReport
	}
	return &list[0], nil
}

// List returns up to limit reports, newest first.
func (s *CHReportStore) List(ctx context.Context, limit int) ([]models.Report, error) {
	q := fmt.Sprintf(`
        SELECT payload
        FROM %s.reports
        ORDER BY generated_at DESC
        LIMIT ?
    `, s.ch.Database())
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		s.l.Error("clickhouse list_reports query error", applogger.Int("limit", limit), applogger.Error(err))
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]models.Report, 0, limit)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r, err := decodeReport(payload)
		if err != nil {
			s.l.Warn("skipping undecodable report", applogger.Error(err))
			continue
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, nil
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHReportStore) Close() error {
	return s.ch.Close()
}

func decodeReport(payload string) (*models.Report, error) {
	var r models.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
