package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
)

// ReportCache stores the latest report as JSON under "<prefix>:report:latest".
type ReportCache struct {
	store BytesCache
	key   string
	ttl   time.Duration
}

var (
	_ domrepo.ReportCache   = (*ReportCache)(nil)
	_ domrepo.HealthChecker = (*ReportCache)(nil)
)

func NewReportCache(store BytesCache, prefix string, ttl time.Duration) *ReportCache {
	if prefix == "" {
		prefix = "sentipnl"
	}
	return &ReportCache{store: store, key: prefix + ":report:latest", ttl: ttl}
}

func (c *ReportCache) SetLatest(ctx context.Context, r *models.Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return c.store.SetBytes(ctx, c.key, b, c.ttl)
}

// Latest returns models.ErrNoReport on a miss.
func (c *ReportCache) Latest(ctx context.Context) (*models.Report, error) {
	b, ok, err := c.store.GetBytes(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrNoReport
	}
	var r models.Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &r, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Health pings the backing store when it is remote; in-process stores are always healthy.
func (c *ReportCache) Health(ctx context.Context) error {
	if p, ok := c.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
