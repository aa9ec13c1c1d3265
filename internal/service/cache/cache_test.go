package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"SentiPnL/internal/domain/models"
)

func TestTTLCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.SetBytes(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if b, ok, _ := c.GetBytes(ctx, "k"); !ok || string(b) != "v" {
		t.Fatalf("got %q %v", b, ok)
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.GetBytes(ctx, "k"); ok {
		t.Fatalf("expected expiry")
	}
}

func TestTTLCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache()
	_ = c.SetBytes(ctx, "k", []byte("v"), 0)
	c.now = func() time.Time { return time.Now().Add(1000 * time.Hour) }
	if _, ok, _ := c.GetBytes(ctx, "k"); !ok {
		t.Fatalf("entry without ttl must not expire")
	}
}

func TestReportCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rc := NewReportCache(NewTTLCache(), "test", time.Hour)

	if _, err := rc.Latest(ctx); !errors.Is(err, models.ErrNoReport) {
		t.Fatalf("expected ErrNoReport, got %v", err)
	}

	in := &models.Report{
		ID:         "r1",
		MergedRows: 7,
		Buckets:    []models.BucketStats{{Bucket: models.BucketFear, Trades: 7, TotalPnL: "12.5"}},
	}
	if err := rc.SetLatest(ctx, in); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, err := rc.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if out.ID != "r1" || out.MergedRows != 7 || out.Buckets[0].TotalPnL != "12.5" {
		t.Fatalf("got %+v", out)
	}
}

func TestReportCacheKey(t *testing.T) {
	ctx := context.Background()
	store := NewTTLCache()
	rc := NewReportCache(store, "", 0)
	_ = rc.SetLatest(ctx, &models.Report{ID: "x"})
	if _, ok, _ := store.GetBytes(ctx, "sentipnl:report:latest"); !ok {
		t.Fatalf("expected default-prefixed key")
	}
}

type downCache struct{ *TTLCache }

func (downCache) Ping(context.Context) error { return errors.New("dial tcp: refused") }

func TestReportCacheHealth(t *testing.T) {
	ctx := context.Background()
	if err := NewReportCache(NewTTLCache(), "", 0).Health(ctx); err != nil {
		t.Fatalf("in-process cache must be healthy: %v", err)
	}
	if err := NewReportCache(downCache{NewTTLCache()}, "", 0).Health(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}
}
