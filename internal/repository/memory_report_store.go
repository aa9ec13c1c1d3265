package repository

import (
	"context"
	"sync"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
)

// MemoryReportStore keeps the most recent reports in process. It backs history
// queries when ClickHouse is disabled.
type MemoryReportStore struct {
	mu      sync.RWMutex
	reports []models.Report
	max     int
}

var _ domrepo.ReportStore = (*MemoryReportStore)(nil)

func NewMemoryReportStore(max int) *MemoryReportStore {
	if max <= 0 {
		max = 100
	}
	return &MemoryReportStore{max: max}
}

func (s *MemoryReportStore) Save(_ context.Context, r *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, *r)
	if len(s.reports) > s.max {
		s.reports = s.reports[len(s.reports)-s.max:]
	}
	return nil
}

func (s *MemoryReportStore) Latest(ctx context.Context) (*models.Report, error) {
	list, _ := s.List(ctx, 1)
	if len(list) == 0 {
		return nil, models.ErrNoReport
	}
	return &list[0], nil
}

func (s *MemoryReportStore) List(_ context.Context, limit int) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.reports) {
		limit = len(s.reports)
	}
	out := make([]models.Report, 0, limit)
	for i := len(s.reports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.reports[i])
	}
	return out, nil
}

func (s *MemoryReportStore) Close() error { return nil }
