package repository

import (
	"context"
	"fmt"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
	pkgkafka "SentiPnL/pkg/kafka"
	applogger "SentiPnL/pkg/logger"
)

// ReportEvent is the message published for each finished analysis.
type ReportEvent struct {
	ID          string               `json:"id"`
	GeneratedAt string               `json:"generated_at"`
	MergedRows  int                  `json:"merged_rows"`
	Overlap     bool                 `json:"overlap"`
	Buckets     []models.BucketStats `json:"buckets"`
	Correlation models.Correlations  `json:"correlations"`
}

type publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaReportPublisher implements ReportPublisher with one message per report keyed by report ID.
type KafkaReportPublisher struct {
	p     publisher
	topic string
	l     *applogger.Logger
}

var _ domrepo.ReportPublisher = (*KafkaReportPublisher)(nil)

func NewKafkaReportPublisher(p *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaReportPublisher {
	return newKafkaReportPublisher(p, topic, l)
}

func newKafkaReportPublisher(p publisher, topic string, l *applogger.Logger) *KafkaReportPublisher {
	if l == nil {
		l = applogger.Nop()
	}
	return &KafkaReportPublisher{p: p, topic: topic, l: l}
}

func (k *KafkaReportPublisher) Publish(ctx context.Context, r *models.Report) error {
	ev := ReportEvent{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		MergedRows:  r.MergedRows,
		Overlap:     r.Overlap,
		Buckets:     r.Buckets,
		Correlation: r.Correlations,
	}
	if err := k.p.Publish(ctx, k.topic, []byte(r.ID), ev); err != nil {
		k.l.Error("kafka publish report failed",
			applogger.String("topic", k.topic),
			applogger.String("id", r.ID),
			applogger.Error(err),
		)
		return fmt.Errorf("publish report: %w", err)
	}
	k.l.Debug("report published", applogger.String("topic", k.topic), applogger.String("id", r.ID))
	return nil
}

func (k *KafkaReportPublisher) Close() error {
	return k.p.Close()
}
