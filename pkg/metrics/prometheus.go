package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analyses    *prometheus.CounterVec
	rowsLoaded  *prometheus.GaugeVec
	mergedRows  prometheus.Gauge
	bucketPnL   *prometheus.GaugeVec
	bucketWins  *prometheus.GaugeVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New registers the recorder on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the recorder on reg; tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentipnl_analyses_total",
				Help: "Analysis runs by result",
			},
			[]string{"result"},
		),
		rowsLoaded: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentipnl_rows_loaded",
				Help: "Rows loaded from each source in the last run",
			},
			[]string{"source"},
		),
		mergedRows: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "sentipnl_merged_rows",
				Help: "Rows in the merged dataset of the last run",
			},
		),
		bucketPnL: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentipnl_bucket_mean_pnl",
				Help: "Mean closed PnL per sentiment zone",
			},
			[]string{"bucket"},
		),
		bucketWins: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentipnl_bucket_win_rate",
				Help: "Win rate per sentiment zone",
			},
			[]string{"bucket"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentipnl_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentipnl_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis counts a finished run; result is "ok" or "error".
func (r *Recorder) RecordAnalysis(result string) {
	r.analyses.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordRowsLoaded(source string, n int) {
	r.rowsLoaded.WithLabelValues(source).Set(float64(n))
}

func (r *Recorder) RecordMergedRows(n int) {
	r.mergedRows.Set(float64(n))
}

func (r *Recorder) RecordBucket(bucket string, meanPnL, winRate float64) {
	r.bucketPnL.WithLabelValues(bucket).Set(meanPnL)
	r.bucketWins.WithLabelValues(bucket).Set(winRate)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordAnalysis(string)                 {}
func (Nop) RecordRowsLoaded(string, int)          {}
func (Nop) RecordMergedRows(int)                  {}
func (Nop) RecordBucket(string, float64, float64) {}
func (Nop) RecordError(string)                    {}
func (Nop) RecordLatency(string, float64)         {}
