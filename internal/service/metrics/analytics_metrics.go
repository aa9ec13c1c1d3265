package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sentipnl",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of report endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentipnl",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by report endpoint",
		},
		[]string{"endpoint"},
	)

	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sentipnl",
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Connected websocket subscribers",
		},
	)
)

// Register adds the API collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, WSClients)
	})
}
