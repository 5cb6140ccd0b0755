package node

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/novaguard/novachain/consensus"
)

// Metrics is the admission daemon's prometheus instrumentation: one counter
// vector keyed by verdict code, and a latency histogram for the whole
// admission pipeline.
type Metrics struct {
	Verdicts *prometheus.CounterVec
	Latency  prometheus.Histogram
	PoolSize prometheus.Gauge
}

// NewMetrics registers and returns the daemon's metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "novachain",
			Subsystem: "admission",
			Name:      "verdicts_total",
			Help:      "Count of admission verdicts by result code.",
		}, []string{"code"}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "novachain",
			Subsystem: "admission",
			Name:      "validate_seconds",
			Help:      "Latency of one Validate call.",
			Buckets:   prometheus.DefBuckets,
		}),
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "novachain",
			Subsystem: "mempool",
			Name:      "pool_size",
			Help:      "Current number of pending transactions.",
		}),
	}
	reg.MustRegister(m.Verdicts, m.Latency, m.PoolSize)
	return m
}

// Observe records a completed admission call's code and duration.
func (m *Metrics) Observe(code consensus.ErrorCode, seconds float64) {
	m.Verdicts.WithLabelValues(string(code)).Inc()
	m.Latency.Observe(seconds)
}
