// Package observability holds the Prometheus metrics of the settlement
// service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for tradeops.
type Metrics struct {
	OrdersSettled   prometheus.Counter
	OrdersFailed    *prometheus.CounterVec // label: reason
	ProcessingErrs  prometheus.Counter
	BatchesTotal    prometheus.Counter
	BatchSize       prometheus.Histogram
	BatchDuration   prometheus.Histogram
	SettledVolume   prometheus.Counter
	CommissionTotal prometheus.Counter
}

// NewMetrics registers every metric on reg. Pass prometheus.NewRegistry()
// in tests to avoid collisions on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OrdersSettled: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "orders_settled_total",
			Help:      "Orders whose balance and holding mutations committed.",
		}),
		OrdersFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "orders_failed_total",
			Help:      "Orders recorded as FAILED, by failure reason.",
		}, []string{"reason"}),
		ProcessingErrs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "order_processing_errors_total",
			Help:      "Unexpected errors that rolled back an order transaction.",
		}),
		BatchesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "batches_total",
			Help:      "Uploaded batches that were processed.",
		}),
		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tradeops",
			Name:      "batch_orders",
			Help:      "Number of orders per uploaded batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		BatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tradeops",
			Name:      "batch_duration_seconds",
			Help:      "Wall time to settle one uploaded batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		SettledVolume: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "settled_volume_total",
			Help:      "Gross value of settled trades, in currency units.",
		}),
		CommissionTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "commission_earned_total",
			Help:      "Commission earned on settled trades, in currency units.",
		}),
	}
}
