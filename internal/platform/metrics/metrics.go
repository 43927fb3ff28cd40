package metrics

import (
	"strings"
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationOpenRegister  = "open_register"
	OperationCloseRegister = "close_register"
	OperationPostSale      = "post_sale"
)

// Metrics captures register lifecycle and sale posting signals.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	salesPosted      prometheus.Counter
	saleFailures     *prometheus.CounterVec
	postSaleDuration prometheus.Histogram
	stockRetries     prometheus.Counter
	conflicts        *prometheus.CounterVec
	transitions      *prometheus.CounterVec
}

// New builds the collectors and registers them with registerer (the default registerer when nil).
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		salesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cash_register_sales_posted_total",
			Help: "Sales committed against an open register.",
		}),
		saleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cash_register_sale_failures_total",
			Help: "Sale posting failures by low-cardinality reason.",
		}, []string{"reason"}),
		postSaleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cash_register_post_sale_duration_seconds",
			Help:    "End-to-end latency of a sale posting unit of work.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		stockRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cash_register_stock_decrement_retries_total",
			Help: "Conditional stock decrements retried after losing a race.",
		}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cash_register_conflicts_total",
			Help: "Optimistic-concurrency conflicts surfaced to callers by operation.",
		}, []string{"operation"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cash_register_transitions_total",
			Help: "Register lifecycle transitions.",
		}, []string{"to"}),
	}

	registerer.MustRegister(
		m.salesPosted,
		m.saleFailures,
		m.postSaleDuration,
		m.stockRetries,
		m.conflicts,
		m.transitions,
	)
	return m
}

// SalePosted records a committed sale and how long the posting took.
func (m *Metrics) SalePosted(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.salesPosted.Inc()
	m.postSaleDuration.Observe(elapsed.Seconds())
}

// SaleFailed records a failed posting, labelled by error class.
func (m *Metrics) SaleFailed(err error) {
	if m == nil || err == nil {
		return
	}
	m.saleFailures.WithLabelValues(Reason(err)).Inc()
}

// StockRetry records one retried conditional decrement.
func (m *Metrics) StockRetry() {
	if m == nil {
		return
	}
	m.stockRetries.Inc()
}

// Conflict records a ConflictError surfaced by operation.
func (m *Metrics) Conflict(operation string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(operation).Inc()
}

// Transition records a register moving into status to.
func (m *Metrics) Transition(to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to).Inc()
}

// Reason maps an error onto a metric label.
func Reason(err error) string {
	return strings.ToLower(apperrors.Kind(err))
}
