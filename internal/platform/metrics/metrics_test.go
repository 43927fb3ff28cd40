package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SalePosted(20 * time.Millisecond)
	m.SalePosted(30 * time.Millisecond)
	m.SaleFailed(&apperrors.InsufficientStockError{ProductID: 1})
	m.SaleFailed(apperrors.NewConflictError("product", 1, "stock changed concurrently"))
	m.SaleFailed(nil)
	m.StockRetry()
	m.Conflict(OperationCloseRegister)
	m.Transition("OPEN")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.salesPosted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.saleFailures.WithLabelValues("insufficient_stock")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.saleFailures.WithLabelValues("conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.stockRetries))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.conflicts.WithLabelValues(OperationCloseRegister)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transitions.WithLabelValues("OPEN")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.SalePosted(time.Second)
		m.SaleFailed(errors.New("boom"))
		m.StockRetry()
		m.Conflict(OperationPostSale)
		m.Transition("CLOSED")
	})
}

func TestReason(t *testing.T) {
	assert.Equal(t, "not_found", Reason(apperrors.NewNotFoundError("product", 4)))
	assert.Equal(t, "internal", Reason(errors.New("boom")))
}
