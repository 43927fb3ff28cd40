package domain

import (
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RegisterStatus is the lifecycle state of a register session. OPEN -> CLOSED is the only transition.
type RegisterStatus string

const (
	RegisterOpen   RegisterStatus = "OPEN"
	RegisterClosed RegisterStatus = "CLOSED"
)

// RegisterSession is a bounded period between an open and a close during which sales accumulate.
type RegisterSession struct {
	RegisterID        int64            `json:"registerID"`        // Assigned by the store
	TenantID          string           `json:"tenantID"`          // Owning tenant; one OPEN session per tenant
	OpenedAt          time.Time        `json:"openedAt"`          // Immutable after creation
	ClosedAt          *time.Time       `json:"closedAt"`          // Set once, on close
	OpeningBalance    decimal.Decimal  `json:"openingBalance"`    // >= 0
	ClosingBalance    *decimal.Decimal `json:"closingBalance"`    // Set once, on close
	RunningSalesTotal decimal.Decimal  `json:"runningSalesTotal"` // Sum of finalAmount over the session's sales
	Status            RegisterStatus   `json:"status"`
	OpenedBy          string           `json:"openedBy"`
	ClosedBy          string           `json:"closedBy"`
	Version           int64            `json:"version"` // Bumped by the store on every update
}

// NewRegisterSession builds an OPEN session with a zero running total.
func NewRegisterSession(tenantID, openedBy string, openingBalance decimal.Decimal, openedAt time.Time) (*RegisterSession, error) {
	if err := CheckAmount("opening balance", openingBalance); err != nil {
		return nil, err
	}
	return &RegisterSession{
		TenantID:          tenantID,
		OpenedAt:          openedAt,
		OpeningBalance:    RoundAmount(openingBalance),
		RunningSalesTotal: decimal.Zero,
		Status:            RegisterOpen,
		OpenedBy:          openedBy,
	}, nil
}

// IsOpen reports whether sales may still post to the session.
func (r RegisterSession) IsOpen() bool {
	return r.Status == RegisterOpen
}

// AddSale appends a sale's final amount to the running total.
func (r *RegisterSession) AddSale(finalAmount decimal.Decimal) {
	r.RunningSalesTotal = RoundAmount(r.RunningSalesTotal.Add(finalAmount))
}

// Close freezes the session. salesTotal is the freshly recomputed sum of the session's sales.
func (r *RegisterSession) Close(closedBy string, closingBalance, salesTotal decimal.Decimal, closedAt time.Time) error {
	if !r.IsOpen() {
		return apperrors.NewInvalidStateError("already closed")
	}
	if err := CheckAmount("closing balance", closingBalance); err != nil {
		return err
	}
	balance := RoundAmount(closingBalance)
	r.RunningSalesTotal = RoundAmount(salesTotal)
	r.ClosingBalance = &balance
	r.ClosedAt = &closedAt
	r.ClosedBy = closedBy
	r.Status = RegisterClosed
	return nil
}

// Validate checks that the closing fields are set exactly when the session is CLOSED.
func (r RegisterSession) Validate() error {
	switch r.Status {
	case RegisterOpen:
		if r.ClosedAt != nil || r.ClosingBalance != nil {
			return apperrors.NewInvalidStateError("open register carries closing fields")
		}
	case RegisterClosed:
		if r.ClosedAt == nil || r.ClosingBalance == nil {
			return apperrors.NewInvalidStateError("closed register is missing closing fields")
		}
	default:
		return apperrors.NewValidationFailedError("unknown register status %q", r.Status)
	}
	if r.OpeningBalance.IsNegative() {
		return apperrors.NewValidationFailedError("opening balance must not be negative")
	}
	return nil
}
