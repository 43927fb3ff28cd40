package dto

import (
	"time"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Register DTOs ---

// OpenRegisterRequest defines data for opening a register session.
type OpenRegisterRequest struct {
	Operator       string           `json:"operator" binding:"required"`
	OpeningBalance *decimal.Decimal `json:"openingBalance" binding:"required"` // >= 0, checked by the service
}

// CloseRegisterRequest defines data for closing a register session.
type CloseRegisterRequest struct {
	RegisterID     int64            `json:"registerId" binding:"required,gt=0"`
	Operator       string           `json:"operator" binding:"required"`
	ClosingBalance *decimal.Decimal `json:"closingBalance" binding:"required"` // >= 0, checked by the service
}

// RegisterResponse defines data returned for a register session.
type RegisterResponse struct {
	RegisterID        int64            `json:"registerId"`
	OpenedAt          time.Time        `json:"openedAt"`
	ClosedAt          *time.Time       `json:"closedAt,omitempty"`
	OpeningBalance    decimal.Decimal  `json:"openingBalance"`
	ClosingBalance    *decimal.Decimal `json:"closingBalance,omitempty"`
	RunningSalesTotal decimal.Decimal  `json:"runningSalesTotal"`
	Status            string           `json:"status"`
	IsOpen            bool             `json:"isOpen"` // Derived from Status
	OpenedBy          string           `json:"openedBy"`
	ClosedBy          string           `json:"closedBy,omitempty"`
	Version           int64            `json:"version"`
}

// ToRegisterResponse converts domain.RegisterSession to DTO.
func ToRegisterResponse(r *domain.RegisterSession) RegisterResponse {
	return RegisterResponse{
		RegisterID:        r.RegisterID,
		OpenedAt:          r.OpenedAt,
		ClosedAt:          r.ClosedAt,
		OpeningBalance:    r.OpeningBalance,
		ClosingBalance:    r.ClosingBalance,
		RunningSalesTotal: r.RunningSalesTotal,
		Status:            string(r.Status),
		IsOpen:            r.IsOpen(),
		OpenedBy:          r.OpenedBy,
		ClosedBy:          r.ClosedBy,
		Version:           r.Version,
	}
}
