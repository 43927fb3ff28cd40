package mapping

import (
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/SscSPs/cash_register_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelRegister converts a domain RegisterSession to a model Register
func ToModelRegister(d domain.RegisterSession) models.Register {
	m := models.Register{
		RegisterID:        d.RegisterID,
		TenantKey:         d.TenantID,
		OpenedAt:          d.OpenedAt,
		ClosedAt:          d.ClosedAt,
		OpeningBalance:    d.OpeningBalance,
		RunningSalesTotal: d.RunningSalesTotal,
		Status:            string(d.Status),
		OpenedBy:          d.OpenedBy,
		Version:           d.Version,
	}
	if d.ClosingBalance != nil {
		m.ClosingBalance = decimal.NewNullDecimal(*d.ClosingBalance)
	}
	if d.ClosedBy != "" {
		closedBy := d.ClosedBy
		m.ClosedBy = &closedBy
	}
	return m
}

// ToDomainRegister converts a model Register to a domain RegisterSession
func ToDomainRegister(m models.Register) domain.RegisterSession {
	d := domain.RegisterSession{
		RegisterID:        m.RegisterID,
		TenantID:          m.TenantKey,
		OpenedAt:          m.OpenedAt,
		ClosedAt:          m.ClosedAt,
		OpeningBalance:    m.OpeningBalance,
		RunningSalesTotal: m.RunningSalesTotal,
		Status:            domain.RegisterStatus(m.Status),
		OpenedBy:          m.OpenedBy,
		Version:           m.Version,
	}
	if m.ClosingBalance.Valid {
		balance := m.ClosingBalance.Decimal
		d.ClosingBalance = &balance
	}
	if m.ClosedBy != nil {
		d.ClosedBy = *m.ClosedBy
	}
	return d
}
