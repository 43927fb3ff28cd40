package mapping

import (
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/SscSPs/cash_register_app/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale. Items are mapped separately.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:        d.SaleID,
		TenantKey:     d.TenantID,
		RegisterID:    d.RegisterID,
		OperatorID:    d.OperatorID,
		OperatorEmail: d.OperatorEmail,
		CustomerID:    d.CustomerID,
		GrossTotal:    d.GrossTotal,
		Discount:      d.Discount,
		FinalAmount:   d.FinalAmount,
		PaymentMethod: string(d.PaymentMethod),
		Note:          d.Note,
		SoldAt:        d.SoldAt,
	}
}

// ToModelSaleItem converts a domain SaleLineItem to a model SaleItem
func ToModelSaleItem(d domain.SaleLineItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:  d.SaleItemID,
		SaleID:      d.SaleID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Subtotal:    d.Subtotal,
	}
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleLineItem
func ToDomainSaleItem(m models.SaleItem) domain.SaleLineItem {
	return domain.SaleLineItem{
		SaleItemID:  m.SaleItemID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
	}
}

// ToDomainSale converts a model Sale and its item rows to a domain Sale
func ToDomainSale(m models.Sale, items []models.SaleItem) domain.Sale {
	d := domain.Sale{
		SaleID:        m.SaleID,
		TenantID:      m.TenantKey,
		RegisterID:    m.RegisterID,
		OperatorID:    m.OperatorID,
		OperatorEmail: m.OperatorEmail,
		CustomerID:    m.CustomerID,
		Items:         make([]domain.SaleLineItem, len(items)),
		GrossTotal:    m.GrossTotal,
		Discount:      m.Discount,
		FinalAmount:   m.FinalAmount,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Note:          m.Note,
		SoldAt:        m.SoldAt,
	}
	for i, item := range items {
		d.Items[i] = ToDomainSaleItem(item)
	}
	return d
}
