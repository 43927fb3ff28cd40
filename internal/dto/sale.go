package dto

import (
	"time"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Sale DTOs ---

// SaleItemRequest is a single line of a PostSaleRequest. A missing quantity defaults to 1.
type SaleItemRequest struct {
	ProductID int64  `json:"productId" binding:"required,gt=0"`
	Quantity  *int64 `json:"quantity"`
}

// PostSaleRequest defines data for posting a sale against an open register.
type PostSaleRequest struct {
	RegisterID    int64             `json:"registerId" binding:"required,gt=0"`
	OperatorEmail string            `json:"operatorEmail" binding:"required,email"`
	CustomerID    *int64            `json:"customerId"`
	Items         []SaleItemRequest `json:"items" binding:"dive"`
	Discount      *decimal.Decimal  `json:"discount"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	Note          string            `json:"note"`
}

// SaleItemResponse defines data returned for a sale line.
type SaleItemResponse struct {
	SaleItemID  int64           `json:"saleItemId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines data returned for a sale.
type SaleResponse struct {
	SaleID        int64              `json:"saleId"`
	RegisterID    int64              `json:"registerId"`
	OperatorID    int64              `json:"operatorId"`
	OperatorEmail string             `json:"operatorEmail"`
	CustomerID    *int64             `json:"customerId,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	GrossTotal    decimal.Decimal    `json:"grossTotal"`
	Discount      decimal.Decimal    `json:"discount"`
	FinalAmount   decimal.Decimal    `json:"finalAmount"`
	PaymentMethod string             `json:"paymentMethod"`
	Note          string             `json:"note,omitempty"`
	SoldAt        time.Time          `json:"soldAt"`
}

// ToSaleResponse converts domain.Sale to DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			SaleItemID:  item.SaleItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}
	return SaleResponse{
		SaleID:        s.SaleID,
		RegisterID:    s.RegisterID,
		OperatorID:    s.OperatorID,
		OperatorEmail: s.OperatorEmail,
		CustomerID:    s.CustomerID,
		Items:         items,
		GrossTotal:    s.GrossTotal,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		PaymentMethod: string(s.PaymentMethod),
		Note:          s.Note,
		SoldAt:        s.SoldAt,
	}
}

// ListSalesParams defines query parameters for listing a register's sales.
type ListSalesParams struct {
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListSalesResponse wraps a page of sales.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToListSalesResponse converts a page of domain.Sale to DTO.
func ToListSalesResponse(sales []domain.Sale, nextToken *string) ListSalesResponse {
	out := make([]SaleResponse, len(sales))
	for i := range sales {
		out[i] = ToSaleResponse(&sales[i])
	}
	return ListSalesResponse{Sales: out, NextToken: nextToken}
}
