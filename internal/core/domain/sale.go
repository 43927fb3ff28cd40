package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settled a sale.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentPix          PaymentMethod = "PIX"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOther        PaymentMethod = "OTHER"
)

// Valid reports whether p is one of the known payment methods.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBankTransfer, PaymentOther:
		return true
	}
	return false
}

// SaleLineItem is one product line of a sale. Price and name are snapshots taken at posting time.
type SaleLineItem struct {
	SaleItemID  int64           `json:"saleItemID"`
	SaleID      int64           `json:"saleID"`
	ProductID   int64           `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"` // >= 1
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"` // Quantity x UnitPrice
}

// NewSaleLineItem prices a line from the product's current price.
func NewSaleLineItem(product Product, quantity int64) SaleLineItem {
	price := RoundAmount(product.Price)
	return SaleLineItem{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   price,
		Subtotal:    RoundAmount(price.Mul(decimal.NewFromInt(quantity))),
	}
}

// Sale is a frozen record of goods sold against a register session.
type Sale struct {
	SaleID        int64           `json:"saleID"`
	TenantID      string          `json:"tenantID"`
	RegisterID    int64           `json:"registerID"`
	OperatorID    int64           `json:"operatorID"`
	OperatorEmail string          `json:"operatorEmail"`
	CustomerID    *int64          `json:"customerID"`
	Items         []SaleLineItem  `json:"items"`
	GrossTotal    decimal.Decimal `json:"grossTotal"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"finalAmount"` // max(GrossTotal - Discount, 0)
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Note          string          `json:"note"`
	SoldAt        time.Time       `json:"soldAt"`
}

// ComputeTotals derives GrossTotal and FinalAmount from the line items and discount.
// A discount larger than the gross total is cut down to it, so FinalAmount bottoms out at zero.
func (s *Sale) ComputeTotals() {
	gross := decimal.Zero
	for _, item := range s.Items {
		gross = gross.Add(item.Subtotal)
	}
	s.GrossTotal = RoundAmount(gross)
	s.Discount = RoundAmount(s.Discount)
	if s.Discount.GreaterThan(s.GrossTotal) {
		s.Discount = s.GrossTotal
	}
	s.FinalAmount = RoundAmount(s.GrossTotal.Sub(s.Discount))
}
