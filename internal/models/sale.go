package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table. Line items live in sale_items.
type Sale struct {
	SaleID        int64           `json:"saleID" db:"sale_id"`
	TenantKey     string          `json:"tenantKey" db:"tenant_key"`
	RegisterID    int64           `json:"registerID" db:"register_id"` // FK -> registers.register_id
	OperatorID    int64           `json:"operatorID" db:"operator_id"`
	OperatorEmail string          `json:"operatorEmail" db:"operator_email"`
	CustomerID    *int64          `json:"customerID" db:"customer_id"` // Nullable
	GrossTotal    decimal.Decimal `json:"grossTotal" db:"gross_total"`
	Discount      decimal.Decimal `json:"discount" db:"discount"`
	FinalAmount   decimal.Decimal `json:"finalAmount" db:"final_amount"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	Note          string          `json:"note" db:"note"`
	SoldAt        time.Time       `json:"soldAt" db:"sold_at"`
}

// SaleItem is a row of the sale_items table.
type SaleItem struct {
	SaleItemID  int64           `json:"saleItemID" db:"sale_item_id"`
	SaleID      int64           `json:"saleID" db:"sale_id"` // FK -> sales.sale_id
	ProductID   int64           `json:"productID" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int64           `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
}
