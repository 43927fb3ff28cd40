package domain

import "github.com/shopspring/decimal"

// Product is a stock-keeping item. QuantityInStock never goes negative.
type Product struct {
	ProductID       int64           `json:"productID"`
	TenantID        string          `json:"tenantID"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int64           `json:"quantityInStock"`
	Version         int64           `json:"version"`
}

// CanCover reports whether the product has at least quantity units on hand.
func (p Product) CanCover(quantity int64) bool {
	return p.QuantityInStock >= quantity
}

// OperatorRef identifies the person posting a sale, as resolved by the user directory.
type OperatorRef struct {
	OperatorID int64  `json:"operatorID"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// CustomerRef identifies an optional customer attached to a sale.
type CustomerRef struct {
	CustomerID int64  `json:"customerID"`
	Name       string `json:"name"`
}
