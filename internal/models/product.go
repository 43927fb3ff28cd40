package models

import "github.com/shopspring/decimal"

// Product is a row of the products table.
type Product struct {
	ProductID       int64           `json:"productID" db:"product_id"`
	TenantKey       string          `json:"tenantKey" db:"tenant_key"`
	Name            string          `json:"name" db:"name"`
	Price           decimal.Decimal `json:"price" db:"price"`
	QuantityInStock int64           `json:"quantityInStock" db:"quantity_in_stock"` // CHECK >= 0
	Version         int64           `json:"version" db:"version"`
}

// User is the subset of the users table needed to resolve an operator.
type User struct {
	UserID int64  `json:"userID" db:"user_id"`
	Email  string `json:"email" db:"email"`
	Name   string `json:"name" db:"name"`
}

// Customer is a row of the customers table.
type Customer struct {
	CustomerID int64  `json:"customerID" db:"customer_id"`
	TenantKey  string `json:"tenantKey" db:"tenant_key"`
	Name       string `json:"name" db:"name"`
}
