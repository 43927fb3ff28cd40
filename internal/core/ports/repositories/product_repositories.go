package repositories

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
)

// ProductReader defines read operations for product stock
type ProductReader interface {
	FindProductByID(ctx context.Context, tenantID string, productID int64) (*domain.Product, error)
}

// ProductStockWriter defines the conditional stock mutation used by sale posting
type ProductStockWriter interface {
	// DecrementStock subtracts quantity from the product only if the stored quantity still equals
	// observedQuantity and covers the request. It reports false, without error, when the row
	// moved underneath the caller so the caller can re-read and retry.
	DecrementStock(ctx context.Context, tenantID string, productID, observedQuantity, quantity int64) (bool, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductStockWriter
}
