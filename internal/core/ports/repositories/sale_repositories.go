package repositories

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleReader defines read operations for sales
type SaleReader interface {
	// FindSaleByID retrieves a sale with its line items.
	FindSaleByID(ctx context.Context, tenantID string, saleID int64) (*domain.Sale, error)

	// ListSalesByRegister retrieves a page of a register's sales ordered by sale id, starting after afterSaleID.
	// limit <= 0 means no limit.
	ListSalesByRegister(ctx context.Context, tenantID string, registerID int64, afterSaleID int64, limit int) ([]domain.Sale, error)

	// SumFinalAmountByRegister recomputes the running total of a register from its sales.
	SumFinalAmountByRegister(ctx context.Context, tenantID string, registerID int64) (decimal.Decimal, error)
}

// SaleWriter defines write operations for sales
type SaleWriter interface {
	// InsertSale persists a sale and its line items, assigning SaleID and SaleItemIDs.
	InsertSale(ctx context.Context, sale *domain.Sale) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
