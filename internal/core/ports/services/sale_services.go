package services

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/SscSPs/cash_register_app/internal/dto"
)

// SaleReaderSvc defines read operations for sales
type SaleReaderSvc interface {
	GetSaleByID(ctx context.Context, tenantID string, saleID int64) (*domain.Sale, error)

	// ListSalesByRegister returns a page of the register's sales in posting order.
	ListSalesByRegister(ctx context.Context, tenantID string, registerID int64, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}

// SaleWriterSvc defines write operations for sales
type SaleWriterSvc interface {
	// PostSale decrements stock, persists the sale and adds it to the register's running total as one unit.
	PostSale(ctx context.Context, tenantID string, req dto.PostSaleRequest) (*domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
