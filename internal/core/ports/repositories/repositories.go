package repositories

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
)

// OperatorDirectory looks up the people allowed to post sales.
type OperatorDirectory interface {
	FindOperatorByEmail(ctx context.Context, email string) (*domain.OperatorRef, error)
}

// CustomerDirectory looks up customers that may be attached to a sale.
type CustomerDirectory interface {
	FindCustomerByID(ctx context.Context, tenantID string, customerID int64) (*domain.CustomerRef, error)
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	RegisterRepo RegisterRepositoryFacade
	ProductRepo  ProductRepositoryFacade
	SaleRepo     SaleRepositoryFacade
	OperatorRepo OperatorDirectory
	CustomerRepo CustomerDirectory
	UnitOfWork   UnitOfWork
}
