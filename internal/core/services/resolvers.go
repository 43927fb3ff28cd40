package services

import (
	"context"
	"strings"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
)

// directoryOperatorResolver resolves operators through the user directory of the store.
type directoryOperatorResolver struct {
	repo portsrepo.OperatorDirectory
}

// NewOperatorResolver adapts an OperatorDirectory to the OperatorResolver port.
func NewOperatorResolver(repo portsrepo.OperatorDirectory) portssvc.OperatorResolver {
	return &directoryOperatorResolver{repo: repo}
}

func (r *directoryOperatorResolver) ResolveByEmail(ctx context.Context, email string) (*domain.OperatorRef, error) {
	return r.repo.FindOperatorByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// directoryCustomerResolver resolves customers through the customer directory of the store.
type directoryCustomerResolver struct {
	repo portsrepo.CustomerDirectory
}

// NewCustomerResolver adapts a CustomerDirectory to the CustomerResolver port.
func NewCustomerResolver(repo portsrepo.CustomerDirectory) portssvc.CustomerResolver {
	return &directoryCustomerResolver{repo: repo}
}

func (r *directoryCustomerResolver) ResolveByID(ctx context.Context, tenantID string, customerID int64) (*domain.CustomerRef, error) {
	return r.repo.FindCustomerByID(ctx, tenantID, customerID)
}
