package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	"github.com/SscSPs/cash_register_app/internal/models"
	"github.com/SscSPs/cash_register_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxDirectoryRepository resolves operators from users and customers from customers.
type PgxDirectoryRepository struct {
	BaseRepository
}

func newPgxDirectoryRepository(base BaseRepository) *PgxDirectoryRepository {
	return &PgxDirectoryRepository{BaseRepository: base}
}

var (
	_ portsrepo.OperatorDirectory = (*PgxDirectoryRepository)(nil)
	_ portsrepo.CustomerDirectory = (*PgxDirectoryRepository)(nil)
)

func (r *PgxDirectoryRepository) FindOperatorByEmail(ctx context.Context, email string) (*domain.OperatorRef, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT user_id, email, name
		FROM users
		WHERE lower(email) = lower($1);
	`
	var m models.User
	if err := r.db().QueryRow(ctx, query, email).Scan(&m.UserID, &m.Email, &m.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("operator", email)
		}
		return nil, translateError(err, "find operator")
	}

	op := mapping.ToDomainOperator(m)
	return &op, nil
}

func (r *PgxDirectoryRepository) FindCustomerByID(ctx context.Context, tenantID string, customerID int64) (*domain.CustomerRef, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT customer_id, tenant_key, name
		FROM customers
		WHERE customer_id = $1 AND tenant_key = $2;
	`
	var m models.Customer
	if err := r.db().QueryRow(ctx, query, customerID, tenantID).Scan(&m.CustomerID, &m.TenantKey, &m.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer", customerID)
		}
		return nil, translateError(err, "find customer")
	}

	c := mapping.ToDomainCustomer(m)
	return &c, nil
}
