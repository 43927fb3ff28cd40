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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product stock.
func newPgxProductRepository(base BaseRepository) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: base}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// FindProductByID retrieves a product within a tenant.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, tenantID string, productID int64) (*domain.Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, tenant_key, name, price, quantity_in_stock, version
		FROM products
		WHERE product_id = $1 AND tenant_key = $2;
	`
	var m models.Product
	err := r.db().QueryRow(ctx, query, productID, tenantID).Scan(
		&m.ProductID,
		&m.TenantKey,
		&m.Name,
		&m.Price,
		&m.QuantityInStock,
		&m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product", productID)
		}
		return nil, translateError(err, "find product")
	}

	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// DecrementStock is a compare-and-set on quantity_in_stock. Zero affected rows means another
// writer changed the row after the caller read it.
func (r *PgxProductRepository) DecrementStock(ctx context.Context, tenantID string, productID, observedQuantity, quantity int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET quantity_in_stock = quantity_in_stock - $1,
			version = version + 1
		WHERE product_id = $2
			AND tenant_key = $3
			AND quantity_in_stock = $4
			AND quantity_in_stock >= $1;
	`
	tag, err := r.db().Exec(ctx, query, quantity, productID, tenantID, observedQuantity)
	if err != nil {
		return false, translateError(err, "decrement stock")
	}
	return tag.RowsAffected() == 1, nil
}
