package memory

import (
	"context"
	"strings"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// committedView serves reads from the committed state and runs each write as its own unit of work.
type committedView struct {
	store *Store
}

func (c *committedView) FindRegisterByID(ctx context.Context, tenantID string, registerID int64) (reg *domain.RegisterSession, err error) {
	err = c.store.read(func(v *view) error {
		reg, err = v.FindRegisterByID(ctx, tenantID, registerID)
		return err
	})
	return reg, err
}

func (c *committedView) FindRegisterByIDForUpdate(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	return c.FindRegisterByID(ctx, tenantID, registerID)
}

func (c *committedView) FindLatestRegister(ctx context.Context, tenantID string) (reg *domain.RegisterSession, err error) {
	err = c.store.read(func(v *view) error {
		reg, err = v.FindLatestRegister(ctx, tenantID)
		return err
	})
	return reg, err
}

func (c *committedView) FindOpenRegister(ctx context.Context, tenantID string) (reg *domain.RegisterSession, err error) {
	err = c.store.read(func(v *view) error {
		reg, err = v.FindOpenRegister(ctx, tenantID)
		return err
	})
	return reg, err
}

func (c *committedView) InsertRegister(ctx context.Context, register *domain.RegisterSession) error {
	return c.store.write(ctx, func(v *view) error {
		return v.InsertRegister(ctx, register)
	})
}

func (c *committedView) UpdateRegisterVersioned(ctx context.Context, register *domain.RegisterSession, expectedVersion int64) error {
	return c.store.write(ctx, func(v *view) error {
		return v.UpdateRegisterVersioned(ctx, register, expectedVersion)
	})
}

func (c *committedView) FindProductByID(ctx context.Context, tenantID string, productID int64) (p *domain.Product, err error) {
	err = c.store.read(func(v *view) error {
		p, err = v.FindProductByID(ctx, tenantID, productID)
		return err
	})
	return p, err
}

func (c *committedView) DecrementStock(ctx context.Context, tenantID string, productID, observedQuantity, quantity int64) (applied bool, err error) {
	err = c.store.write(ctx, func(v *view) error {
		applied, err = v.DecrementStock(ctx, tenantID, productID, observedQuantity, quantity)
		return err
	})
	return applied, err
}

func (c *committedView) FindSaleByID(ctx context.Context, tenantID string, saleID int64) (sale *domain.Sale, err error) {
	err = c.store.read(func(v *view) error {
		sale, err = v.FindSaleByID(ctx, tenantID, saleID)
		return err
	})
	return sale, err
}

func (c *committedView) ListSalesByRegister(ctx context.Context, tenantID string, registerID int64, afterSaleID int64, limit int) (sales []domain.Sale, err error) {
	err = c.store.read(func(v *view) error {
		sales, err = v.ListSalesByRegister(ctx, tenantID, registerID, afterSaleID, limit)
		return err
	})
	return sales, err
}

func (c *committedView) SumFinalAmountByRegister(ctx context.Context, tenantID string, registerID int64) (total decimal.Decimal, err error) {
	err = c.store.read(func(v *view) error {
		total, err = v.SumFinalAmountByRegister(ctx, tenantID, registerID)
		return err
	})
	return total, err
}

func (c *committedView) InsertSale(ctx context.Context, sale *domain.Sale) error {
	return c.store.write(ctx, func(v *view) error {
		return v.InsertSale(ctx, sale)
	})
}

func (c *committedView) FindOperatorByEmail(_ context.Context, email string) (*domain.OperatorRef, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	op, ok := c.store.committed.operators[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.NewNotFoundError("operator", email)
	}
	return &op, nil
}

func (c *committedView) FindCustomerByID(_ context.Context, tenantID string, customerID int64) (*domain.CustomerRef, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	customer, ok := c.store.committed.customers[customerID]
	if !ok || c.store.committed.customerTenant[customerID] != tenantID {
		return nil, apperrors.NewNotFoundError("customer", customerID)
	}
	return &customer, nil
}

var (
	_ portsrepo.RegisterRepositoryFacade = (*committedView)(nil)
	_ portsrepo.ProductRepositoryFacade  = (*committedView)(nil)
	_ portsrepo.SaleRepositoryFacade     = (*committedView)(nil)
	_ portsrepo.OperatorDirectory        = (*committedView)(nil)
	_ portsrepo.CustomerDirectory        = (*committedView)(nil)
)
