package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRegister(t *testing.T, repos portsrepo.RepositoryProvider, tenantID string) *domain.RegisterSession {
	t.Helper()
	reg, err := domain.NewRegisterSession(tenantID, "ana", decimal.NewFromInt(100), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repos.RegisterRepo.InsertRegister(context.Background(), reg))
	return reg
}

func TestStore_InsertRegisterRejectsSecondOpen(t *testing.T) {
	repos := NewStore().RepositoryProvider()
	first := openRegister(t, repos, "acme")

	assert.Equal(t, int64(1), first.RegisterID)
	assert.Equal(t, int64(1), first.Version)

	second, _ := domain.NewRegisterSession("acme", "bruno", decimal.Zero, time.Now().UTC())
	err := repos.RegisterRepo.InsertRegister(context.Background(), second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Other tenants have their own timeline.
	other, _ := domain.NewRegisterSession("globex", "carla", decimal.Zero, time.Now().UTC())
	assert.NoError(t, repos.RegisterRepo.InsertRegister(context.Background(), other))
}

func TestStore_UpdateRegisterVersioned(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().RepositoryProvider()
	reg := openRegister(t, repos, "acme")

	reg.AddSale(decimal.NewFromInt(10))
	require.NoError(t, repos.RegisterRepo.UpdateRegisterVersioned(ctx, reg, 1))
	assert.Equal(t, int64(2), reg.Version)

	stale := *reg
	stale.AddSale(decimal.NewFromInt(5))
	err := repos.RegisterRepo.UpdateRegisterVersioned(ctx, &stale, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := repos.RegisterRepo.FindRegisterByID(ctx, "acme", reg.RegisterID)
	require.NoError(t, err)
	assert.True(t, stored.RunningSalesTotal.Equal(decimal.NewFromInt(10)))
}

func TestStore_DecrementStockIsConditional(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := store.SeedProduct(domain.Product{TenantID: "acme", Name: "Tea", Price: decimal.NewFromInt(2), QuantityInStock: 3})
	repos := store.RepositoryProvider()

	applied, err := repos.ProductRepo.DecrementStock(ctx, "acme", p.ProductID, 2, 1)
	require.NoError(t, err)
	assert.False(t, applied, "stale observed quantity must not apply")

	applied, err = repos.ProductRepo.DecrementStock(ctx, "acme", p.ProductID, 3, 4)
	require.NoError(t, err)
	assert.False(t, applied, "must never go negative")

	applied, err = repos.ProductRepo.DecrementStock(ctx, "acme", p.ProductID, 3, 3)
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := repos.ProductRepo.FindProductByID(ctx, "acme", p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.QuantityInStock)

	_, err = repos.ProductRepo.FindProductByID(ctx, "globex", p.ProductID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := store.SeedProduct(domain.Product{TenantID: "acme", Name: "Tea", Price: decimal.NewFromInt(2), QuantityInStock: 3})
	repos := store.RepositoryProvider()
	reg := openRegister(t, repos, "acme")
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		applied, err := tx.Products.DecrementStock(ctx, "acme", p.ProductID, 3, 2)
		require.NoError(t, err)
		require.True(t, applied)
		sale := &domain.Sale{TenantID: "acme", RegisterID: reg.RegisterID, FinalAmount: decimal.NewFromInt(4)}
		require.NoError(t, tx.Sales.InsertSale(ctx, sale))

		// Visible inside the unit of work...
		inTx, err := tx.Products.FindProductByID(ctx, "acme", p.ProductID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), inTx.QuantityInStock)

		// ...but not outside it.
		outside, err := repos.ProductRepo.FindProductByID(ctx, "acme", p.ProductID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), outside.QuantityInStock)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repos.ProductRepo.FindProductByID(ctx, "acme", p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.QuantityInStock)

	sales, err := repos.SaleRepo.ListSalesByRegister(ctx, "acme", reg.RegisterID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestStore_WithinTxHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore().WithinTx(ctx, func(context.Context, portsrepo.TxRepositories) error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, apperrors.ErrTimeout)

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	err = NewStore().WithinTx(expired, func(context.Context, portsrepo.TxRepositories) error { return nil })

	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestStore_SalesListingAndSum(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().RepositoryProvider()
	reg := openRegister(t, repos, "acme")

	for _, amount := range []string{"1.50", "2.25", "3"} {
		sale := &domain.Sale{
			TenantID:    "acme",
			RegisterID:  reg.RegisterID,
			FinalAmount: decimal.RequireFromString(amount),
			Items:       []domain.SaleLineItem{{ProductID: 1, Quantity: 1}},
		}
		require.NoError(t, repos.SaleRepo.InsertSale(ctx, sale))
		assert.NotZero(t, sale.Items[0].SaleItemID)
		assert.Equal(t, sale.SaleID, sale.Items[0].SaleID)
	}

	total, err := repos.SaleRepo.SumFinalAmountByRegister(ctx, "acme", reg.RegisterID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("6.75")))

	page, err := repos.SaleRepo.ListSalesByRegister(ctx, "acme", reg.RegisterID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].SaleID)
}

func TestStore_Directories(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.SeedOperator(domain.OperatorRef{OperatorID: 7, Email: "Ana@Example.com", Name: "Ana"})
	store.SeedCustomer("acme", domain.CustomerRef{CustomerID: 3, Name: "Globex"})
	repos := store.RepositoryProvider()

	op, err := repos.OperatorRepo.FindOperatorByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), op.OperatorID)

	_, err = repos.OperatorRepo.FindOperatorByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repos.CustomerRepo.FindCustomerByID(ctx, "acme", 3)
	assert.NoError(t, err)
	_, err = repos.CustomerRepo.FindCustomerByID(ctx, "globex", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
