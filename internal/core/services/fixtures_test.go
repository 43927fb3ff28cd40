package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/core/services"
	"github.com/SscSPs/cash_register_app/internal/dto"
	"github.com/SscSPs/cash_register_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testTenant   = "acme"
	testOperator = "ana@example.com"
)

// recordingCache remembers invalidations and fails with err when set.
type recordingCache struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (c *recordingCache) Invalidate(_ context.Context, tenantKey string, aggregates []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range aggregates {
		c.calls = append(c.calls, tenantKey+":"+a)
	}
	return c.err
}

// recordingPublisher remembers event kinds and fails with err when set.
type recordingPublisher struct {
	mu    sync.Mutex
	kinds []string
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, kind string, _ map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
	return p.err
}

func (p *recordingPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.kinds...)
}

type fixture struct {
	store     *memory.Store
	repos     portsrepo.RepositoryProvider
	registers portssvc.RegisterSvcFacade
	sales     portssvc.SaleSvcFacade
	cache     *recordingCache
	events    *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.SeedOperator(domain.OperatorRef{OperatorID: 7, Email: testOperator, Name: "Ana"})
	store.SeedCustomer(testTenant, domain.CustomerRef{CustomerID: 3, Name: "Globex"})

	f := &fixture{
		store:  store,
		repos:  store.RepositoryProvider(),
		cache:  &recordingCache{},
		events: &recordingPublisher{},
	}
	f.registers = services.NewRegisterService(f.repos.RegisterRepo, f.repos.SaleRepo, f.repos.UnitOfWork,
		services.WithRegisterEventPublisher(f.events))
	f.sales = services.NewSaleService(f.repos.RegisterRepo, f.repos.SaleRepo, f.repos.UnitOfWork,
		services.NewOperatorResolver(f.repos.OperatorRepo),
		services.NewCustomerResolver(f.repos.CustomerRepo),
		services.WithCacheInvalidator(f.cache),
		services.WithSaleEventPublisher(f.events))
	return f
}

func (f *fixture) product(name, price string, stock int64) domain.Product {
	return f.store.SeedProduct(domain.Product{
		TenantID:        testTenant,
		Name:            name,
		Price:           decimal.RequireFromString(price),
		QuantityInStock: stock,
	})
}

func (f *fixture) open(t *testing.T, balance string) *domain.RegisterSession {
	t.Helper()
	reg, err := f.registers.OpenRegister(context.Background(), testTenant, dto.OpenRegisterRequest{
		Operator:       "ana",
		OpeningBalance: amount(balance),
	})
	require.NoError(t, err)
	return reg
}

func (f *fixture) stock(t *testing.T, productID int64) int64 {
	t.Helper()
	p, err := f.repos.ProductRepo.FindProductByID(context.Background(), testTenant, productID)
	require.NoError(t, err)
	return p.QuantityInStock
}

func qty(n int64) *int64 { return &n }

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func saleRequest(registerID int64, items ...dto.SaleItemRequest) dto.PostSaleRequest {
	return dto.PostSaleRequest{
		RegisterID:    registerID,
		OperatorEmail: testOperator,
		Items:         items,
		PaymentMethod: "cash",
	}
}
