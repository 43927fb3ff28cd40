// Package memory is an in-process store with the same observable guarantees as the PostgreSQL
// store: units of work are atomic and isolated, register updates are version-checked and stock
// decrements are conditional. It backs tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// state is one consistent snapshot of every table.
type state struct {
	registers      map[int64]domain.RegisterSession
	products       map[int64]domain.Product
	sales          map[int64]domain.Sale
	operators      map[string]domain.OperatorRef
	customers      map[int64]domain.CustomerRef
	customerTenant map[int64]string
	nextRegisterID int64
	nextSaleID     int64
	nextItemID     int64
}

func newState() *state {
	return &state{
		registers:      make(map[int64]domain.RegisterSession),
		products:       make(map[int64]domain.Product),
		sales:          make(map[int64]domain.Sale),
		operators:      make(map[string]domain.OperatorRef),
		customers:      make(map[int64]domain.CustomerRef),
		customerTenant: make(map[int64]string),
	}
}

// clone copies the maps. Sales are immutable once inserted, so their item slices are shared.
func (s *state) clone() *state {
	c := *s
	c.registers = make(map[int64]domain.RegisterSession, len(s.registers))
	for k, v := range s.registers {
		c.registers[k] = v
	}
	c.products = make(map[int64]domain.Product, len(s.products))
	for k, v := range s.products {
		c.products[k] = v
	}
	c.sales = make(map[int64]domain.Sale, len(s.sales))
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return &c
}

// Store holds the committed state. Units of work run one at a time on a private copy that
// replaces the committed state only when the unit succeeds.
type Store struct {
	mu        sync.RWMutex
	committed *state
	txMu      sync.Mutex
}

func NewStore() *Store {
	return &Store{committed: newState()}
}

// WithinTx implements portsrepo.UnitOfWork.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return apperrors.FromContext("begin unit of work", err)
	}

	s.mu.RLock()
	working := s.committed.clone()
	s.mu.RUnlock()

	v := &view{st: working}
	if err := fn(ctx, portsrepo.TxRepositories{Registers: v, Products: v, Sales: v}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.FromContext("commit unit of work", err)
	}

	s.mu.Lock()
	s.committed = working
	s.mu.Unlock()
	return nil
}

// read runs fn against the committed state.
func (s *Store) read(fn func(v *view) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&view{st: s.committed})
}

// write runs a single-statement unit of work.
func (s *Store) write(ctx context.Context, fn func(v *view) error) error {
	return s.WithinTx(ctx, func(_ context.Context, tx portsrepo.TxRepositories) error {
		return fn(tx.Registers.(*view))
	})
}

// SeedProduct inserts or replaces a product and returns its stored form.
func (s *Store) SeedProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ProductID == 0 {
		p.ProductID = int64(len(s.committed.products) + 1)
	}
	p.Price = domain.RoundAmount(p.Price)
	s.committed.products[p.ProductID] = p
	return p
}

// SeedOperator registers an operator by email.
func (s *Store) SeedOperator(op domain.OperatorRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op.Email = strings.ToLower(op.Email)
	s.committed.operators[op.Email] = op
}

// SeedCustomer registers a customer for a tenant.
func (s *Store) SeedCustomer(tenantID string, c domain.CustomerRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.customers[c.CustomerID] = c
	s.committed.customerTenant[c.CustomerID] = tenantID
}

// RepositoryProvider exposes the store through the repository ports.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	c := &committedView{store: s}
	return portsrepo.RepositoryProvider{
		RegisterRepo: c,
		ProductRepo:  c,
		SaleRepo:     c,
		OperatorRepo: c,
		CustomerRepo: c,
		UnitOfWork:   s,
	}
}

// view implements every repository port over one state snapshot. It does no locking;
// callers hold the store locks appropriate to the snapshot.
type view struct {
	st *state
}

func (v *view) FindRegisterByID(_ context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	reg, ok := v.st.registers[registerID]
	if !ok || reg.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("register", registerID)
	}
	return &reg, nil
}

func (v *view) FindRegisterByIDForUpdate(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	return v.FindRegisterByID(ctx, tenantID, registerID)
}

func (v *view) FindLatestRegister(_ context.Context, tenantID string) (*domain.RegisterSession, error) {
	var latest *domain.RegisterSession
	for _, reg := range v.st.registers {
		if reg.TenantID != tenantID {
			continue
		}
		if latest == nil || reg.OpenedAt.After(latest.OpenedAt) ||
			(reg.OpenedAt.Equal(latest.OpenedAt) && reg.RegisterID > latest.RegisterID) {
			r := reg
			latest = &r
		}
	}
	if latest == nil {
		return nil, apperrors.NewNotFoundError("register for tenant", tenantID)
	}
	return latest, nil
}

func (v *view) FindOpenRegister(_ context.Context, tenantID string) (*domain.RegisterSession, error) {
	for _, reg := range v.st.registers {
		if reg.TenantID == tenantID && reg.IsOpen() {
			r := reg
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("open register for tenant", tenantID)
}

func (v *view) InsertRegister(ctx context.Context, register *domain.RegisterSession) error {
	if register.IsOpen() {
		if _, err := v.FindOpenRegister(ctx, register.TenantID); err == nil {
			return apperrors.NewConflictError("register", 0, "register already open")
		}
	}
	v.st.nextRegisterID++
	register.RegisterID = v.st.nextRegisterID
	register.Version = 1
	v.st.registers[register.RegisterID] = *register
	return nil
}

func (v *view) UpdateRegisterVersioned(_ context.Context, register *domain.RegisterSession, expectedVersion int64) error {
	stored, ok := v.st.registers[register.RegisterID]
	if !ok || stored.TenantID != register.TenantID || stored.Version != expectedVersion {
		return apperrors.NewConflictError("register", register.RegisterID, "version mismatch")
	}
	register.Version = expectedVersion + 1
	v.st.registers[register.RegisterID] = *register
	return nil
}

func (v *view) FindProductByID(_ context.Context, tenantID string, productID int64) (*domain.Product, error) {
	p, ok := v.st.products[productID]
	if !ok || p.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("product", productID)
	}
	return &p, nil
}

func (v *view) DecrementStock(_ context.Context, tenantID string, productID, observedQuantity, quantity int64) (bool, error) {
	p, ok := v.st.products[productID]
	if !ok || p.TenantID != tenantID {
		return false, apperrors.NewNotFoundError("product", productID)
	}
	if p.QuantityInStock != observedQuantity || p.QuantityInStock < quantity {
		return false, nil
	}
	p.QuantityInStock -= quantity
	p.Version++
	v.st.products[productID] = p
	return true, nil
}

func (v *view) FindSaleByID(_ context.Context, tenantID string, saleID int64) (*domain.Sale, error) {
	sale, ok := v.st.sales[saleID]
	if !ok || sale.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("sale", saleID)
	}
	return &sale, nil
}

func (v *view) ListSalesByRegister(_ context.Context, tenantID string, registerID int64, afterSaleID int64, limit int) ([]domain.Sale, error) {
	sales := make([]domain.Sale, 0)
	for _, sale := range v.st.sales {
		if sale.TenantID == tenantID && sale.RegisterID == registerID && sale.SaleID > afterSaleID {
			sales = append(sales, sale)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].SaleID < sales[j].SaleID })
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (v *view) SumFinalAmountByRegister(_ context.Context, tenantID string, registerID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sale := range v.st.sales {
		if sale.TenantID == tenantID && sale.RegisterID == registerID {
			total = total.Add(sale.FinalAmount)
		}
	}
	return domain.RoundAmount(total), nil
}

func (v *view) InsertSale(_ context.Context, sale *domain.Sale) error {
	if _, ok := v.st.registers[sale.RegisterID]; !ok {
		return apperrors.NewNotFoundError("register", sale.RegisterID)
	}
	v.st.nextSaleID++
	sale.SaleID = v.st.nextSaleID
	items := make([]domain.SaleLineItem, len(sale.Items))
	for i, item := range sale.Items {
		v.st.nextItemID++
		item.SaleItemID = v.st.nextItemID
		item.SaleID = sale.SaleID
		items[i] = item
	}
	sale.Items = items
	v.st.sales[sale.SaleID] = *sale
	return nil
}

var (
	_ portsrepo.RegisterRepositoryFacade = (*view)(nil)
	_ portsrepo.ProductRepositoryFacade  = (*view)(nil)
	_ portsrepo.SaleRepositoryFacade     = (*view)(nil)
	_ portsrepo.UnitOfWork               = (*Store)(nil)
)
