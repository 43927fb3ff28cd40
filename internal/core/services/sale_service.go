package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/dto"
	"github.com/SscSPs/cash_register_app/internal/platform/metrics"
	"github.com/SscSPs/cash_register_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const saleTokenScope = "sale"

// saleService implements the SaleSvcFacade interface
type saleService struct {
	BaseService
	registerRepo  portsrepo.RegisterReader
	saleRepo      portsrepo.SaleReader
	uow           portsrepo.UnitOfWork
	operators     portssvc.OperatorResolver
	customers     portssvc.CustomerResolver
	cache         portssvc.CacheInvalidator
	events        portssvc.EventPublisher
	metrics       *metrics.Metrics
	retryAttempts int
}

// SaleServiceOption is a functional option for configuring the sale service
type SaleServiceOption func(*saleService)

// WithCacheInvalidator drops the tenant's dashboard aggregates after every committed sale.
func WithCacheInvalidator(cache portssvc.CacheInvalidator) SaleServiceOption {
	return func(s *saleService) {
		s.cache = cache
	}
}

// WithSaleEventPublisher emits sale.posted after every committed sale.
func WithSaleEventPublisher(publisher portssvc.EventPublisher) SaleServiceOption {
	return func(s *saleService) {
		s.events = publisher
	}
}

// WithSaleMetrics records postings, failures and stock retries.
func WithSaleMetrics(m *metrics.Metrics) SaleServiceOption {
	return func(s *saleService) {
		s.metrics = m
	}
}

// WithStockRetryAttempts bounds the conditional decrement retry loop.
func WithStockRetryAttempts(attempts int) SaleServiceOption {
	return func(s *saleService) {
		if attempts > 0 {
			s.retryAttempts = attempts
		}
	}
}

// WithSaleClock overrides time.Now, mostly for tests.
func WithSaleClock(now func() time.Time) SaleServiceOption {
	return func(s *saleService) {
		s.now = now
	}
}

// NewSaleService creates a new sale posting service with the provided options
func NewSaleService(
	registerRepo portsrepo.RegisterReader,
	saleRepo portsrepo.SaleReader,
	uow portsrepo.UnitOfWork,
	operators portssvc.OperatorResolver,
	customers portssvc.CustomerResolver,
	options ...SaleServiceOption,
) portssvc.SaleSvcFacade {
	svc := &saleService{
		registerRepo:  registerRepo,
		saleRepo:      saleRepo,
		uow:           uow,
		operators:     operators,
		customers:     customers,
		retryAttempts: DefaultStockRetryAttempts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure saleService implements the SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// saleLine is a validated line of a posting request.
type saleLine struct {
	productID int64
	quantity  int64
}

func (s *saleService) PostSale(ctx context.Context, tenantID string, req dto.PostSaleRequest) (*domain.Sale, error) {
	started := time.Now()

	sale, lines, err := s.validatePostSale(tenantID, req)
	if err != nil {
		s.metrics.SaleFailed(err)
		return nil, err
	}
	logger := s.GetLogger(ctx).With(
		slog.String("tenant_id", tenantID),
		slog.Int64("register_id", req.RegisterID))

	operator, err := s.operators.ResolveByEmail(ctx, sale.OperatorEmail)
	if err != nil {
		s.metrics.SaleFailed(err)
		return nil, err
	}
	sale.OperatorID = operator.OperatorID

	if req.CustomerID != nil {
		if _, err := s.customers.ResolveByID(ctx, tenantID, *req.CustomerID); err != nil {
			s.metrics.SaleFailed(err)
			return nil, err
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		register, err := tx.Registers.FindRegisterByIDForUpdate(ctx, tenantID, req.RegisterID)
		if err != nil {
			return err
		}
		if !register.IsOpen() {
			return apperrors.NewInvalidStateError("register is closed")
		}

		items := make([]domain.SaleLineItem, 0, len(lines))
		for _, line := range lines {
			product, err := s.decrementStock(ctx, tx.Products, tenantID, line)
			if err != nil {
				return err
			}
			items = append(items, domain.NewSaleLineItem(*product, line.quantity))
		}
		sale.Items = items
		sale.ComputeTotals()
		if err := domain.CheckAmount("gross total", sale.GrossTotal); err != nil {
			return err
		}

		if err := tx.Sales.InsertSale(ctx, sale); err != nil {
			return err
		}

		expectedVersion := register.Version
		register.AddSale(sale.FinalAmount)
		if err := domain.CheckAmount("running sales total", register.RunningSalesTotal); err != nil {
			return err
		}
		return tx.Registers.UpdateRegisterVersioned(ctx, register, expectedVersion)
	})
	if err != nil {
		s.metrics.SaleFailed(err)
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.Conflict(metrics.OperationPostSale)
		}
		if isBusinessFailure(err) {
			logger.Warn("Sale rejected", slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to post sale", slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.metrics.SalePosted(time.Since(started))
	logger.Info("Sale posted",
		slog.Int64("sale_id", sale.SaleID),
		slog.String("final_amount", sale.FinalAmount.String()),
		slog.Int("items", len(sale.Items)))

	s.afterCommit(ctx, tenantID, sale)
	return sale, nil
}

// validatePostSale rejects malformed requests before anything is read or written.
func (s *saleService) validatePostSale(tenantID string, req dto.PostSaleRequest) (*domain.Sale, []saleLine, error) {
	if req.RegisterID <= 0 {
		return nil, nil, apperrors.NewValidationFailedError("registerId is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.OperatorEmail))
	if email == "" {
		return nil, nil, apperrors.NewValidationFailedError("operatorEmail is required")
	}
	if len(req.Items) == 0 {
		return nil, nil, apperrors.NewValidationFailedError("sale must contain at least one item")
	}

	lines := make([]saleLine, 0, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return nil, nil, apperrors.NewValidationFailedError("items[%d]: productId is required", i)
		}
		quantity := int64(1)
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		if quantity < 1 {
			return nil, nil, apperrors.NewValidationFailedError("items[%d]: quantity must be at least 1", i)
		}
		lines = append(lines, saleLine{productID: item.ProductID, quantity: quantity})
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if err := domain.CheckAmount("discount", discount); err != nil {
		return nil, nil, err
	}

	method := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.PaymentMethod)))
	if !method.Valid() {
		return nil, nil, apperrors.NewValidationFailedError("unknown payment method %q", req.PaymentMethod)
	}

	sale := &domain.Sale{
		TenantID:      tenantID,
		RegisterID:    req.RegisterID,
		OperatorEmail: email,
		CustomerID:    req.CustomerID,
		Discount:      discount,
		PaymentMethod: method,
		Note:          strings.TrimSpace(req.Note),
		SoldAt:        s.Now(),
	}
	return sale, lines, nil
}

// decrementStock re-reads the product and applies a conditional decrement, retrying when
// another unit of work changed the quantity between the read and the write.
func (s *saleService) decrementStock(ctx context.Context, products portsrepo.ProductRepositoryFacade, tenantID string, line saleLine) (*domain.Product, error) {
	var decremented *domain.Product
	onRetry := func(attempt int) {
		s.metrics.StockRetry()
		s.LogDebug(ctx, "Retrying stock decrement",
			slog.Int64("product_id", line.productID),
			slog.Int("attempt", attempt))
	}

	err := retryOnConflict(ctx, s.retryAttempts, onRetry, func() error {
		product, err := products.FindProductByID(ctx, tenantID, line.productID)
		if err != nil {
			return err
		}
		if !product.CanCover(line.quantity) {
			return &apperrors.InsufficientStockError{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Requested:   line.quantity,
				Available:   product.QuantityInStock,
			}
		}
		applied, err := products.DecrementStock(ctx, tenantID, product.ProductID, product.QuantityInStock, line.quantity)
		if err != nil {
			return err
		}
		if !applied {
			return apperrors.NewConflictError("product", product.ProductID, "stock changed concurrently")
		}
		product.QuantityInStock -= line.quantity
		decremented = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decremented, nil
}

// afterCommit runs the best-effort side channels. Their failures are logged, never returned.
func (s *saleService) afterCommit(ctx context.Context, tenantID string, sale *domain.Sale) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, tenantID, domain.SaleAffectedAggregates()); err != nil {
			s.LogWarn(ctx, err, "Failed to invalidate dashboard caches", slog.Int64("sale_id", sale.SaleID))
		}
	}
	if s.events != nil {
		payload := map[string]any{
			"sale_id":        sale.SaleID,
			"register_id":    sale.RegisterID,
			"tenant_id":      tenantID,
			"operator_email": sale.OperatorEmail,
			"final_amount":   sale.FinalAmount.String(),
			"payment_method": string(sale.PaymentMethod),
			"items":          len(sale.Items),
		}
		if err := s.events.Publish(ctx, domain.EventSalePosted, payload); err != nil {
			s.LogDebug(ctx, "Failed to publish sale event", slog.Int64("sale_id", sale.SaleID), slog.String("error", err.Error()))
		}
	}
}

func (s *saleService) GetSaleByID(ctx context.Context, tenantID string, saleID int64) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, tenantID, saleID)
}

func (s *saleService) ListSalesByRegister(ctx context.Context, tenantID string, registerID int64, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	if _, err := s.registerRepo.FindRegisterByID(ctx, tenantID, registerID); err != nil {
		return nil, err
	}

	var afterSaleID int64
	if params.NextToken != "" {
		id, err := pagination.DecodeIDToken(saleTokenScope, params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("%v", err)
		}
		afterSaleID = id
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	// One extra row tells us whether another page exists.
	sales, err := s.saleRepo.ListSalesByRegister(ctx, tenantID, registerID, afterSaleID, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales", slog.Int64("register_id", registerID))
		return nil, err
	}

	var nextToken *string
	if len(sales) > limit {
		sales = sales[:limit]
		token := pagination.EncodeIDToken(saleTokenScope, sales[len(sales)-1].SaleID)
		nextToken = &token
	}

	resp := dto.ToListSalesResponse(sales, nextToken)
	return &resp, nil
}
