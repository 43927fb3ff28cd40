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
)

// registerService implements the RegisterSvcFacade interface
type registerService struct {
	BaseService
	registerRepo portsrepo.RegisterRepositoryFacade
	saleRepo     portsrepo.SaleReader
	uow          portsrepo.UnitOfWork
	events       portssvc.EventPublisher
	metrics      *metrics.Metrics
}

// RegisterServiceOption is a functional option for configuring the register service
type RegisterServiceOption func(*registerService)

// WithRegisterEventPublisher emits register.opened / register.closed after commit.
func WithRegisterEventPublisher(publisher portssvc.EventPublisher) RegisterServiceOption {
	return func(s *registerService) {
		s.events = publisher
	}
}

// WithRegisterMetrics records transitions and conflicts.
func WithRegisterMetrics(m *metrics.Metrics) RegisterServiceOption {
	return func(s *registerService) {
		s.metrics = m
	}
}

// WithRegisterClock overrides time.Now, mostly for tests.
func WithRegisterClock(now func() time.Time) RegisterServiceOption {
	return func(s *registerService) {
		s.now = now
	}
}

// NewRegisterService creates a new register lifecycle service with the provided options
func NewRegisterService(registerRepo portsrepo.RegisterRepositoryFacade, saleRepo portsrepo.SaleReader, uow portsrepo.UnitOfWork, options ...RegisterServiceOption) portssvc.RegisterSvcFacade {
	svc := &registerService{
		registerRepo: registerRepo,
		saleRepo:     saleRepo,
		uow:          uow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure registerService implements the RegisterSvcFacade interface
var _ portssvc.RegisterSvcFacade = (*registerService)(nil)

func (s *registerService) OpenRegister(ctx context.Context, tenantID string, req dto.OpenRegisterRequest) (*domain.RegisterSession, error) {
	operator := strings.TrimSpace(req.Operator)
	if operator == "" {
		return nil, apperrors.NewValidationFailedError("operator is required")
	}
	if req.OpeningBalance == nil {
		return nil, apperrors.NewValidationFailedError("openingBalance is required")
	}

	register, err := domain.NewRegisterSession(tenantID, operator, *req.OpeningBalance, s.Now())
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		latest, err := tx.Registers.FindLatestRegister(ctx, tenantID)
		switch {
		case err == nil && latest.IsOpen():
			return apperrors.NewConflictError("register", latest.RegisterID, "register already open")
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return err
		}
		return tx.Registers.InsertRegister(ctx, register)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.Conflict(metrics.OperationOpenRegister)
			s.LogWarn(ctx, err, "Register already open", slog.String("tenant_id", tenantID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to open register", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.metrics.Transition(string(domain.RegisterOpen))
	s.LogInfo(ctx, "Register opened",
		slog.Int64("register_id", register.RegisterID),
		slog.String("tenant_id", tenantID),
		slog.String("operator", operator))
	s.publish(ctx, domain.EventRegisterOpened, register)

	return register, nil
}

func (s *registerService) CloseRegister(ctx context.Context, tenantID string, req dto.CloseRegisterRequest) (*domain.RegisterSession, error) {
	operator := strings.TrimSpace(req.Operator)
	if operator == "" {
		return nil, apperrors.NewValidationFailedError("operator is required")
	}
	if req.ClosingBalance == nil {
		return nil, apperrors.NewValidationFailedError("closingBalance is required")
	}
	if err := domain.CheckAmount("closing balance", *req.ClosingBalance); err != nil {
		return nil, err
	}

	register, err := s.registerRepo.FindRegisterByID(ctx, tenantID, req.RegisterID)
	if err != nil {
		return nil, err
	}
	if !register.IsOpen() {
		return nil, apperrors.NewInvalidStateError("already closed")
	}
	expectedVersion := register.Version

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		total, err := tx.Sales.SumFinalAmountByRegister(ctx, tenantID, register.RegisterID)
		if err != nil {
			return err
		}
		if err := register.Close(operator, *req.ClosingBalance, total, s.Now()); err != nil {
			return err
		}
		return tx.Registers.UpdateRegisterVersioned(ctx, register, expectedVersion)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.Conflict(metrics.OperationCloseRegister)
			s.LogWarn(ctx, err, "Concurrent modification while closing register",
				slog.Int64("register_id", req.RegisterID),
				slog.Int64("expected_version", expectedVersion))
			return nil, apperrors.NewConflictError("register", req.RegisterID, "concurrent modification, retry close")
		}
		if isBusinessFailure(err) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to close register", slog.Int64("register_id", req.RegisterID))
		return nil, err
	}

	s.metrics.Transition(string(domain.RegisterClosed))
	s.LogInfo(ctx, "Register closed",
		slog.Int64("register_id", register.RegisterID),
		slog.String("running_sales_total", register.RunningSalesTotal.String()),
		slog.String("operator", operator))
	s.publish(ctx, domain.EventRegisterClosed, register)

	return register, nil
}

func (s *registerService) GetRegisterSummary(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	register, err := s.registerRepo.FindRegisterByID(ctx, tenantID, registerID)
	if err != nil {
		return nil, err
	}
	return s.withRecomputedTotal(ctx, tenantID, register)
}

func (s *registerService) GetOpenRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error) {
	register, err := s.registerRepo.FindOpenRegister(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.withRecomputedTotal(ctx, tenantID, register)
}

// withRecomputedTotal replaces the persisted running total with the sum over the register's sales.
func (s *registerService) withRecomputedTotal(ctx context.Context, tenantID string, register *domain.RegisterSession) (*domain.RegisterSession, error) {
	total, err := s.saleRepo.SumFinalAmountByRegister(ctx, tenantID, register.RegisterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute register total", slog.Int64("register_id", register.RegisterID))
		return nil, err
	}
	if !total.Equal(register.RunningSalesTotal) {
		s.LogDebug(ctx, "Persisted running total differs from recomputed total",
			slog.Int64("register_id", register.RegisterID),
			slog.String("persisted", register.RunningSalesTotal.String()),
			slog.String("recomputed", total.String()))
	}
	register.RunningSalesTotal = domain.RoundAmount(total)
	return register, nil
}

func (s *registerService) publish(ctx context.Context, kind string, register *domain.RegisterSession) {
	if s.events == nil {
		return
	}
	payload := map[string]any{
		"register_id":         register.RegisterID,
		"tenant_id":           register.TenantID,
		"status":              string(register.Status),
		"running_sales_total": register.RunningSalesTotal.String(),
	}
	if err := s.events.Publish(ctx, kind, payload); err != nil {
		s.LogDebug(ctx, "Failed to publish register event", slog.String("event", kind), slog.String("error", err.Error()))
	}
}
