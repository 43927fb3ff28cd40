package services

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
)

// OperatorResolver maps an operator email onto a known user, or ErrNotFound.
type OperatorResolver interface {
	ResolveByEmail(ctx context.Context, email string) (*domain.OperatorRef, error)
}

// CustomerResolver maps a customer id onto a known customer, or ErrNotFound.
type CustomerResolver interface {
	ResolveByID(ctx context.Context, tenantID string, customerID int64) (*domain.CustomerRef, error)
}

// CacheInvalidator drops cached read-side aggregates of a tenant. Best-effort: callers log and move on.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantKey string, aggregates []string) error
}

// EventPublisher emits domain events after commit. Best-effort: callers log and move on.
type EventPublisher interface {
	Publish(ctx context.Context, kind string, payload map[string]any) error
}
