package repositories

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
)

// RegisterReader defines read operations for register sessions
type RegisterReader interface {
	// FindRegisterByID retrieves a register session by its identifier within a tenant.
	FindRegisterByID(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error)

	// FindLatestRegister retrieves the most recently opened session of the tenant, or ErrNotFound when none exists.
	FindLatestRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error)

	// FindOpenRegister retrieves the tenant's OPEN session, or ErrNotFound.
	FindOpenRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error)
}

// RegisterLocker loads a register session and holds its row lock until the unit of work ends.
type RegisterLocker interface {
	FindRegisterByIDForUpdate(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error)
}

// RegisterWriter defines write operations for register sessions
type RegisterWriter interface {
	// InsertRegister persists a new session and sets its RegisterID and Version.
	// A second OPEN session for the same tenant fails with a ConflictError.
	InsertRegister(ctx context.Context, register *domain.RegisterSession) error

	// UpdateRegisterVersioned writes the mutable fields of the session only if the stored version
	// still equals expectedVersion; zero affected rows yield a ConflictError. On success
	// register.Version holds the new version.
	UpdateRegisterVersioned(ctx context.Context, register *domain.RegisterSession, expectedVersion int64) error
}

// RegisterRepositoryFacade combines all register-related repository interfaces
type RegisterRepositoryFacade interface {
	RegisterReader
	RegisterLocker
	RegisterWriter
}
