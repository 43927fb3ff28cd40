package services

import (
	"context"

	"github.com/SscSPs/cash_register_app/internal/core/domain"
	"github.com/SscSPs/cash_register_app/internal/dto"
)

// RegisterReaderSvc defines read operations for register sessions
type RegisterReaderSvc interface {
	// GetRegisterSummary returns the session with its running total recomputed from its sales.
	GetRegisterSummary(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error)

	// GetOpenRegister returns the tenant's OPEN session, or ErrNotFound.
	GetOpenRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error)
}

// RegisterWriterSvc defines the lifecycle transitions of a register session
type RegisterWriterSvc interface {
	// OpenRegister starts a new session. Fails with ConflictError while another session is OPEN.
	OpenRegister(ctx context.Context, tenantID string, req dto.OpenRegisterRequest) (*domain.RegisterSession, error)

	// CloseRegister freezes an OPEN session. Fails with InvalidStateError when already CLOSED
	// and with ConflictError when the session changed since it was read.
	CloseRegister(ctx context.Context, tenantID string, req dto.CloseRegisterRequest) (*domain.RegisterSession, error)
}

// RegisterSvcFacade combines all register-related service interfaces
type RegisterSvcFacade interface {
	RegisterReaderSvc
	RegisterWriterSvc
}
