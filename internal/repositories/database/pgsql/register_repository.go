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

type PgxRegisterRepository struct {
	BaseRepository
}

// newPgxRegisterRepository creates a new repository for register sessions.
func newPgxRegisterRepository(base BaseRepository) *PgxRegisterRepository {
	return &PgxRegisterRepository{BaseRepository: base}
}

// Ensure implementation matches interface
var _ portsrepo.RegisterRepositoryFacade = (*PgxRegisterRepository)(nil)

const registerSelectQuery = `
SELECT
	r.register_id, r.tenant_key, r.opened_at, r.closed_at, r.opening_balance, r.closing_balance,
	r.running_sales_total, r.status, r.opened_by, r.closed_by, r.version
FROM registers r
`

// getRegister runs registerSelectQuery with the given filter and expects exactly one row.
func (r *PgxRegisterRepository) getRegister(ctx context.Context, notFound error, filterQuery string, args ...any) (*domain.RegisterSession, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db().Query(ctx, registerSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, translateError(err, "query registers")
	}
	modelReg, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Register])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, translateError(err, "scan register")
	}

	reg := mapping.ToDomainRegister(modelReg)
	return &reg, nil
}

// FindRegisterByID retrieves a register session by its ID within a tenant.
func (r *PgxRegisterRepository) FindRegisterByID(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	return r.getRegister(ctx, apperrors.NewNotFoundError("register", registerID),
		"WHERE r.register_id = $1 AND r.tenant_key = $2", registerID, tenantID)
}

// FindRegisterByIDForUpdate loads the session and row-locks it until the surrounding transaction ends.
func (r *PgxRegisterRepository) FindRegisterByIDForUpdate(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	return r.getRegister(ctx, apperrors.NewNotFoundError("register", registerID),
		"WHERE r.register_id = $1 AND r.tenant_key = $2 FOR UPDATE", registerID, tenantID)
}

// FindLatestRegister retrieves the tenant's most recently opened session.
func (r *PgxRegisterRepository) FindLatestRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error) {
	return r.getRegister(ctx, apperrors.NewNotFoundError("register for tenant", tenantID),
		"WHERE r.tenant_key = $1 ORDER BY r.opened_at DESC, r.register_id DESC LIMIT 1", tenantID)
}

// FindOpenRegister retrieves the tenant's OPEN session.
func (r *PgxRegisterRepository) FindOpenRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error) {
	return r.getRegister(ctx, apperrors.NewNotFoundError("open register for tenant", tenantID),
		"WHERE r.tenant_key = $1 AND r.status = 'OPEN'", tenantID)
}

// InsertRegister persists a new session. The partial unique index on OPEN sessions turns a
// concurrent second open into a ConflictError.
func (r *PgxRegisterRepository) InsertRegister(ctx context.Context, register *domain.RegisterSession) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelRegister(*register)
	query := `
		INSERT INTO registers (
			tenant_key, opened_at, closed_at, opening_balance, closing_balance,
			running_sales_total, status, opened_by, closed_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING register_id, version;
	`
	err := r.db().QueryRow(ctx, query,
		m.TenantKey,
		m.OpenedAt,
		m.ClosedAt,
		m.OpeningBalance,
		m.ClosingBalance,
		m.RunningSalesTotal,
		m.Status,
		m.OpenedBy,
		m.ClosedBy,
	).Scan(&register.RegisterID, &register.Version)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("register", 0, "register already open")
		}
		return translateError(err, "insert register")
	}
	return nil
}

// UpdateRegisterVersioned writes the mutable fields only if the stored version is still expectedVersion.
func (r *PgxRegisterRepository) UpdateRegisterVersioned(ctx context.Context, register *domain.RegisterSession, expectedVersion int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelRegister(*register)
	query := `
		UPDATE registers
		SET closed_at = $1,
			closing_balance = $2,
			running_sales_total = $3,
			status = $4,
			closed_by = $5,
			version = version + 1
		WHERE register_id = $6 AND tenant_key = $7 AND version = $8
		RETURNING version;
	`
	var newVersion int64
	err := r.db().QueryRow(ctx, query,
		m.ClosedAt,
		m.ClosingBalance,
		m.RunningSalesTotal,
		m.Status,
		m.ClosedBy,
		m.RegisterID,
		m.TenantKey,
		expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflictError("register", register.RegisterID, "version mismatch")
		}
		return translateError(err, "update register")
	}

	register.Version = newVersion
	return nil
}
