package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is the query surface shared by *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories.
// A repository bound to a transaction runs every statement on it; otherwise statements go to the pool,
// each bounded by Timeout.
type BaseRepository struct {
	Pool    *pgxpool.Pool
	Timeout time.Duration
	tx      pgx.Tx
}

// bindTx returns a copy of the base whose statements run on tx.
func (r BaseRepository) bindTx(tx pgx.Tx) BaseRepository {
	r.tx = tx
	return r
}

func (r *BaseRepository) db() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.Pool
}

// withTimeout bounds pool statements by the store timeout. Inside a transaction the unit of work owns the deadline.
func (r *BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.tx != nil || r.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.Timeout)
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, translateError(err, "begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn on the bound transaction, or on a fresh one that commits when fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(ctx context.Context, db dbtx) error) error {
	if r.tx != nil {
		return fn(ctx, r.tx)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(context.Background(), tx)

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
