package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the store reacts to.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgQueryCanceled        = "57014"
	pgLockNotAvailable     = "55P03"
)

// translateError maps driver failures onto apperrors. Errors that already carry
// an application meaning pass through unchanged.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if isAppError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.FromContext(op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflictError(pgErr.TableName, 0, "unique constraint "+pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected:
			return apperrors.NewConflictError(pgErr.TableName, 0, pgErr.Message)
		case pgQueryCanceled, pgLockNotAvailable:
			return apperrors.NewTimeoutError(op, err)
		}
	}
	return apperrors.NewAppError(500, "failed to "+op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isAppError(err error) bool {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return true
	}
	for _, sentinel := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrInvalidState,
		apperrors.ErrInsufficientStock,
		apperrors.ErrConflict,
		apperrors.ErrTimeout,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
