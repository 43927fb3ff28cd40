package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, TableName: "registers"}, apperrors.ErrConflict},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, apperrors.ErrConflict},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgDeadlockDetected}), apperrors.ErrConflict},
		{"statement timeout", &pgconn.PgError{Code: pgQueryCanceled}, apperrors.ErrTimeout},
		{"lock timeout", &pgconn.PgError{Code: pgLockNotAvailable}, apperrors.ErrTimeout},
		{"context deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), apperrors.ErrTimeout},
		{"already translated", apperrors.NewNotFoundError("sale", 3), apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err, "test"), tt.want)
		})
	}
}

func TestTranslateError_CancellationIsNotATimeout(t *testing.T) {
	err := translateError(fmt.Errorf("query: %w", context.Canceled), "find register")

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, apperrors.ErrTimeout)
	assert.Equal(t, 500, apperrors.HTTPStatus(err))
}

func TestTranslateError_Unknown(t *testing.T) {
	cause := errors.New("connection reset")

	err := translateError(cause, "insert sale")

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, translateError(nil, "noop"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: pgUniqueViolation})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgDeadlockDetected}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}
