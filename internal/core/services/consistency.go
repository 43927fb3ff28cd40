package services

import (
	"context"
	"errors"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
)

// DefaultStockRetryAttempts bounds the re-read/re-try loop of a conditional stock decrement.
const DefaultStockRetryAttempts = 3

// retryOnConflict runs fn until it succeeds, fails with anything other than ErrConflict,
// or has been attempted attempts times. The last error is returned on exhaustion.
// onRetry, when set, is called before every attempt after the first.
func retryOnConflict(ctx context.Context, attempts int, onRetry func(attempt int), fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return apperrors.FromContext("retry aborted", ctxErr)
			}
			if onRetry != nil {
				onRetry(attempt)
			}
		}
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
	}
	return err
}

// isBusinessFailure reports errors that are expected outcomes of a request rather than faults.
func isBusinessFailure(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrInvalidState) ||
		errors.Is(err, apperrors.ErrInsufficientStock) ||
		errors.Is(err, apperrors.ErrConflict)
}
