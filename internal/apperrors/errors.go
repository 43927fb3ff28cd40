package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation that is illegal in the entity's current lifecycle state.
var ErrInvalidState = errors.New("invalid state")

// ErrInsufficientStock indicates a product does not have enough units for the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrConflict indicates an optimistic-version or uniqueness conflict. The caller must retry the whole operation.
var ErrConflict = errors.New("conflict")

// ErrTimeout indicates the store did not respond within the configured timeout.
var ErrTimeout = errors.New("store timeout")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError carries an HTTP-ish code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError wraps ErrValidation with a message describing the offending input.
func NewValidationFailedError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError wraps ErrNotFound for the given entity.
func NewNotFoundError(entity string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
}

// NewInvalidStateError wraps ErrInvalidState with a reason such as "already closed".
func NewInvalidStateError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, reason)
}

// NewTimeoutError wraps ErrTimeout around the driver error that triggered it.
func NewTimeoutError(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}
	return fmt.Errorf("%w: %s: %v", ErrTimeout, op, cause)
}

// FromContext classifies a context error. An expired deadline is a timeout;
// cancellation is passed through wrapped with op.
func FromContext(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ConflictError reports that a write lost a race against another writer.
// EntityID is zero when the conflicting row is not yet known (e.g. a uniqueness clash on insert).
type ConflictError struct {
	Entity   string
	EntityID int64
	Reason   string
}

func (e *ConflictError) Error() string {
	if e.EntityID != 0 {
		return fmt.Sprintf("conflict on %s %d: %s", e.Entity, e.EntityID, e.Reason)
	}
	return fmt.Sprintf("conflict on %s: %s", e.Entity, e.Reason)
}

// Is lets errors.Is(err, ErrConflict) match any ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a ConflictError.
func NewConflictError(entity string, entityID int64, reason string) error {
	return &ConflictError{Entity: entity, EntityID: entityID, Reason: reason}
}

// InsufficientStockError names the product that could not cover the requested quantity.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d",
		e.ProductID, e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// HTTPStatus maps an error from the core onto the status code the API answers with.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &appErr) && appErr.Code >= 400:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a short machine-readable name for the error class.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return "CONFLICT"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "INTERNAL"
	}
}
