package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the JSON error body for err. Server-side failures are logged at error level
// and hide their cause from the client.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	body := gin.H{"error": err.Error(), "code": apperrors.Kind(err)}

	var stockErr *apperrors.InsufficientStockError
	if errors.As(err, &stockErr) {
		body["productId"] = stockErr.ProductID
		body["requested"] = stockErr.Requested
		body["available"] = stockErr.Available
	}
	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		body["entity"] = conflictErr.Entity
	}

	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
		if status == http.StatusInternalServerError {
			body["error"] = msg
		}
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

// respondBindError reports a request that failed gin binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + describeBindError(err), "code": apperrors.Kind(apperrors.ErrValidation)})
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationFailedError("%s must be a positive integer", name)
	}
	return id, nil
}

// tenantID returns the tenant resolved by TenantMiddleware.
func tenantID(c *gin.Context) (string, bool) {
	tenant, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant not resolved", "code": apperrors.Kind(apperrors.ErrValidation)})
	}
	return tenant, ok
}
