package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// TenantHeader selects the tenant whose register timeline a request works on.
const TenantHeader = "X-Tenant-ID"

var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// TenantMiddleware resolves the tenant from the X-Tenant-ID header, falling back to defaultTenant.
func TenantMiddleware(defaultTenant string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			tenantID = defaultTenant
		}
		if !tenantIDPattern.MatchString(tenantID) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Invalid tenant header", slog.String("tenant_id", tenantID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid X-Tenant-ID header", "code": "VALIDATION"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("tenant_id", tenantID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
