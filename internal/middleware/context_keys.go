package middleware

import "github.com/gin-gonic/gin"

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey = contextKey("userID")
	// tenantIDKey is the key used to store the resolved tenant.
	tenantIDKey = contextKey("tenantID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}

// GetTenantIDFromContext retrieves the tenant resolved by TenantMiddleware.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	if tenantID, ok := c.Request.Context().Value(tenantIDKey).(string); ok && tenantID != "" {
		return tenantID, true
	}
	return "", false
}
