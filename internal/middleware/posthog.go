package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/cash_register_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
// The distinct id is the authenticated user when present, otherwise the tenant.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		distinctID, ok := GetUserIDFromContext(c)
		if !ok {
			if distinctID, ok = GetTenantIDFromContext(c); !ok {
				return
			}
		}

		// "/api/v1/registers/:id/summary" -> "api_v1_registers_:id_summary"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		if err := posthogClient.Enqueue(distinctID, eventName, props); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Debug("Failed to enqueue API event", slog.String("error", err.Error()))
		}
	}
}
