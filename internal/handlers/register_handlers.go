package handlers

import (
	"net/http"

	"github.com/SscSPs/cash_register_app/cmd/docs"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/middleware"
	"github.com/SscSPs/cash_register_app/internal/platform/config"
	"github.com/SscSPs/cash_register_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional collaborators of the HTTP surface. Nil fields disable the matching middleware.
type RouteDeps struct {
	Posthog  *utils.PosthogClientWrapper
	Limiter  *limiter.Limiter
	Gatherer prometheus.Gatherer
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// Business routes are served at the root and again under /api/v1.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	for _, prefix := range []string{"", "/api/v1"} {
		setupAPIRoutes(r.Group(prefix), cfg, services, deps)
	}

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes applies the request middleware chain and delegates to the entity route registrations.
func setupAPIRoutes(
	rg *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	rg.Use(middleware.TenantMiddleware(cfg.DefaultTenantID))
	if deps.Limiter != nil {
		rg.Use(middleware.RateLimit(deps.Limiter))
	}
	if cfg.JWTSecret != "" {
		rg.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	}
	if deps.Posthog != nil {
		rg.Use(middleware.PosthogMiddleware(deps.Posthog))
	}

	RegisterRegisterRoutes(rg, services.Register, services.Sale)
	RegisterSaleRoutes(rg, services.Sale)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
