package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/cash_register_app/internal/adapters/cache"
	"github.com/SscSPs/cash_register_app/internal/adapters/events"
	portsrepo "github.com/SscSPs/cash_register_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/core/services"
	"github.com/SscSPs/cash_register_app/internal/handlers"
	"github.com/SscSPs/cash_register_app/internal/middleware"
	"github.com/SscSPs/cash_register_app/internal/platform/config"
	"github.com/SscSPs/cash_register_app/internal/platform/metrics"
	"github.com/SscSPs/cash_register_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/cash_register_app/internal/repositories/memory"
	"github.com/SscSPs/cash_register_app/internal/utils"
	"github.com/SscSPs/cash_register_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Cash Register API
// @version 1.0
// @description Register sessions and sale posting with stock consistency.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	repos, closeStore, err := setupStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	invalidator, closeCache := setupCache(cfg, logger)
	defer closeCache()

	side := services.SideChannels{
		Cache:   invalidator,
		Events:  events.NewPublisher(posthogClient),
		Metrics: metrics.New(prometheus.DefaultRegisterer),
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, side)

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.TenantHeader, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		Posthog:  posthogClient,
		Limiter:  limiter,
		Gatherer: prometheus.DefaultGatherer,
	})

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// setupStore builds the repositories for the configured driver and returns a cleanup func.
func setupStore(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		store := memory.NewStore()
		memory.SeedDemo(store, cfg.DefaultTenantID)
		return store.RepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL,
		database.WithPing(cfg.EnableDBCheck),
		database.WithConnectTimeout(cfg.StoreTimeout),
		database.WithMaxConns(cfg.PGSQLMaxConns),
	)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool, cfg.StoreTimeout), func() { database.ClosePgxPool(dbPool) }, nil
}

// runMigrations applies all pending "up" migrations over a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// setupCache connects the dashboard cache invalidator when REDIS_URL is set.
func setupCache(cfg *config.Config, logger *slog.Logger) (portssvc.CacheInvalidator, func()) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set; dashboard cache invalidation disabled")
		return cache.NoopInvalidator{}, func() {}
	}
	invalidator, err := cache.NewRedisInvalidator(cfg.RedisURL)
	if err != nil {
		logger.Warn("Invalid REDIS_URL; dashboard cache invalidation disabled", slog.String("error", err.Error()))
		return cache.NoopInvalidator{}, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()
	if err := invalidator.Ping(ctx); err != nil {
		logger.Warn("Redis not reachable at startup; invalidation stays best-effort", slog.String("error", err.Error()))
	}
	return invalidator, func() { _ = invalidator.Close() }
}
