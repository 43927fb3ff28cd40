package config

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	PGSQLMaxConns  int32 // 0 keeps the pgx default
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	LogLevel       string

	// Store
	StoreDriver        string
	StoreTimeout       time.Duration
	StockRetryAttempts int
	DefaultTenantID    string

	// HTTP surface
	JWTSecret          string // Bearer validation is enabled only when set
	RateLimit          string // ulule/limiter formatted rate, e.g. "300-M"
	CORSAllowedOrigins []string

	// Side channels
	RedisURL        string
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PGSQL_MAX_CONNS", 0)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("STOCK_RETRY_ATTEMPTS", 3)
	viper.SetDefault("DEFAULT_TENANT_ID", "default")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		log.Printf("Warning: Unknown STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StoreDriver == StoreDriverPostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	maxConns := viper.GetInt64("PGSQL_MAX_CONNS")
	if maxConns < 0 || maxConns > math.MaxInt32 {
		log.Printf("Warning: Invalid value for PGSQL_MAX_CONNS (%d). Using the driver default.\n", maxConns)
		maxConns = 0
	}
	cfg.PGSQLMaxConns = int32(maxConns)

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	storeTimeoutStr := viper.GetString("STORE_TIMEOUT")
	storeTimeout, err := time.ParseDuration(storeTimeoutStr)
	if err != nil || storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for STORE_TIMEOUT ('%s'). Defaulting to %s.\n", storeTimeoutStr, storeTimeout.String())
	}
	cfg.StoreTimeout = storeTimeout

	cfg.StockRetryAttempts = viper.GetInt("STOCK_RETRY_ATTEMPTS")
	if cfg.StockRetryAttempts < 1 {
		log.Printf("Warning: Invalid value for STOCK_RETRY_ATTEMPTS (%d). Defaulting to 3.\n", cfg.StockRetryAttempts)
		cfg.StockRetryAttempts = 3
	}

	cfg.DefaultTenantID = strings.TrimSpace(viper.GetString("DEFAULT_TENANT_ID"))
	if cfg.DefaultTenantID == "" {
		cfg.DefaultTenantID = "default"
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Bearer token validation is disabled.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}
