package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("PORT", "")
	t.Setenv("STOCK_RETRY_ATTEMPTS", "")
	t.Setenv("DEFAULT_TENANT_ID", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("PGSQL_MAX_CONNS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 3, cfg.StockRetryAttempts)
	assert.Equal(t, "default", cfg.DefaultTenantID)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, int32(0), cfg.PGSQLMaxConns)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("STOCK_RETRY_ATTEMPTS", "5")
	t.Setenv("DEFAULT_TENANT_ID", "acme")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PGSQL_MAX_CONNS", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 5, cfg.StockRetryAttempts)
	assert.Equal(t, "acme", cfg.DefaultTenantID)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int32(12), cfg.PGSQLMaxConns)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	viper.Reset()
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("STOCK_RETRY_ATTEMPTS", "0")
	t.Setenv("PGSQL_MAX_CONNS", "-4")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 3, cfg.StockRetryAttempts)
	assert.Equal(t, int32(0), cfg.PGSQLMaxConns)
}
