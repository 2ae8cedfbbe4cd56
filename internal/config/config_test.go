package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dpa")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FINANCIAL_YEAR_WINDOW", "")
	t.Setenv("CURRENCY_SYMBOL", "₦")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev-secret-change-in-production", cfg.JWTSecret)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.FinancialYearWindow)
	assert.Equal(t, "₦", cfg.CurrencySymbol)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dpa")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvAsSlice("ALLOWED_ORIGINS", nil))

	t.Setenv("WORKER_COUNT", "abc")
	assert.Equal(t, 3, getEnvAsInt("WORKER_COUNT", 3))
}
