package config

import (
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("DISTRIBUTION_POLICY", "")
	t.Setenv("PAYMENT_POLICY", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("AGING_INTERVAL", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, expense.PolicyEqualSplit, cfg.Ledger.DistributionPolicy)
	assert.Equal(t, payment.PolicyFullSettlement, cfg.Ledger.PaymentPolicy)
	assert.Equal(t, time.Hour, cfg.Ledger.AgingInterval)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "/api/v1", cfg.Server.BasePath)
	assert.Contains(t, cfg.Database.ConnectionString(), "postgres://")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("DISTRIBUTION_POLICY", "area_weighted")
	t.Setenv("PAYMENT_POLICY", "PARTIAL")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AGING_INTERVAL", "15m")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.ro, https://b.ro")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, expense.PolicyAreaWeighted, cfg.Ledger.DistributionPolicy)
	assert.Equal(t, payment.PolicyPartial, cfg.Ledger.PaymentPolicy)
	assert.Equal(t, 15*time.Minute, cfg.Ledger.AgingInterval)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Database.ConnectionString())
	assert.Equal(t, []string{"https://a.ro", "https://b.ro"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("PAYMENT_POLICY", "SOMETIMES")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PAYMENT_POLICY", "")
	t.Setenv("JWT_SECRET_KEY", "")
	_, err = Load()
	assert.Error(t, err)
}
