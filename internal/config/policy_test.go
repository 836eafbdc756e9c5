package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
)

func TestParsePolicy(t *testing.T) {
	data := []byte(`
edit_grace_days: 3
default_discounts:
  - scope: bonus
    description: Bonus withholding
    kind: PERCENTAGE
    percentage: "10"
    calculation_order: 1
  - scope: general
    description: Health plan
    kind: FIXED
    amount: "150.00"
    calculation_order: 2
`)

	policy, err := ParsePolicy(data)
	require.NoError(t, err)

	assert.Equal(t, 3, policy.EditGraceDays)
	assert.Equal(t, defaultBatchConcurrency, policy.BatchConcurrency)
	require.Len(t, policy.DefaultDiscounts, 2)
	assert.Equal(t, "10", policy.DefaultDiscounts[0].Percentage.String())
	assert.Equal(t, "150", policy.DefaultDiscounts[1].Amount.String())

	discounts := policy.CompanyDiscounts("company-1")
	require.Len(t, discounts, 2)
	assert.Equal(t, payroll.DiscountScopeBonus, discounts[0].Scope)
	assert.Equal(t, payroll.DiscountKindFixed, discounts[1].Kind)
	assert.Equal(t, "company-1", discounts[1].CompanyID)
	assert.True(t, discounts[1].IsActive)
}

func TestParsePolicy_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"grace too long", "edit_grace_days: 28"},
		{"no workers", "batch_concurrency: 0"},
		{"unknown scope", "default_discounts:\n  - {scope: other, description: x, kind: FIXED, amount: \"1\"}"},
		{"missing description", "default_discounts:\n  - {scope: general, kind: FIXED, amount: \"1\"}"},
		{"percentage out of range", "default_discounts:\n  - {scope: general, description: x, kind: PERCENTAGE, percentage: \"120\"}"},
		{"malformed yaml", "edit_grace_days: [1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePolicy([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadPolicy_MissingFileUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
}

func TestLoadPolicy_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_concurrency: 2\n"), 0o600))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, 2, policy.BatchConcurrency)
	assert.Equal(t, defaultGraceDays, policy.EditGraceDays)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Password: "secret"},
		JWT:      JWTConfig{Secret: "jwt"},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Metrics.Path = "metrics"
	assert.Error(t, cfg.Validate())

	cfg.Metrics.Path = "/metrics"
	cfg.JWT.Secret = ""
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET_KEY is required")
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "payroll", SSLMode: "disable"}}
	assert.Equal(t, "postgres://u:p@db:5432/payroll?sslmode=disable", cfg.DatabaseURL())
}

func TestDefaultPolicy_SeedsBuiltInDiscounts(t *testing.T) {
	policy := DefaultPolicy()
	require.NoError(t, policy.Validate())
	require.Len(t, policy.DefaultDiscounts, 4)

	discounts := policy.CompanyDiscounts("company-1")
	assert.Equal(t, payroll.DiscountScopeBonus, discounts[0].Scope)
	assert.Equal(t, "Health plan", discounts[3].Description)
	assert.True(t, discounts[3].Amount.Equal(decimal.RequireFromString("150")))
}

func TestParsePolicy_EmptyDiscountsDisableSeeding(t *testing.T) {
	policy, err := ParsePolicy([]byte("default_discounts: []\n"))
	require.NoError(t, err)
	assert.Empty(t, policy.DefaultDiscounts)
}
