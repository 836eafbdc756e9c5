package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankaa/payroll-backend-go/internal/domain/auth"
)

func TestGenerateAccessToken(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "company-1", auth.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	companyID, ok := decoded.Get("company_id")
	require.True(t, ok)
	assert.Equal(t, "company-1", companyID)

	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, "manager", role)

	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("test-secret", "soon")
	assert.Error(t, err)
}
