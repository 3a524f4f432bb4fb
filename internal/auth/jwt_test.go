package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
)

func TestJWTGenerateValidate(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)

	token, err := svc.Generate(42, models.RoleDistrict)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleDistrict, claims.RoleType)
}

func TestJWTValidateWrongSecret(t *testing.T) {
	token, err := auth.NewJWTService("secret-a", 1).Generate(42, models.RoleAgency)
	require.NoError(t, err)

	_, err = auth.NewJWTService("secret-b", 1).Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidateGarbage(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidateExpired(t *testing.T) {
	svc := auth.NewJWTService("test-secret", -1)
	token, err := svc.Generate(42, models.RoleState)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
