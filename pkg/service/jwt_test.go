package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "roombook/pkg/errors"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService(testSecret, time.Minute, time.Hour)

	access, refresh, err := svc.GenerateTokens(42, "j.brown", "professor")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "j.brown", claims.Username)
	assert.Equal(t, "professor", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testSecret, time.Minute, time.Hour)
	other := NewJWTService("another-secret", time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(1, "admin", "admin")
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(testSecret, -time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(1, "admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, time.Minute, time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
