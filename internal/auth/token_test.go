package auth

import (
	"testing"
	"time"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/config"
	"craftmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTestConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-not-for-production",
		JWTIssuer: "craftmarket-test",
		JWTTTL:    ttl,
	}
}

func tokenTestUser() *user.User {
	return &user.User{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		Email:       "maya@example.com",
		DisplayName: "Maya Crafts",
		Role:        common.RoleUser,
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService(tokenTestConfig(time.Hour))
	u := tokenTestUser()

	token, expiresAt, err := svc.IssueToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, common.RoleUser, claims.Role)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService(tokenTestConfig(-time.Minute))
	u := tokenTestUser()

	token, _, err := svc.IssueToken(u)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	assert.Nil(t, claims)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	assert.Contains(t, apiErr.Details.(string), "expired")
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenService(tokenTestConfig(time.Hour))
	validator := NewTokenService(&config.Config{
		JWTSecret: "a-different-secret",
		JWTIssuer: "craftmarket-test",
		JWTTTL:    time.Hour,
	})

	token, _, err := issuer.IssueToken(tokenTestUser())
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)

	assert.Nil(t, claims)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestTokenService_WrongIssuerRejected(t *testing.T) {
	issuer := NewTokenService(&config.Config{
		JWTSecret: "test-secret-not-for-production",
		JWTIssuer: "someone-else",
		JWTTTL:    time.Hour,
	})
	validator := NewTokenService(tokenTestConfig(time.Hour))

	token, _, err := issuer.IssueToken(tokenTestUser())
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_GarbageRejected(t *testing.T) {
	svc := NewTokenService(tokenTestConfig(time.Hour))

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
