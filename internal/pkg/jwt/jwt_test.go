package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "alice", "ADMIN", "test-secret", 60)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "alice", "ADMIN", "test-secret", 60)
	assert.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(7, "alice", "ADMIN", "test-secret", -1)
	assert.NoError(t, err)

	_, err = ValidateAccessToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", "refresh-secret", 7)
	assert.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "token-id-123", claims.TokenID)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", "refresh-secret", 7)
	assert.NoError(t, err)

	_, err = ValidateAccessToken(token, "access-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
