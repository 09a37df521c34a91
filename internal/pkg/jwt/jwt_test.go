package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken(42, "amine", "SYNDIC", "test-secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "amine", claims.Username)
	require.Equal(t, "SYNDIC", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken(1, "sara", "ADMIN", "secret-a", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret-b")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredAccessToken(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken(1, "sara", "ADMIN", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateRefreshToken(7, "tok-123", "refresh-secret", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "tok-123", claims.TokenID)
}

func TestRefreshTokenNotValidAsAccessSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateRefreshToken(7, "tok-123", "refresh-secret", 7)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token, "other-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
