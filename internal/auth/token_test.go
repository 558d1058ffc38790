package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret", 3600)
	userID := uuid.New()

	token, err := ts.GenerateAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	isValid, claims, err := ts.ValidateAccessToken(token)
	require.NoError(t, err)
	require.True(t, isValid)
	require.Equal(t, userID.String(), claims.UserID)
}

func TestValidateAccessTokenCollapsesFailures(t *testing.T) {
	ts := NewTokenService("test-secret", 3600)

	expired := NewTokenService("test-secret", -60)
	expiredToken, err := expired.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	otherSecret := NewTokenService("another-secret", 3600)
	foreignToken, err := otherSecret.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	// missing, malformed, expired and badly-signed tokens must all come
	// back as the same invalid outcome with no distinguishing error.
	for name, token := range map[string]string{
		"empty":         "",
		"malformed":     "not.a.jwt",
		"expired":       expiredToken,
		"bad signature": foreignToken,
	} {
		t.Run(name, func(t *testing.T) {
			isValid, claims, err := ts.ValidateAccessToken(token)
			require.NoError(t, err)
			require.False(t, isValid)
			require.Nil(t, claims)
		})
	}
}

func TestHashAndCompareSecret(t *testing.T) {
	hash, err := HashSecret("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.True(t, CompareSecret(hash, "hunter2"))
	require.False(t, CompareSecret(hash, "hunter3"))
}
