package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, true, 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.WithinDuration(t, time.Now().UTC().Add(time.Hour), tok.Exp, 5*time.Second)

	id, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), id.UserID)
	require.True(t, id.IsAdmin)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", 7, false, 1)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": 7,
		"adm": false,
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
		"iat": time.Now().UTC().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenMalformed(t *testing.T) {
	_, err := ParseAccessToken("secret", "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Valid signature but no usable subject claim.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"adm": true,
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseAccessToken("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
