package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/wattleworks/authd/pkg/jwtx"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewAccessClaims("testuser", "authd", 30*time.Minute, now)

	require.Equal(t, "testuser", c.Subject)
	require.Equal(t, "authd", c.Issuer)
	require.Empty(t, c.TokenType)
	require.Equal(t, now.Add(30*time.Minute).Unix(), c.ExpiresAt.Unix())
	require.Equal(t, now.Unix(), c.IssuedAt.Unix())
	require.NotEmpty(t, c.ID)

	// Issuance invariant: expiry is strictly in the future.
	require.True(t, c.ExpiresAt.After(now))
}

func TestNewRefreshClaims(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewRefreshClaims("testuser", "authd", 7*24*time.Hour, now)

	require.Equal(t, jwtx.TokenTypeRefresh, c.TokenType)
	require.True(t, c.IsRefresh())
	require.Equal(t, now.Add(7*24*time.Hour).Unix(), c.ExpiresAt.Unix())
}

func TestClaimsUniqueJTI(t *testing.T) {
	now := time.Now().UTC()
	a := jwtx.NewAccessClaims("testuser", "authd", time.Minute, now)
	b := jwtx.NewAccessClaims("testuser", "authd", time.Minute, now)

	// A "new" token is always a fresh artifact, never an edit of an old one.
	require.NotEqual(t, a.ID, b.ID)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "authd"},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("authd"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("chat-service"), jwtx.ErrIssuer)
	})
}
