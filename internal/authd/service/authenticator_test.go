package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wattleworks/authd/internal/authd/domain"
	"github.com/wattleworks/authd/internal/authd/service"
	"github.com/wattleworks/authd/internal/authd/store/memory"
	"github.com/wattleworks/authd/pkg/cryptox"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()

	s := memory.NewStore()
	hash, err := cryptox.HashPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(context.Background(), domain.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: hash,
	}))
	return s
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth := &service.AuthService{Store: seedStore(t)}

	t.Run("valid credentials", func(t *testing.T) {
		u, err := auth.Authenticate(ctx, "testuser", "secret123")
		require.NoError(t, err)
		require.Equal(t, "testuser", u.Username)
		require.Equal(t, "test@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "testuser", "wrong-password")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "nosuchuser", "secret123")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		_, wrongPass := auth.Authenticate(ctx, "testuser", "wrong-password")
		_, unknownUser := auth.Authenticate(ctx, "nosuchuser", "whatever")

		// Same error value for both paths, not merely the same type.
		require.Equal(t, wrongPass, unknownUser)
	})
}
