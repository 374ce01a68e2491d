package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wattleworks/authd/internal/authd/domain"
	"github.com/wattleworks/authd/internal/authd/store"
	"github.com/wattleworks/authd/internal/authd/store/memory"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	t.Run("starts empty", func(t *testing.T) {
		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Users().GetByUsername(ctx, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("create and fetch", func(t *testing.T) {
		u := domain.User{Username: "testuser", Email: "test@example.com", PasswordHash: "hash"}
		require.NoError(t, s.Users().Create(ctx, u))

		got, err := s.Users().GetByUsername(ctx, "testuser")
		require.NoError(t, err)
		require.Equal(t, "test@example.com", got.Email)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := s.Users().Create(ctx, domain.User{Username: "testuser"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("ping always succeeds", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}
