package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wattleworks/authd/pkg/cryptox"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	t.Run("correct password verifies", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("secret123", hash))
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		err := cryptox.VerifyPassword("secret124", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		other, err := cryptox.HashPassword("secret123")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}

func TestHashPasswordEmpty(t *testing.T) {
	t.Parallel()

	_, err := cryptox.HashPassword("")
	require.Error(t, err)
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	t.Parallel()

	err := cryptox.VerifyPassword("secret123", "not-a-bcrypt-hash")
	require.Error(t, err)
	require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
}
