package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wattleworks/authd/internal/authd/domain"
	"github.com/wattleworks/authd/internal/authd/store"
	"github.com/wattleworks/authd/pkg/cryptox"
	"github.com/wattleworks/authd/pkg/slogx"
)

// dummyHash is a throwaway bcrypt hash compared against when the username is
// unknown, so the unknown-user path costs roughly the same as a real
// verification and response timing does not reveal which usernames exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService verifies username/password credentials against the store.
type AuthService struct {
	Store store.Store
}

// Authenticate returns the user record for a valid username/password pair.
// An unknown username and a wrong password both fail with the identical
// ErrInvalidCredentials value.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash)
			l.Info("authentication failed", slog.String("username", username))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("authentication failed", slog.String("username", username))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	return u, nil
}
