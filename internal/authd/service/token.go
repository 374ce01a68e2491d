package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wattleworks/authd/internal/authd/domain"
	"github.com/wattleworks/authd/internal/authd/store"
	"github.com/wattleworks/authd/pkg/jwtx"
	"github.com/wattleworks/authd/pkg/slogx"
)

// TokenService owns the token lifecycle: issuing access/refresh pairs at
// login and exchanging a valid refresh token for a fresh access token.
type TokenService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccess signs a short-lived access token for the user.
func (s *TokenService) IssueAccess(u domain.User) (string, error) {
	claims := jwtx.NewAccessClaims(u.Username, s.Issuer, s.AccessTTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// IssueRefresh signs a long-lived refresh token for the user.
func (s *TokenService) IssueRefresh(u domain.User) (string, error) {
	claims := jwtx.NewRefreshClaims(u.Username, s.Issuer, s.RefreshTTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// IssuePair signs the access/refresh pair handed out at login.
func (s *TokenService) IssuePair(u domain.User) (domain.TokenPair, error) {
	access, err := s.IssueAccess(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefresh(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token without
// re-checking the password. The refresh token itself is not rotated: the
// caller keeps using the one issued at login until it expires. A stolen
// refresh token therefore stays usable for its whole lifetime; revocation
// needs server-side state this service intentionally does not keep.
func (s *TokenService) Refresh(ctx context.Context, rawToken string) (string, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(rawToken)
	if err != nil {
		l.Info("refresh token rejected", "err", err)
		return "", fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}

	// The type discriminator is the only thing separating a refresh token
	// from an access token. An access token must never mint new tokens.
	if !claims.IsRefresh() {
		l.Warn("refresh rejected", "reason", "token is not a refresh token", "sub", claims.Subject)
		return "", ErrWrongTokenType
	}
	if claims.Subject == "" {
		return "", ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("refresh rejected", "reason", "subject no longer exists", "sub", claims.Subject)
			return "", ErrUnknownSubject
		}
		return "", err
	}

	return s.IssueAccess(u)
}
