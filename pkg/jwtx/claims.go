package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wattleworks/authd/pkg/idx"
)

// Default token TTLs. Short access tokens limit the blast radius of a leaked
// bearer credential; the refresh token carries the 7-day session.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenTypeRefresh is the "type" claim value that marks refresh tokens.
// Access tokens carry no "type" claim at all, so the two classes can never
// be confused by a verifier that checks it.
const TokenTypeRefresh = "refresh"

// Claims is the claim set embedded in every token this service signs.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType discriminates refresh tokens from access tokens. Empty for
	// access tokens, "refresh" for refresh tokens.
	TokenType string `json:"type,omitempty"`
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool { return c.TokenType == TokenTypeRefresh }

// NewAccessClaims builds the claim set for an access token. The expiry is
// strictly in the future for any positive ttl.
func NewAccessClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
	}
}

// NewRefreshClaims builds the claim set for a refresh token, marked with the
// refresh type discriminator.
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	c := NewAccessClaims(subject, issuer, ttl, now)
	c.TokenType = TokenTypeRefresh
	return c
}

// ValidateIssuer checks the iss claim against an expected value. An empty
// expected value enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
