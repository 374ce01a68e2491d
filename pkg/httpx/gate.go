package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wattleworks/authd/pkg/jwtx"
	"github.com/wattleworks/authd/pkg/slogx"
)

// ErrUnknownIdentity is returned by an IdentityResolver when the subject no
// longer exists.
var ErrUnknownIdentity = errors.New("httpx: unknown identity")

// IdentityResolver maps a verified token subject back to a live Identity.
// The gate re-resolves on every request so a deleted user is locked out as
// soon as their record is gone, not when their token expires.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject string) (Identity, error)
}

// SessionGate authenticates protected requests. It extracts the bearer token,
// verifies it, refuses refresh tokens, re-resolves the identity, and injects
// the Identity into the request context.
//
// All failure causes collapse into the same 401; the distinction only reaches
// the logs.
func SessionGate(v jwtx.Verifier, resolver IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				WriteUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("bearer token rejected", "err", err)
				WriteUnauthorized(w, "could not validate credentials")
				return
			}

			// A refresh token is never a valid bearer credential.
			if claims.IsRefresh() || claims.Subject == "" {
				log.Warn("bearer token rejected", "reason", "wrong token type or empty subject")
				WriteUnauthorized(w, "could not validate credentials")
				return
			}

			identity, err := resolver.Resolve(ctx, claims.Subject)
			if err != nil {
				if !errors.Is(err, ErrUnknownIdentity) {
					log.Error("identity resolution failed", "sub", claims.Subject, "err", err)
					WriteServerError(w)
					return
				}
				log.Warn("bearer token rejected", "reason", "subject no longer exists", "sub", claims.Subject)
				WriteUnauthorized(w, "could not validate credentials")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. Reports
// false on a missing or malformed header.
func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	if raw == "" {
		return "", false
	}
	return raw, true
}
