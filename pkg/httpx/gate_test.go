package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattleworks/authd/pkg/httpx"
	"github.com/wattleworks/authd/pkg/jwtx"
)

var gateKey = []byte("0123456789abcdef0123456789abcdef")

type stubResolver struct {
	identities map[string]httpx.Identity
}

func (s stubResolver) Resolve(_ context.Context, subject string) (httpx.Identity, error) {
	id, ok := s.identities[subject]
	if !ok {
		return httpx.Identity{}, httpx.ErrUnknownIdentity
	}
	return id, nil
}

func gateFixture(t *testing.T) (*jwtx.HS256Signer, http.Handler) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(gateKey)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(gateKey, "authd-test")
	require.NoError(t, err)

	resolver := stubResolver{identities: map[string]httpx.Identity{
		"testuser": {Username: "testuser", Email: "test@example.com"},
	}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IdentityFromContext(r.Context())
		require.True(t, ok)
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"username": id.Username})
	})

	return signer, httpx.Chain(inner, httpx.SessionGate(verifier, resolver))
}

func doGet(t *testing.T, h http.Handler, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSessionGateAllowsValidAccessToken(t *testing.T) {
	t.Parallel()
	signer, h := gateFixture(t)

	token, err := signer.Sign(jwtx.NewAccessClaims("testuser", "authd-test", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	rec := doGet(t, h, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "testuser")
}

func TestSessionGateRejects(t *testing.T) {
	t.Parallel()
	signer, h := gateFixture(t)

	now := time.Now().UTC()

	valid, err := signer.Sign(jwtx.NewAccessClaims("testuser", "authd-test", time.Minute, now))
	require.NoError(t, err)
	expired, err := signer.Sign(jwtx.NewAccessClaims("testuser", "authd-test", -time.Minute, now))
	require.NoError(t, err)
	refresh, err := signer.Sign(jwtx.NewRefreshClaims("testuser", "authd-test", time.Hour, now))
	require.NoError(t, err)
	ghost, err := signer.Sign(jwtx.NewAccessClaims("deleted-user", "authd-test", time.Minute, now))
	require.NoError(t, err)

	cases := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dGVzdDp0ZXN0"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"refresh token where access expected", "Bearer " + refresh},
		{"unknown subject", "Bearer " + ghost},
		{"tampered token", "Bearer " + valid + "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(t, h, tc.authorization)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			// Uniform failure shape: no cause leaks to the client.
			require.Contains(t, rec.Body.String(), `"unauthorized"`)
		})
	}
}

func TestSessionGateResolverError(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(gateKey)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(gateKey, "authd-test")
	require.NoError(t, err)

	broken := resolverFunc(func(context.Context, string) (httpx.Identity, error) {
		return httpx.Identity{}, errors.New("store offline")
	})
	h := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
		httpx.SessionGate(verifier, broken),
	)

	token, err := signer.Sign(jwtx.NewAccessClaims("testuser", "authd-test", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	rec := doGet(t, h, "Bearer "+token)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

type resolverFunc func(context.Context, string) (httpx.Identity, error)

func (f resolverFunc) Resolve(ctx context.Context, subject string) (httpx.Identity, error) {
	return f(ctx, subject)
}
