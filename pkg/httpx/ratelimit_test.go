package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattleworks/authd/pkg/httpx"
)

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	limited := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
		httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}),
	)

	hit := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("burst then limited", func(t *testing.T) {
		for range 3 {
			require.Equal(t, http.StatusOK, hit("10.0.0.1:1234"))
		}
		require.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1234"))
	})

	t.Run("other IPs unaffected", func(t *testing.T) {
		require.Equal(t, http.StatusOK, hit("10.0.0.2:1234"))
	})
}

func TestRateLimitHonorsForwardedFor(t *testing.T) {
	t.Parallel()

	limited := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
		httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}),
	)

	hit := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "127.0.0.1:9999" // same proxy for everyone
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, hit("203.0.113.7"))
	require.Equal(t, http.StatusTooManyRequests, hit("203.0.113.7"))
	require.Equal(t, http.StatusOK, hit("203.0.113.8, 10.0.0.1"))
}
