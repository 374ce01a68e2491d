package http

import (
	"errors"
	"net/http"

	"github.com/wattleworks/authd/internal/authd/service"
	"github.com/wattleworks/authd/pkg/httpx"
	"github.com/wattleworks/authd/pkg/slogx"
)

// RefreshHandler serves POST /auth/refresh. It reads the refresh token from
// the protected cookie and returns a fresh access token.
type RefreshHandler struct {
	TokenService *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		httpx.WriteUnauthorized(w, "refresh token missing")
		return
	}

	access, err := h.TokenService.Refresh(ctx, cookie.Value)
	if err != nil {
		// Wrong type, bad signature, expired, vanished subject: the client
		// sees one uniform rejection, the logs keep the cause.
		switch {
		case isAuthFailure(err):
			httpx.WriteUnauthorized(w, "invalid refresh token")
		default:
			log.Error("refresh failed unexpectedly", "err", err)
			httpx.WriteServerError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// isAuthFailure reports whether err is one of the expected authentication
// failures that must surface as a plain 401.
func isAuthFailure(err error) bool {
	return errors.Is(err, service.ErrInvalidRefresh) ||
		errors.Is(err, service.ErrWrongTokenType) ||
		errors.Is(err, service.ErrUnknownSubject)
}
