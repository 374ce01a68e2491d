package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wattleworks/authd/internal/authd/service"
	"github.com/wattleworks/authd/pkg/httpx"
	"github.com/wattleworks/authd/pkg/slogx"
)

// refreshCookieName is the cookie carrying the refresh token. It is scoped to
// /auth so the browser only ever sends it to the refresh and logout
// endpoints.
const refreshCookieName = "refresh_token"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
	RefreshTTL   time.Duration
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error:       "invalid_request",
			Description: "body must be JSON with username and password",
		})
		return
	}

	user, err := h.AuthService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteUnauthorized(w, "incorrect username or password")
			return
		}
		log.Error("authentication failed unexpectedly", "err", err)
		httpx.WriteServerError(w)
		return
	}

	pair, err := h.TokenService.IssuePair(user)
	if err != nil {
		log.Error("token issuance failed", "err", err)
		httpx.WriteServerError(w)
		return
	}

	// The refresh token only travels in the cookie; the body carries the
	// access token alone.
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/auth",
		MaxAge:   int(h.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login succeeded", "username", user.Username)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "bearer",
	})
}
