package http

import (
	"net/http"

	"github.com/wattleworks/authd/pkg/httpx"
)

// LogoutHandler serves POST /auth/logout. It instructs the client to drop the
// refresh cookie. There is no server-side session list, so a refresh token
// captured elsewhere remains valid until it expires.
type LogoutHandler struct{}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "successfully logged out",
	})
}
