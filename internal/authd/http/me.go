package http

import (
	"net/http"

	"github.com/wattleworks/authd/pkg/httpx"
)

type meResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MeHandler serves GET /auth/me. The session gate has already verified the
// bearer token and resolved the identity by the time this runs.
type MeHandler struct{}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		// Only reachable if the route was wired without the gate.
		httpx.WriteUnauthorized(w, "could not validate credentials")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, meResponse{
		Username: identity.Username,
		Email:    identity.Email,
	})
}
