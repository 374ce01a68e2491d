package http

import (
	"net/http"

	"github.com/wattleworks/authd/pkg/httpx"
)

// The /api endpoints are example protected resources. They serve static
// fixtures; the only interesting part is that the session gate in front of
// them works.

type apiUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type apiProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// UsersHandler serves GET /api/users.
type UsersHandler struct{}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, _ := httpx.IdentityFromContext(r.Context())

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"users": []apiUser{
			{ID: 1, Username: "alice", Email: "alice@example.com"},
			{ID: 2, Username: "bob", Email: "bob@example.com"},
			{ID: 3, Username: "charlie", Email: "charlie@example.com"},
		},
		"total":        3,
		"requested_by": identity.Username,
	})
}

// ProductsHandler serves GET /api/products.
type ProductsHandler struct{}

func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, _ := httpx.IdentityFromContext(r.Context())

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"products": []apiProduct{
			{ID: 1, Name: "Laptop", Price: 999.99, Category: "Electronics"},
			{ID: 2, Name: "Coffee Mug", Price: 15.99, Category: "Kitchen"},
			{ID: 3, Name: "Book", Price: 24.99, Category: "Books"},
		},
		"total":        3,
		"requested_by": identity.Username,
	})
}
