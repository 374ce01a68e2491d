package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/wattleworks/authd/internal/authd/service"
	"github.com/wattleworks/authd/internal/authd/store"
	"github.com/wattleworks/authd/pkg/httpx"
	"github.com/wattleworks/authd/pkg/jwtx"
	"github.com/wattleworks/authd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	refreshTTL   time.Duration
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	refreshTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		refreshTTL:   refreshTTL,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerResources()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	login := &LoginHandler{
		AuthService:  r.AuthService,
		TokenService: r.TokenService,
		RefreshTTL:   r.refreshTTL,
	}
	refresh := &RefreshHandler{TokenService: r.TokenService}

	// Credential-bearing endpoints get the strict per-IP limit to slow down
	// brute forcing.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(refresh, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(&LogoutHandler{}, httpx.RateLimitByIP(httpx.LenientLimit)),
	)

	r.Mux.Handle("GET /auth/me",
		httpx.Chain(&MeHandler{},
			httpx.SessionGate(r.verifier, r.resolver()),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerResources() {
	gate := httpx.SessionGate(r.verifier, r.resolver())

	r.Mux.Handle("GET /api/users",
		httpx.Chain(&UsersHandler{}, gate, httpx.RateLimitByIP(httpx.LenientLimit)),
	)
	r.Mux.Handle("GET /api/products",
		httpx.Chain(&ProductsHandler{}, gate, httpx.RateLimitByIP(httpx.LenientLimit)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}", RootHandler(r.buildVersion))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

// resolver adapts the credential store to the session gate's view of the
// world: a bare subject-to-identity lookup.
func (r *Router) resolver() httpx.IdentityResolver {
	return storeResolver{users: r.store.Users()}
}

type storeResolver struct {
	users store.Users
}

func (s storeResolver) Resolve(ctx context.Context, subject string) (httpx.Identity, error) {
	u, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, httpx.ErrUnknownIdentity
		}
		return httpx.Identity{}, err
	}
	return httpx.Identity{Username: u.Username, Email: u.Email}, nil
}
