package httpx

import "context"

type ctxKey string

const (
	// CtxKeyIdentity carries the resolved Identity for the current request.
	CtxKeyIdentity ctxKey = "identity"
)

// Identity is the authenticated principal for a single request. It is
// resolved fresh on every request and never persisted.
type Identity struct {
	Username string
	Email    string
}

// IdentityFromContext returns the Identity placed by SessionGate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(Identity)
	return id, ok
}
