package store

import (
	"context"
	"errors"

	"github.com/wattleworks/authd/internal/authd/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite,
// redis) implement this. The token lifecycle only ever reads users, so the
// surface stays deliberately small.
type Store interface {
	Users() Users

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Users is the credential lookup the authenticator and session gate consult.
type Users interface {
	// GetByUsername returns the user record, or ErrNotFound if the username
	// is unknown.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// Create inserts a new user. Returns ErrAlreadyExists on a username
	// collision.
	Create(ctx context.Context, u domain.User) error

	// IsEmpty reports whether the store holds no users, used for seeding.
	IsEmpty(ctx context.Context) (bool, error)
}
