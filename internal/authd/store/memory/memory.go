// Package memory provides an in-memory credential store. It backs the default
// configuration and test fixtures; production deployments should use the
// sqlite or redis drivers.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wattleworks/authd/internal/authd/domain"
	"github.com/wattleworks/authd/internal/authd/store"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewStore() *Store {
	return &Store{users: make(map[string]domain.User)}
}

func (s *Store) Users() store.Users           { return (*usersRepo)(s) }
func (s *Store) Ping(_ context.Context) error { return nil }
func (s *Store) Close() error                 { return nil }

type usersRepo Store

func (r *usersRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) Create(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Username]; ok {
		return store.ErrAlreadyExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.Username] = u
	return nil
}

func (r *usersRepo) IsEmpty(_ context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users) == 0, nil
}
