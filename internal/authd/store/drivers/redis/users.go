package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/wattleworks/authd/internal/authd/domain"
	"github.com/wattleworks/authd/internal/authd/store"
)

const userKeyPrefix = "user:"

type usersRepo struct {
	client *goredis.Client
}

type userRecord struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func userKey(username string) string { return userKeyPrefix + username }

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	val, err := r.client.Get(ctx, userKey(username)).Result()
	if errors.Is(err, goredis.Nil) {
		return domain.User{}, store.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	var rec userRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return domain.User{}, fmt.Errorf("redis: corrupt user record: %w", err)
	}

	return domain.User{
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(userRecord{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		return err
	}

	// SETNX keeps the create atomic: a concurrent create of the same
	// username loses cleanly.
	ok, err := r.client.SetNX(ctx, userKey(u.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, userKeyPrefix+"*", 16).Result()
		if err != nil {
			return false, err
		}
		if len(keys) > 0 {
			return false, nil
		}
		if next == 0 {
			return true, nil
		}
		cursor = next
	}
}
