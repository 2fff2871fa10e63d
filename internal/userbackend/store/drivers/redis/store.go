// Package redis keeps the proof ledger in Redis so that every instance sees
// the same claims.
package redis

import (
	"context"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/store"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "proof:used:"

type Store struct {
	client *goredis.Client
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// NewStore wraps an existing client. The caller keeps ownership of the
// client only if it never calls Close.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// ApplyMigrations is a no-op; keys carry their own expiry.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) UsedProofs() store.UsedProofs { return &usedProofsRepo{s: s} }

type usedProofsRepo struct {
	s *Store
}

func (r *usedProofsRepo) Claim(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.s.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := r.s.client.SetNX(ctx, keyPrefix+jti, r.s.now().Unix(), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrAlreadyClaimed
	}
	return nil
}

func (r *usedProofsRepo) Release(ctx context.Context, jti string) error {
	return r.s.client.Del(ctx, keyPrefix+jti).Err()
}

// DeleteExpired reports zero; Redis evicts expired claims by itself.
func (r *usedProofsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
