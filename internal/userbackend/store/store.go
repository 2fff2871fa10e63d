package store

import (
	"context"
	"errors"
	"time"
)

var ErrAlreadyClaimed = errors.New("store: already claimed")

// Store is the root data access interface. Concrete drivers (sqlite, redis)
// implement this. User records are not here; they belong to the database
// gateway.
type Store interface {
	UsedProofs() UsedProofs

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing connection is still alive.
	Ping(ctx context.Context) error
}

// UsedProofs records proof tokens that have already performed their action,
// keyed by the token's jti.
type UsedProofs interface {
	// Claim marks jti as used until expiresAt. It returns ErrAlreadyClaimed
	// when another request got there first.
	Claim(ctx context.Context, jti string, expiresAt time.Time) error

	// Release undoes a Claim whose action failed, so the token can be retried.
	Release(ctx context.Context, jti string) error

	// DeleteExpired removes claims whose token has expired anyway.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
