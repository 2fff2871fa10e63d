// Package otp issues and checks short numeric one-time codes bound to an
// identity key (an email address) and an optional username.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/pquerna/otp"
)

const (
	DefaultTTL      = 10 * time.Minute
	DefaultCapacity = 10000
)

// Digits is the code format handed to users.
const Digits = otp.DigitsSix

// Store keeps at most one live code per key.
//
// Create replaces any existing entry for key. Verify reports whether code
// and bound both match the live entry; a nil bound is a value of its own and
// only matches an entry created with a nil bound. Errors are reserved for
// backend failures, never for a mismatch.
type Store interface {
	Create(ctx context.Context, key string, bound *string) (string, error)
	Verify(ctx context.Context, key string, bound *string, code string) (bool, error)
	Revoke(ctx context.Context, key string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
}

// Stats is a point-in-time view of a store.
type Stats struct {
	Backend  string `json:"backend"`
	Entries  int    `json:"entries"`
	Capacity int    `json:"capacity"`
}

// Generator returns a fresh code.
type Generator func() (string, error)

// Config is shared by every Store implementation.
type Config struct {
	TTL       time.Duration    // entry lifetime measured from creation
	Capacity  int              // live entries before the oldest is evicted
	SingleUse bool             // delete the entry on a successful Verify
	Now       func() time.Time // defaults to time.Now
	Generate  Generator        // defaults to RandomCode
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Generate == nil {
		c.Generate = RandomCode
	}
	return c
}

var codeSpace = big.NewInt(1_000_000)

// RandomCode draws a uniformly random code in 000000..999999.
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp: random code: %w", err)
	}
	return Digits.Format(int32(n.Int64())), nil // #nosec G115 - n < 1e6
}

// WellFormed reports whether s has the shape of a code. Verify does not
// require it; a malformed code simply never matches.
func WellFormed(s string) bool {
	if len(s) != Digits.Length() {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
