// Package jwtx signs and verifies HS256 tokens against an ordered ring of
// shared secrets.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecrets  = errors.New("jwtx: at least one secret is required")
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrInvalid    = errors.New("jwtx: invalid claims")
)

// KeyRing holds HS256 secrets in priority order. The first secret signs;
// every secret is accepted on verification, tried in order. Rotating a
// secret means prepending the new one and keeping the old one until every
// token signed with it has expired.
type KeyRing struct {
	secrets [][]byte
	now     func() time.Time
}

// Option configures a KeyRing.
type Option func(*KeyRing)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(k *KeyRing) { k.now = now }
}

// NewKeyRing builds a ring from secrets. Empty secrets are skipped so an
// unset optional secret can be passed through directly.
func NewKeyRing(secrets []string, opts ...Option) (*KeyRing, error) {
	k := &KeyRing{now: time.Now}
	for _, s := range secrets {
		if s == "" {
			continue
		}
		k.secrets = append(k.secrets, []byte(s))
	}
	if len(k.secrets) == 0 {
		return nil, ErrNoSecrets
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Now returns the ring's notion of the current time.
func (k *KeyRing) Now() time.Time { return k.now() }

// Len is the number of accepted secrets.
func (k *KeyRing) Len() int { return len(k.secrets) }

// Sign serialises claims as an HS256 JWT using the primary secret.
func (k *KeyRing) Sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(k.secrets[0])
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

// Verify parses token into claims, accepting a signature from any secret in
// the ring. Expiry is mandatory. Errors are one of ErrMalformed,
// ErrInvalidSig, ErrExpired or ErrInvalid, wrapping the parser error.
func (k *KeyRing) Verify(token string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(k.now),
	)

	var err error
	for _, secret := range k.secrets {
		_, err = parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err == nil {
			return nil
		}
		// Only a signature mismatch is worth retrying with the next secret.
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
			break
		}
	}

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
}

// Registered builds the standard claims for a token with a fixed lifetime.
func Registered(id string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
