package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/freecontest/userbackend/pkg/cryptox"
)

// Credentials hashes and checks passwords. Stored hashes live with the
// database gateway; this type never keeps them.
type Credentials struct {
	hasher cryptox.Hasher

	// dummy is checked against when the account does not exist, so a
	// login for an unknown user costs the same as a wrong password.
	dummy string
}

func NewCredentials(hasher cryptox.Hasher) (*Credentials, error) {
	dummy, err := hasher.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize128))
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	return &Credentials{hasher: hasher, dummy: dummy}, nil
}

// Hash returns a freshly salted hash.
func (c *Credentials) Hash(password string) (string, error) {
	return c.hasher.HashPassword(password)
}

// Verify reports whether password matches hash. Malformed hashes are a
// non-match, not an error.
func (c *Credentials) Verify(password, hash string) bool {
	err := c.hasher.VerifyPassword(password, hash)
	if err != nil && !errors.Is(err, cryptox.ErrPasswordMismatch) {
		slog.Warn("stored_password_hash_unreadable", slog.String("error", err.Error()))
	}
	return err == nil
}

// ValidatePassword applies the password policy with the length ceiling of
// the configured hash algorithm.
func (c *Credentials) ValidatePassword(password string) error {
	return ValidatePassword(password, c.hasher.MaxPasswordBytes())
}

// Burn spends the time of one verification without a real hash.
func (c *Credentials) Burn(password string) {
	_ = c.hasher.VerifyPassword(password, c.dummy)
}
