// Package proof issues short-lived tokens asserting that an OTP was verified
// for an email and optional username.
package proof

import (
	"fmt"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 10 * time.Minute

// Claims is the token payload. Username is serialised as null when absent.
type Claims struct {
	jwt.RegisteredClaims
	domain.IdentityClaim
}

type Issuer struct {
	ring *jwtx.KeyRing
	ttl  time.Duration
}

func NewIssuer(ring *jwtx.KeyRing, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{ring: ring, ttl: ttl}
}

// TTL is the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the claim. Each token gets a unique id so it can be
// claimed once in the replay ledger.
func (i *Issuer) Issue(email string, username *string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwtx.Registered(uuid.NewString(), i.ring.Now(), i.ttl),
		IdentityClaim:    domain.IdentityClaim{Email: email, Username: username},
	}
	token, err := i.ring.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("proof: issue: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of token and that it was issued for
// exactly (email, username). Every failure is domain.ErrProofInvalid; the
// underlying reason is only available through errors.Unwrap for logging.
func (i *Issuer) Verify(token, email string, username *string) (*Claims, error) {
	var claims Claims
	if err := i.ring.Verify(token, &claims); err != nil {
		return nil, invalid(err)
	}
	if !claims.Matches(domain.IdentityClaim{Email: email, Username: username}) {
		return nil, invalid(fmt.Errorf("proof: identity mismatch"))
	}
	return &claims, nil
}

func invalid(cause error) error {
	return domain.Wrap(domain.KindProofInvalid, domain.ErrProofInvalid.Message, cause, nil)
}
