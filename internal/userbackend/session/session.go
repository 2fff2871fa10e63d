// Package session keeps the signed-in identity in a signed cookie.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultCookieName = "userbackend.sid"
	DefaultMaxAge     = 4 * 7 * 24 * time.Hour
)

// Config holds the cookie attributes. HttpOnly and SameSite=Strict are
// always set.
type Config struct {
	CookieName string
	Secure     bool // production only; browsers drop Secure cookies over plain HTTP
	MaxAge     time.Duration
}

type claims struct {
	jwt.RegisteredClaims

	User json.RawMessage `json:"user"`
}

// Store reads and writes the session cookie. The cookie value is an HS256
// token whose "user" claim is the SessionRecord, or null after logout.
type Store struct {
	ring *jwtx.KeyRing
	cfg  Config
}

func NewStore(ring *jwtx.KeyRing, cfg Config) *Store {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	return &Store{ring: ring, cfg: cfg}
}

// Load returns the record carried by the request, or nil. A missing cookie,
// a bad signature, an expired token or a payload of the wrong shape are all
// treated the same as no session.
func (s *Store) Load(r *http.Request) *domain.SessionRecord {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	var cl claims
	if err := s.ring.Verify(c.Value, &cl); err != nil {
		return nil
	}

	rec, err := parseRecord(cl.User)
	if err != nil {
		return nil
	}
	return rec
}

// LoadOrFail is Load for endpoints that require a signed-in user.
func (s *Store) LoadOrFail(r *http.Request) (*domain.SessionRecord, error) {
	rec := s.Load(r)
	if rec == nil {
		return nil, domain.New(domain.KindUnauthorized, "User is not logged in", nil)
	}
	return rec, nil
}

// Save writes rec to the response cookie, signed with the primary secret.
// A nil rec stores an explicit signed null, which Load reports as no session.
func (s *Store) Save(w http.ResponseWriter, rec *domain.SessionRecord) error {
	user := json.RawMessage("null")
	if rec != nil {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("session: encode record: %w", err)
		}
		user = b
	}

	token, err := s.ring.Sign(claims{
		RegisteredClaims: jwtx.Registered("", s.ring.Now(), s.cfg.MaxAge),
		User:             user,
	})
	if err != nil {
		return fmt.Errorf("session: sign: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.MaxAge.Seconds()),
		Expires:  s.ring.Now().Add(s.cfg.MaxAge),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Username returns the signed-in username or "". It has the shape of an
// httpx.KeyExtractor.
func (s *Store) Username(r *http.Request) string {
	if rec := s.Load(r); rec != nil {
		return rec.Username
	}
	return ""
}

var errShape = errors.New("session: record does not match shape")

// parseRecord accepts only {"user_id": <integer >= 0>, "username": <string>}.
// The signature has already been checked; this guards against records
// written by an older or buggy release.
func parseRecord(raw json.RawMessage) (*domain.SessionRecord, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errShape
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errShape
	}

	num, ok := fields["user_id"].(json.Number)
	if !ok {
		return nil, errShape
	}
	id, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil || id < 0 {
		return nil, errShape
	}

	username, ok := fields["username"].(string)
	if !ok {
		return nil, errShape
	}

	return &domain.SessionRecord{UserID: id, Username: username}, nil
}
