package service

import (
	"regexp"
	"unicode"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
)

var (
	emailPattern    = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,16}$`)
)

const minPasswordLength = 8

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail.With(map[string]string{"email": email})
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return domain.ErrInvalidUsername.With(map[string]string{"username": username})
	}
	return nil
}

// ValidatePassword applies the password policy: at least 8 bytes, at most
// maxBytes when maxBytes > 0, with at least one ASCII digit, one lowercase
// and one uppercase letter. The password itself is never echoed back.
func ValidatePassword(password string, maxBytes int) error {
	if len(password) < minPasswordLength || (maxBytes > 0 && len(password) > maxBytes) {
		return domain.ErrInvalidPassword
	}

	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	if !digit || !lower || !upper {
		return domain.ErrInvalidPassword
	}
	return nil
}
