package service_test

import (
	"strings"
	"testing"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"user@localhost", true},
		{"", false},
		{"no-at-sign", false},
		{"two@@x.com", false},
		{"space @x.com", false},
		{"a@x..com", false},
		{"a@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := service.ValidateEmail(tt.email)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidEmail)
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		ok       bool
	}{
		{"alice", true},
		{"a_b-c", true},
		{"abc", true},
		{"abcdefghijklmnop", true},
		{"ab", false},
		{"abcdefghijklmnopq", false},
		{"has space", false},
		{"ünïcode", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := service.ValidateUsername(tt.username)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidUsername)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		maxBytes int
		ok       bool
	}{
		{"meets policy", "Secret123", 72, true},
		{"exactly eight", "Abcdef12", 72, true},
		{"too short", "Ab1defg", 72, false},
		{"no digit", "Abcdefgh", 72, false},
		{"no lowercase", "ABCDEFG1", 72, false},
		{"no uppercase", "abcdefg1", 72, false},
		{"non-ascii digit", "Abcdefg\u0661", 72, false},
		{"at ceiling", "Aa1" + strings.Repeat("x", 69), 72, true},
		{"over ceiling", "Aa1" + strings.Repeat("x", 70), 72, false},
		{"no ceiling", "Aa1" + strings.Repeat("x", 200), 0, true},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePassword(tt.password, tt.maxBytes)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidPassword)
		})
	}
}
