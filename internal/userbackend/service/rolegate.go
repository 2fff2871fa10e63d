package service

import (
	"strings"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
)

// RoleGate restricts operations to the configured admin usernames.
type RoleGate struct {
	admins   map[string]struct{}
	disabled bool
}

// NewRoleGate builds a gate from the admin list. With disabled set every
// caller passes, signed in or not.
func NewRoleGate(admins []string, disabled bool) *RoleGate {
	g := &RoleGate{admins: make(map[string]struct{}, len(admins)), disabled: disabled}
	for _, a := range admins {
		if a != "" {
			g.admins[a] = struct{}{}
		}
	}
	return g
}

// ParseAdminList splits a ';'-delimited list, dropping empty entries.
func ParseAdminList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (g *RoleGate) Disabled() bool { return g.disabled }

// RequireAdmin fails with Unauthorized when there is no session and with
// Forbidden when the session user is not an admin.
func (g *RoleGate) RequireAdmin(rec *domain.SessionRecord) error {
	if g.disabled {
		return nil
	}
	if rec == nil {
		return domain.New(domain.KindUnauthorized, "User is not logged in", nil)
	}
	if _, ok := g.admins[rec.Username]; !ok {
		return domain.New(domain.KindForbidden,
			"User is not logged in or not an admin. Set DISABLE_ROLE_VERIFICATION=true to bypass this check.",
			nil)
	}
	return nil
}
