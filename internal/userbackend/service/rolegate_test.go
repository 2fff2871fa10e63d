package service_test

import (
	"testing"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/stretchr/testify/require"
)

func TestParseAdminList(t *testing.T) {
	require.Equal(t, []string{"root", "judge"}, service.ParseAdminList("root;;judge; "))
	require.Nil(t, service.ParseAdminList(""))
}

func TestRoleGate_RequireAdmin(t *testing.T) {
	admin := &domain.SessionRecord{UserID: 1, Username: "root"}
	user := &domain.SessionRecord{UserID: 2, Username: "alice"}

	tests := []struct {
		name     string
		disabled bool
		rec      *domain.SessionRecord
		want     error
	}{
		{"admin passes", false, admin, nil},
		{"no session is unauthorized", false, nil, domain.ErrUnauthorized},
		{"non-admin is forbidden", false, user, domain.ErrForbidden},
		{"disabled passes without session", true, nil, nil},
		{"disabled passes non-admin", true, user, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := service.NewRoleGate(service.ParseAdminList("root;judge"), tt.disabled)
			err := gate.RequireAdmin(tt.rec)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}
