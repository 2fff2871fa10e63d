package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestErrorTable_Exhaustive(t *testing.T) {
	codes := map[int]domain.Kind{}
	for _, k := range domain.Kinds {
		class, ok := errorTable[k]
		require.True(t, ok, "kind %s has no entry", k)

		prev, dup := codes[class.Code]
		require.False(t, dup, "code %d used by %s and %s", class.Code, prev, k)
		codes[class.Code] = k
	}
	require.Len(t, errorTable, len(domain.Kinds))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) httpx.Envelope[json.RawMessage] {
	t.Helper()
	var env httpx.Envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestResponder_Write(t *testing.T) {
	upstream := domain.Wrap(domain.KindUpstream, "Database gateway error", errors.New("dial tcp"),
		map[string]string{"response": "boom"})

	tests := []struct {
		name       string
		showDebug  bool
		err        error
		benign     bool
		wantStatus int
		wantCode   int
		wantData   string
	}{
		{"validation keeps data", false, domain.ErrInvalidEmail.With(map[string]string{"email": "x"}), false,
			http.StatusBadRequest, 1002, `{"email":"x"}`},
		{"sensitive data hidden", false, upstream, false, http.StatusBadGateway, 1012, `null`},
		{"sensitive data shown in debug", true, upstream, false, http.StatusBadGateway, 1012, `{"response":"boom"}`},
		{"unclassified error", true, errors.New("disk on fire"), false, http.StatusInternalServerError, 1000, `null`},
		{"benign unauthorized", false, domain.ErrUnauthorized, true, http.StatusOK, 1007, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := responder{showDebug: tt.showDebug}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/login", nil)

			if tt.benign {
				rs.benign(rec, req, tt.err)
			} else {
				rs.fail(rec, req, tt.err)
			}

			require.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			require.Equal(t, tt.wantCode, env.Error)
			require.JSONEq(t, tt.wantData, string(env.Data))
		})
	}
}

func TestMissing(t *testing.T) {
	require.NoError(t, missing(map[string]string{"a": "1"}))

	err := missing(map[string]string{"token": "", "email": "", "otp": "1"})
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	var de *domain.Error
	require.True(t, errors.As(err, &de))
	require.Equal(t, map[string]any{"missing": []string{"email", "token"}}, de.Data)
}
