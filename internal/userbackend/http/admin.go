package http

import (
	"net/http"

	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/freecontest/userbackend/internal/userbackend/session"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/httpx"
)

// RequireAdmin rejects requests whose session user is not on the admin list.
func RequireAdmin(gate *service.RoleGate, sessions *session.Store, rs responder) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := gate.RequireAdmin(sessions.Load(r)); err != nil {
				rs.fail(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminHandler exposes OTP store maintenance.
type AdminHandler struct {
	Auth *service.AuthService
	rs   responder
}

// HandleOTPStats godoc
//
//	@Summary	OTP store statistics
//	@Tags		Admin
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{object}	authsdk.OTPStatsResponse	"data of the envelope"
//	@Failure	401	{object}	authsdk.ErrorEnvelope		"Not logged in"
//	@Failure	403	{object}	authsdk.ErrorEnvelope		"Not an admin"
//	@Router		/api/v2/admin/otp/stats [get].
func (h *AdminHandler) HandleOTPStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Auth.OTPStats(r.Context())
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "OTP store statistics", authsdk.OTPStatsResponse{
		Backend:  stats.Backend,
		Entries:  stats.Entries,
		Capacity: stats.Capacity,
	})
}

// HandleRevokeOTP godoc
//
//	@Summary	Revoke a live OTP
//	@Tags		Admin
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.RevokeOTPRequest	true	"Identity key"
//	@Success	200		{object}	authsdk.RevokeOTPResponse	"data of the envelope"
//	@Failure	400		{object}	authsdk.ErrorEnvelope		"Missing key"
//	@Failure	401		{object}	authsdk.ErrorEnvelope		"Not logged in"
//	@Failure	403		{object}	authsdk.ErrorEnvelope		"Not an admin"
//	@Router		/api/v2/admin/otp/revoke [post].
func (h *AdminHandler) HandleRevokeOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RevokeOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"key": req.Key}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	revoked, err := h.Auth.RevokeOTP(r.Context(), req.Key)
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "OTP revoked", authsdk.RevokeOTPResponse{Revoked: revoked})
}
