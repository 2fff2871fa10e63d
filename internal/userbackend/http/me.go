package http

import (
	"net/http"

	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/freecontest/userbackend/internal/userbackend/session"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/httpx"
)

// MeHandler serves operations on the signed-in account.
type MeHandler struct {
	Auth     *service.AuthService
	Sessions *session.Store
	rs       responder
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	A wrong old password answers HTTP 200 with error 1004. A new password failing the policy answers 400.
//	@Tags			Me
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ChangePasswordRequest	true	"Old and new password"
//	@Success		200		{object}	authsdk.ErrorEnvelope			"error 0, data null"
//	@Failure		400		{object}	authsdk.ErrorEnvelope			"New password rejected"
//	@Failure		401		{object}	authsdk.ErrorEnvelope			"Not logged in"
//	@Router			/api/v2/me/change-password [post].
func (h *MeHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Sessions.LoadOrFail(r)
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"old_password": req.OldPassword, "new_password": req.NewPassword}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	err = h.Auth.ChangePassword(r.Context(), rec, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		h.rs.ok(w, "Successfully changed password", nil)
	case err == service.ErrOldPasswordIncorrect:
		h.rs.benign(w, r, err)
	default:
		h.rs.fail(w, r, err)
	}
}
