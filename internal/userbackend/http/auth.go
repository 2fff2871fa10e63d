package http

import (
	"net/http"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/freecontest/userbackend/internal/userbackend/session"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/httpx"
)

// AuthHandler serves /api/v2/auth.
type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *session.Store
	rs       responder
}

// HandleLoginStatus reports whether the request carries a valid session.
//
//	@Summary		Login status
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.LoginStatusResponse	"data of the envelope"
//	@Router			/api/v2/auth/login-status [get].
func (h *AuthHandler) HandleLoginStatus(w http.ResponseWriter, r *http.Request) {
	out := authsdk.LoginStatusResponse{}
	if rec := h.Sessions.Load(r); rec != nil {
		out.IsLoggedIn = true
		out.Username = &rec.Username
	}
	h.rs.ok(w, "Login status", out)
}

// HandleLogin signs the user in and sets the session cookie.
//
//	@Summary		Log in
//	@Description	auth_key is a username or an email address. Wrong credentials answer HTTP 200 with error 1007 and no cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"data of the envelope"
//	@Failure		400		{object}	authsdk.ErrorEnvelope	"Malformed body"
//	@Failure		429		{object}	authsdk.ErrorEnvelope	"Rate limited"
//	@Failure		502		{object}	authsdk.ErrorEnvelope	"Database gateway error"
//	@Router			/api/v2/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"auth_key": req.AuthKey, "password": req.Password}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	rec, err := h.Auth.Login(r.Context(), req.AuthKey, req.Password)
	if err != nil {
		if domain.KindOf(err) == domain.KindUnauthorized {
			h.rs.benign(w, r, err)
			return
		}
		h.rs.fail(w, r, err)
		return
	}

	if err := h.Sessions.Save(w, rec); err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "Logged in successfully", authsdk.LoginResponse{Username: rec.Username})
}

// HandleLogout clears the session. It always succeeds.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	authsdk.ErrorEnvelope	"error 0, data null"
//	@Router		/api/v2/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Save(w, nil); err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "Logout successfully", nil)
}

// HandleRequestSignup mails a signup code.
//
//	@Summary	Request a signup code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.RequestSignupRequest	true	"Candidate identity"
//	@Success	200		{object}	authsdk.OTPSentResponse			"data of the envelope"
//	@Failure	400		{object}	authsdk.ErrorEnvelope			"Invalid email or username"
//	@Failure	409		{object}	authsdk.ErrorEnvelope			"Username or email already existed"
//	@Failure	502		{object}	authsdk.ErrorEnvelope			"Collaborator error"
//	@Router		/api/v2/auth/request-signup [post].
func (h *AuthHandler) HandleRequestSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RequestSignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}

	err := h.Auth.RequestSignup(r.Context(), service.RequestSignupInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "OTP has been sent", authsdk.OTPSentResponse{Email: req.Email})
}

// HandleVerifyOTP exchanges a code for a proof token.
//
//	@Summary		Verify a code
//	@Description	A wrong code answers HTTP 200 with error 1005 and no token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.VerifyOTPRequest	true	"Identity and code"
//	@Success		200		{object}	authsdk.VerifyOTPResponse	"data of the envelope"
//	@Failure		400		{object}	authsdk.ErrorEnvelope		"Malformed body"
//	@Failure		429		{object}	authsdk.ErrorEnvelope		"Rate limited"
//	@Router			/api/v2/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"email": req.Email, "otp": req.OTP}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	token, err := h.Auth.VerifyOTP(r.Context(), req.Email, req.Username, req.OTP)
	if err != nil {
		if domain.KindOf(err) == domain.KindOtpIncorrect {
			h.rs.benign(w, r, err)
			return
		}
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "OTP is correct", authsdk.VerifyOTPResponse{Token: token})
}

// HandleSignup creates the account.
//
//	@Summary	Sign up
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.SignupRequest	true	"Account and proof token"
//	@Success	200		{object}	authsdk.SignupResponse	"data of the envelope"
//	@Failure	400		{object}	authsdk.ErrorEnvelope	"Invalid input or proof token"
//	@Failure	409		{object}	authsdk.ErrorEnvelope	"Username or email already existed"
//	@Failure	502		{object}	authsdk.ErrorEnvelope	"Database gateway error"
//	@Router		/api/v2/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"token": req.Token}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	err := h.Auth.Signup(r.Context(), service.SignupInput{
		Token:      req.Token,
		Username:   req.Username,
		FullName:   req.FullName,
		SchoolName: req.SchoolName,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "Signed up successfully", authsdk.SignupResponse{Username: req.Username, Email: req.Email})
}

// HandleRequestChangeEmail mails a code to the new address.
//
//	@Summary	Request an email change code
//	@Tags		Auth
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.RequestChangeEmailRequest	true	"New address"
//	@Success	200		{object}	authsdk.OTPSentResponse				"data of the envelope"
//	@Failure	401		{object}	authsdk.ErrorEnvelope				"Not logged in"
//	@Failure	502		{object}	authsdk.ErrorEnvelope				"Collaborator error"
//	@Router		/api/v2/auth/request-change-email [post].
func (h *AuthHandler) HandleRequestChangeEmail(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Sessions.LoadOrFail(r)
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}

	var req authsdk.RequestChangeEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}

	if err := h.Auth.RequestChangeEmail(r.Context(), rec, req.NewEmail); err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "OTP has been sent", authsdk.OTPSentResponse{Email: req.NewEmail})
}

// HandleChangeEmail moves the signed-in account to the new address.
//
//	@Summary	Change email
//	@Tags		Auth
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.ChangeEmailRequest	true	"New address and proof token"
//	@Success	200		{object}	authsdk.ChangeEmailResponse	"data of the envelope"
//	@Failure	400		{object}	authsdk.ErrorEnvelope		"Invalid email or proof token"
//	@Failure	401		{object}	authsdk.ErrorEnvelope		"Not logged in"
//	@Router		/api/v2/auth/change-email [post].
func (h *AuthHandler) HandleChangeEmail(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Sessions.LoadOrFail(r)
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}

	var req authsdk.ChangeEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"token": req.Token}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	if err := h.Auth.ChangeEmail(r.Context(), rec, req.NewEmail, req.Token); err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "Successfully changed email", authsdk.ChangeEmailResponse{NewEmail: req.NewEmail, Username: rec.Username})
}

// HandleRequestResetPassword mails a reset code to the owner of the address.
//
//	@Summary	Request a password reset code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.RequestResetPasswordRequest	true	"Account email"
//	@Success	200		{object}	authsdk.OTPSentResponse				"data of the envelope"
//	@Failure	404		{object}	authsdk.ErrorEnvelope				"No account with that email"
//	@Router		/api/v2/auth/request-reset-password [post].
func (h *AuthHandler) HandleRequestResetPassword(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RequestResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}

	if err := h.Auth.RequestResetPassword(r.Context(), req.Email); err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "OTP has been sent", authsdk.OTPSentResponse{Email: req.Email})
}

// HandleResetPassword sets a new password.
//
//	@Summary	Reset password
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.ResetPasswordRequest	true	"Email, new password and proof token"
//	@Success	200		{object}	authsdk.ResetPasswordResponse	"data of the envelope"
//	@Failure	400		{object}	authsdk.ErrorEnvelope			"Invalid input or proof token"
//	@Router		/api/v2/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.rs.fail(w, r, decodeFailed(err))
		return
	}
	if err := missing(map[string]string{"token": req.Token}); err != nil {
		h.rs.fail(w, r, err)
		return
	}

	username, err := h.Auth.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		h.rs.fail(w, r, err)
		return
	}
	h.rs.ok(w, "Successfully reset password", authsdk.ResetPasswordResponse{Email: req.Email, Username: username})
}
