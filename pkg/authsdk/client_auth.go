package authsdk

import (
	"context"
	"net/http"
)

const (
	pathLoginStatus          = "/api/v2/auth/login-status"
	pathLogin                = "/api/v2/auth/login"
	pathLogout               = "/api/v2/auth/logout"
	pathRequestSignup        = "/api/v2/auth/request-signup"
	pathVerifyOTP            = "/api/v2/auth/verify-otp"
	pathSignup               = "/api/v2/auth/signup"
	pathRequestChangeEmail   = "/api/v2/auth/request-change-email"
	pathChangeEmail          = "/api/v2/auth/change-email"
	pathRequestResetPassword = "/api/v2/auth/request-reset-password"
	pathResetPassword        = "/api/v2/auth/reset-password"
	pathChangePassword       = "/api/v2/me/change-password"
)

func (c *SDKClient) LoginStatus(ctx context.Context) (*LoginStatusResponse, error) {
	var out LoginStatusResponse
	if err := c.call(ctx, http.MethodGet, pathLoginStatus, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in and stores the session cookie in the client's jar.
func (c *SDKClient) Login(ctx context.Context, authKey, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, pathLogin, LoginRequest{AuthKey: authKey, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, pathLogout, struct{}{}, nil)
}

func (c *SDKClient) RequestSignup(ctx context.Context, req RequestSignupRequest) (*OTPSentResponse, error) {
	var out OTPSentResponse
	if err := c.call(ctx, http.MethodPost, pathRequestSignup, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges a code for a proof token. A wrong code is an *APIError
// with CodeOtpIncorrect.
func (c *SDKClient) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	var out VerifyOTPResponse
	if err := c.call(ctx, http.MethodPost, pathVerifyOTP, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.call(ctx, http.MethodPost, pathSignup, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) RequestChangeEmail(ctx context.Context, newEmail string) (*OTPSentResponse, error) {
	var out OTPSentResponse
	if err := c.call(ctx, http.MethodPost, pathRequestChangeEmail, RequestChangeEmailRequest{NewEmail: newEmail}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) ChangeEmail(ctx context.Context, req ChangeEmailRequest) (*ChangeEmailResponse, error) {
	var out ChangeEmailResponse
	if err := c.call(ctx, http.MethodPost, pathChangeEmail, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) RequestResetPassword(ctx context.Context, email string) (*OTPSentResponse, error) {
	var out OTPSentResponse
	if err := c.call(ctx, http.MethodPost, pathRequestResetPassword, RequestResetPasswordRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	var out ResetPasswordResponse
	if err := c.call(ctx, http.MethodPost, pathResetPassword, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.call(ctx, http.MethodPost, pathChangePassword,
		ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}
