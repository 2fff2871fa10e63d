package authsdk

// String returns a pointer to s, for the nullable username fields.
func String(s string) *string { return &s }

// ============================================================================
// Session Types
// ============================================================================

type LoginStatusResponse struct {
	IsLoggedIn bool    `json:"is_logged_in" example:"true"`
	Username   *string `json:"username" example:"alice"`
}

type LoginRequest struct {
	// AuthKey is a username, or an email address of an existing account.
	AuthKey  string `json:"auth_key" example:"alice"`
	Password string `json:"password" example:"Secret123"`
}

type LoginResponse struct {
	Username string `json:"username" example:"alice"`
}

// ============================================================================
// OTP Types
// ============================================================================

type RequestSignupRequest struct {
	Email    string `json:"email" example:"a@example.com"`
	Username string `json:"username" example:"alice"`
	FullName string `json:"full_name" example:"Alice Nguyen"`
}

// OTPSentResponse names the address the code was mailed to.
type OTPSentResponse struct {
	Email string `json:"email" example:"a@example.com"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" example:"a@example.com"`
	// Username is null for password reset.
	Username *string `json:"username" example:"alice"`
	OTP      string  `json:"otp" example:"042917"`
}

type VerifyOTPResponse struct {
	// Token is the proof token to submit with the follow-up action.
	Token string `json:"token"`
}

// ============================================================================
// Account Types
// ============================================================================

type SignupRequest struct {
	Token      string `json:"token"`
	Username   string `json:"username" example:"alice"`
	FullName   string `json:"full_name" example:"Alice Nguyen"`
	SchoolName string `json:"school_name" example:"High School for the Gifted"`
	Email      string `json:"email" example:"a@example.com"`
	Password   string `json:"password" example:"Secret123"`
}

type SignupResponse struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"a@example.com"`
}

type RequestChangeEmailRequest struct {
	NewEmail string `json:"new_email" example:"new@example.com"`
}

type ChangeEmailRequest struct {
	Token    string `json:"token"`
	NewEmail string `json:"new_email" example:"new@example.com"`
}

type ChangeEmailResponse struct {
	NewEmail string `json:"new_email" example:"new@example.com"`
	Username string `json:"username" example:"alice"`
}

type RequestResetPasswordRequest struct {
	Email string `json:"email" example:"a@example.com"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	Email       string `json:"email" example:"a@example.com"`
	NewPassword string `json:"new_password" example:"Newpass123"`
}

type ResetPasswordResponse struct {
	Email    string `json:"email" example:"a@example.com"`
	Username string `json:"username" example:"alice"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" example:"Secret123"`
	NewPassword string `json:"new_password" example:"Newpass123"`
}

// ============================================================================
// Admin Types
// ============================================================================

type OTPStatsResponse struct {
	Backend  string `json:"backend" example:"memory"`
	Entries  int    `json:"entries" example:"12"`
	Capacity int    `json:"capacity" example:"10000"`
}

type RevokeOTPRequest struct {
	Key string `json:"key" example:"a@example.com"`
}

type RevokeOTPResponse struct {
	Revoked bool `json:"revoked" example:"true"`
}

// ============================================================================
// Error Types
// ============================================================================

// RouteNotFoundData is the data of a RouteNotFound envelope.
type RouteNotFoundData struct {
	Method string `json:"method" example:"GET"`
	URL    string `json:"url" example:"/api/v2/nope"`
}

// ErrorEnvelope documents the failure shape for the API docs.
type ErrorEnvelope struct {
	Error    int    `json:"error" example:"1001"`
	ErrorMsg string `json:"error_msg" example:"Invalid request body"`
	Data     any    `json:"data"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of the backends the service needs.
type HealthChecks struct {
	// Ledger is the proof-ledger store, or "disabled".
	Ledger string `json:"ledger"`

	// OTP is the OTP store backend.
	OTP string `json:"otp"`
}
