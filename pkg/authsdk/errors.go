package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope error codes.
const (
	CodeOK               = 0
	CodeUnknown          = 1000
	CodeValidationFailed = 1001
	CodeInvalidEmail     = 1002
	CodeInvalidUsername  = 1003
	CodeInvalidPassword  = 1004
	CodeOtpIncorrect     = 1005
	CodeProofInvalid     = 1006
	CodeUnauthorized     = 1007
	CodeForbidden        = 1008
	CodeUserNotFound     = 1009
	CodeUsernameExisted  = 1010
	CodeEmailExisted     = 1011
	CodeUpstream         = 1012
	CodeEmailService     = 1013
	CodeRouteNotFound    = 1014
	CodeRateLimited      = 1015
)

// APIError is a non-zero envelope. Some failures, such as a wrong password
// on login, arrive with HTTP 200.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Data       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("authsdk: error %d (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
