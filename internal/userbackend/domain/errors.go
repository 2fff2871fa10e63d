package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidationFailed
	KindInvalidEmail
	KindInvalidUsername
	KindInvalidPassword
	KindOtpIncorrect
	KindProofInvalid
	KindUnauthorized
	KindForbidden
	KindUserNotFound
	KindUsernameExisted
	KindEmailExisted
	KindUpstream
	KindEmailService
	KindRouteNotFound
	KindRateLimited
)

// Kinds lists every kind, in declaration order.
var Kinds = []Kind{
	KindUnknown,
	KindValidationFailed,
	KindInvalidEmail,
	KindInvalidUsername,
	KindInvalidPassword,
	KindOtpIncorrect,
	KindProofInvalid,
	KindUnauthorized,
	KindForbidden,
	KindUserNotFound,
	KindUsernameExisted,
	KindEmailExisted,
	KindUpstream,
	KindEmailService,
	KindRouteNotFound,
	KindRateLimited,
}

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindValidationFailed: "validation_failed",
	KindInvalidEmail:     "invalid_email",
	KindInvalidUsername:  "invalid_username",
	KindInvalidPassword:  "invalid_password",
	KindOtpIncorrect:     "otp_incorrect",
	KindProofInvalid:     "proof_invalid",
	KindUnauthorized:     "unauthorized",
	KindForbidden:        "forbidden",
	KindUserNotFound:     "user_not_found",
	KindUsernameExisted:  "username_existed",
	KindEmailExisted:     "email_existed",
	KindUpstream:         "upstream_error",
	KindEmailService:     "email_service_error",
	KindRouteNotFound:    "route_not_found",
	KindRateLimited:      "rate_limited",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Message is safe to show to the caller;
// Data is extra detail that may be redacted for sensitive kinds; Err is the
// underlying cause and is never shown.
type Error struct {
	Kind    Kind
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err,
// domain.ErrProofInvalid) works regardless of message or data.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidationFailed = &Error{Kind: KindValidationFailed, Message: "Invalid request body"}
	ErrInvalidEmail     = &Error{Kind: KindInvalidEmail, Message: "Invalid email"}
	ErrInvalidUsername  = &Error{Kind: KindInvalidUsername, Message: "Invalid username"}
	ErrInvalidPassword  = &Error{Kind: KindInvalidPassword, Message: "Invalid password"}
	ErrOtpIncorrect     = &Error{Kind: KindOtpIncorrect, Message: "OTP is incorrect"}
	ErrProofInvalid     = &Error{Kind: KindProofInvalid, Message: "Invalid token"}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "Role must be admin"}
	ErrUserNotFound     = &Error{Kind: KindUserNotFound, Message: "User not found"}
	ErrUsernameExisted  = &Error{Kind: KindUsernameExisted, Message: "Username already existed"}
	ErrEmailExisted     = &Error{Kind: KindEmailExisted, Message: "Email already existed"}
	ErrUpstream         = &Error{Kind: KindUpstream, Message: "Database gateway error"}
	ErrEmailService     = &Error{Kind: KindEmailService, Message: "Email service error"}
)

// New builds an Error of the given kind.
func New(kind Kind, message string, data any) *Error {
	return &Error{Kind: kind, Message: message, Data: data}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error, data any) *Error {
	return &Error{Kind: kind, Message: message, Data: data, Err: err}
}

// With returns a copy of a sentinel carrying data.
func (e *Error) With(data any) *Error {
	c := *e
	c.Data = data
	return &c
}

// KindOf reports the kind of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
