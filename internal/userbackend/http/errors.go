package http

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/httpx"
	"github.com/freecontest/userbackend/pkg/slogx"
	"github.com/getsentry/sentry-go"
)

// errorClass is how a kind is presented on the wire. Sensitive kinds have
// their data hidden unless debug output is on, and are sent to Sentry.
type errorClass struct {
	Status    int
	Code      int
	Sensitive bool
}

// errorTable must hold every domain.Kind.
var errorTable = map[domain.Kind]errorClass{
	domain.KindUnknown:          {http.StatusInternalServerError, authsdk.CodeUnknown, true},
	domain.KindValidationFailed: {http.StatusBadRequest, authsdk.CodeValidationFailed, false},
	domain.KindInvalidEmail:     {http.StatusBadRequest, authsdk.CodeInvalidEmail, false},
	domain.KindInvalidUsername:  {http.StatusBadRequest, authsdk.CodeInvalidUsername, false},
	domain.KindInvalidPassword:  {http.StatusBadRequest, authsdk.CodeInvalidPassword, false},
	domain.KindOtpIncorrect:     {http.StatusOK, authsdk.CodeOtpIncorrect, false},
	domain.KindProofInvalid:     {http.StatusBadRequest, authsdk.CodeProofInvalid, false},
	domain.KindUnauthorized:     {http.StatusUnauthorized, authsdk.CodeUnauthorized, false},
	domain.KindForbidden:        {http.StatusForbidden, authsdk.CodeForbidden, false},
	domain.KindUserNotFound:     {http.StatusNotFound, authsdk.CodeUserNotFound, false},
	domain.KindUsernameExisted:  {http.StatusConflict, authsdk.CodeUsernameExisted, false},
	domain.KindEmailExisted:     {http.StatusConflict, authsdk.CodeEmailExisted, false},
	domain.KindUpstream:         {http.StatusBadGateway, authsdk.CodeUpstream, true},
	domain.KindEmailService:     {http.StatusBadGateway, authsdk.CodeEmailService, true},
	domain.KindRouteNotFound:    {http.StatusNotFound, authsdk.CodeRouteNotFound, false},
	domain.KindRateLimited:      {http.StatusTooManyRequests, authsdk.CodeRateLimited, false},
}

func classFor(kind domain.Kind) errorClass {
	if s, ok := errorTable[kind]; ok {
		return s
	}
	return errorTable[domain.KindUnknown]
}

// responder writes envelopes.
type responder struct {
	showDebug bool
}

func (rs responder) ok(w http.ResponseWriter, msg string, data any) {
	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{Error: authsdk.CodeOK, ErrorMsg: msg, Data: data})
}

// benign writes a failure as HTTP 200 for outcomes the client is expected to
// handle, such as a wrong password or a wrong code.
func (rs responder) benign(w http.ResponseWriter, r *http.Request, err error) {
	rs.write(w, r, err, http.StatusOK)
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	rs.write(w, r, err, 0)
}

func (rs responder) write(w http.ResponseWriter, r *http.Request, err error, status int) {
	log := slogx.FromContext(r.Context())

	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Wrap(domain.KindUnknown, "Internal server error", err, nil)
	}
	class := classFor(de.Kind)
	if status == 0 {
		status = class.Status
	}

	data := de.Data
	if class.Sensitive {
		log.Error("request_failed",
			slog.String("kind", de.Kind.String()),
			slog.String("error", err.Error()),
			slog.Any("data", de.Data),
		)
		report(r, de, err)
		if !rs.showDebug {
			data = nil
		}
	} else {
		log.Warn("request_rejected",
			slog.String("kind", de.Kind.String()),
			slog.String("message", de.Message),
		)
	}

	httpx.WriteJSON(w, status, httpx.Envelope[any]{Error: class.Code, ErrorMsg: de.Message, Data: data})
}

func report(r *http.Request, de *domain.Error, err error) {
	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", de.Kind.String())
		scope.SetTag("method", r.Method)
		scope.SetTag("path", r.URL.Path)
		hub.CaptureException(err)
	})
}

// decodeFailed is the error for an unreadable request body.
func decodeFailed(err error) error {
	return domain.Wrap(domain.KindValidationFailed, domain.ErrValidationFailed.Message, err,
		map[string]string{"reason": err.Error()})
}

// missing fails validation when any named field is empty.
func missing(fields map[string]string) error {
	var names []string
	for name, v := range fields {
		if v == "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	slices.Sort(names)
	return domain.ErrValidationFailed.With(map[string]any{"missing": names})
}
