package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/internal/userbackend/otp"
	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/freecontest/userbackend/internal/userbackend/session"
	"github.com/freecontest/userbackend/internal/userbackend/store"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/httpx"
	"github.com/freecontest/userbackend/pkg/slogx"

	_ "github.com/freecontest/userbackend/api/userbackend" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits are the profiles applied to route groups.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultRateLimits returns the process-wide profiles, which already include
// any RATELIMIT_* overrides.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	rs           responder

	store    store.Store // nil when the proof ledger is off
	otp      otp.Store
	sessions *session.Store

	Limits      RateLimits
	TrustProxy  bool // key IP limits on X-Forwarded-For / X-Real-IP
	AuthService *service.AuthService
	RoleGate    *service.RoleGate
}

func NewRouter(
	buildVersion string,
	st store.Store,
	otpStore otp.Store,
	sessions *session.Store,
	logger *slog.Logger,
	showDebug bool,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		rs:           responder{showDebug: showDebug},
		store:        st,
		otp:          otpStore,
		sessions:     sessions,
		Limits:       DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(http.HandlerFunc(r.panicked)),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", http.HandlerFunc(r.notFound))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Userbackend Authentication API
//	@version		2.0
//	@description	Login, logout and OTP-gated signup, email change and password reset.
//	@description
//	@description	Every /api route answers with {"error": int, "error_msg": string, "data": any}; error 0 means success.
//	@description	The signed-in user is kept in an HTTP-only session cookie.
//
//	@contact.name	Free Contest Team
//
//	@host			localhost:8013
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						userbackend.sid
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// profile sets the proxy setting and a RateLimited envelope as the 429 body.
func (r *Router) profile(cfg httpx.RateLimitConfig) httpx.RateLimitConfig {
	cfg.TrustProxy = r.TrustProxy
	cfg.OnReject = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.rs.fail(w, req, domain.New(domain.KindRateLimited, "Too many requests. Please try again later.", nil))
	})
	return cfg
}

// limit keys on the client IP.
func (r *Router) limit(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitByIP(r.profile(cfg))
}

// limitUser keys on the client IP and the signed-in username.
func (r *Router) limitUser(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitByIPAnd(r.profile(cfg), r.sessions.Username)
}

// limitTarget keys on a body field alone, whatever address the guesses
// come from.
func (r *Router) limitTarget(cfg httpx.RateLimitConfig, field string) httpx.Middleware {
	return httpx.RateLimitMiddleware(r.profile(cfg), httpx.JSONFieldKeyExtractor(field))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService, Sessions: r.sessions, rs: r.rs}

	r.Mux.Handle("GET /api/v2/auth/login-status",
		httpx.Chain(http.HandlerFunc(h.HandleLoginStatus), r.limit(r.Limits.Lenient)))
	r.Mux.Handle("POST /api/v2/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout), r.limit(r.Limits.Lenient)))

	// Credential and code guessing endpoints
	r.Mux.Handle("POST /api/v2/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			r.limit(r.Limits.Strict), r.limitTarget(r.Limits.Strict, "auth_key")))
	r.Mux.Handle("POST /api/v2/auth/verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			r.limit(r.Limits.Strict), r.limitTarget(r.Limits.Strict, "email")))

	// Each request sends an email
	r.Mux.Handle("POST /api/v2/auth/request-signup",
		httpx.Chain(http.HandlerFunc(h.HandleRequestSignup), r.limit(r.Limits.Moderate)))
	r.Mux.Handle("POST /api/v2/auth/request-change-email",
		httpx.Chain(http.HandlerFunc(h.HandleRequestChangeEmail), r.limitUser(r.Limits.Moderate)))
	r.Mux.Handle("POST /api/v2/auth/request-reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleRequestResetPassword), r.limit(r.Limits.Moderate)))

	r.Mux.Handle("POST /api/v2/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup), r.limit(r.Limits.Moderate)))
	r.Mux.Handle("POST /api/v2/auth/change-email",
		httpx.Chain(http.HandlerFunc(h.HandleChangeEmail), r.limitUser(r.Limits.Moderate)))
	r.Mux.Handle("POST /api/v2/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword), r.limit(r.Limits.Moderate)))
}

func (r *Router) registerMe() {
	h := &MeHandler{Auth: r.AuthService, Sessions: r.sessions, rs: r.rs}

	r.Mux.Handle("POST /api/v2/me/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword), r.limitUser(r.Limits.Moderate)))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Auth: r.AuthService, rs: r.rs}
	admin := RequireAdmin(r.RoleGate, r.sessions, r.rs)

	r.Mux.Handle("GET /api/v2/admin/otp/stats",
		httpx.Chain(http.HandlerFunc(h.HandleOTPStats), r.limit(r.Limits.Moderate), admin))
	r.Mux.Handle("POST /api/v2/admin/otp/revoke",
		httpx.Chain(http.HandlerFunc(h.HandleRevokeOTP), r.limit(r.Limits.Moderate), admin))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), r.limit(r.Limits.Public)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.otp), r.limit(r.Limits.Public)),
	)
}

// notFound answers every unmatched route.
func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	r.rs.fail(w, req, domain.New(domain.KindRouteNotFound, "Route not found", map[string]string{
		"method": req.Method,
		"url":    req.URL.RequestURI(),
	}))
}

// panicked runs after httpx.Recover has already logged and reported.
func (r *Router) panicked(w http.ResponseWriter, req *http.Request) {
	httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope[any]{
		Error:    authsdk.CodeUnknown,
		ErrorMsg: "Internal server error",
	})
}
