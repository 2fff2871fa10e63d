package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/gateway"
	httpapi "github.com/freecontest/userbackend/internal/userbackend/http"
	"github.com/freecontest/userbackend/internal/userbackend/mailer"
	"github.com/freecontest/userbackend/internal/userbackend/otp"
	"github.com/freecontest/userbackend/internal/userbackend/proof"
	"github.com/freecontest/userbackend/internal/userbackend/service"
	"github.com/freecontest/userbackend/internal/userbackend/session"
	"github.com/freecontest/userbackend/internal/userbackend/store"
	redisstore "github.com/freecontest/userbackend/internal/userbackend/store/drivers/redis"
	"github.com/freecontest/userbackend/internal/userbackend/store/drivers/sqlite"
	"github.com/freecontest/userbackend/pkg/cryptox"
	"github.com/freecontest/userbackend/pkg/jwtx"
	"github.com/freecontest/userbackend/pkg/slogx"
	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v2.0.0"
)

// Application encapsulates the userbackend service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	redis    *redis.Client // nil unless a backend uses Redis
	db       store.Store   // nil when PROOF_LEDGER=off
	otpStore otp.Store
	proofs   *proof.Issuer
	sessions *session.Store

	// Services
	authService         *service.AuthService
	roleGate            *service.RoleGate
	housekeepingService *service.HousekeepingService // nil unless the ledger is sqlite

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "userbackend",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initSentry(); err != nil {
		return nil, err
	}
	if err := app.initRedis(); err != nil {
		return nil, err
	}
	if err := app.initLedger(); err != nil {
		app.closeBackends()
		return nil, err
	}
	app.initOTP()
	if err := app.initKeys(); err != nil {
		app.closeBackends()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		app.closeBackends()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("userbackend starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"otp_backend", app.cfg.OTPBackend,
		"proof_ledger", app.cfg.ProofLedger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down userbackend...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	err := app.closeBackends()
	sentry.Flush(2 * time.Second)

	app.logger.Info("userbackend stopped")
	return err
}

// closeBackends closes the ledger and the Redis client. The redis ledger
// owns the shared client, so it is closed only once.
func (app *Application) closeBackends() error {
	var errs []error
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing proof ledger", "error", err)
			errs = append(errs, err)
		}
	}
	if app.redis != nil && app.cfg.ProofLedger != BackendRedis {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (app *Application) initSentry() error {
	if app.cfg.SentryDSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              app.cfg.SentryDSN,
		Environment:      app.cfg.Env,
		Release:          "userbackend@" + BuildVersion,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	app.logger.Info("sentry error reporting enabled")
	return nil
}

// initRedis connects to Redis when a backend needs it.
func (app *Application) initRedis() error {
	if !app.cfg.UsesRedis() {
		return nil
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	app.redis = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.redis.Ping(ctx).Err(); err != nil {
		_ = app.redis.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.logger.Info("redis connected", "addr", opts.Addr, "db", opts.DB)
	return nil
}

// initLedger opens the proof ledger and applies migrations.
func (app *Application) initLedger() error {
	switch app.cfg.ProofLedger {
	case BackendOff:
		app.logger.Warn("proof ledger disabled, proof tokens can be replayed until they expire")
		return nil
	case BackendRedis:
		app.db = redisstore.NewStore(app.redis)
	default:
		host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(host)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	}

	if err := app.db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("proof ledger ready", "backend", app.cfg.ProofLedger)
	return nil
}

func (app *Application) initOTP() {
	cfg := otp.Config{
		TTL:       app.cfg.OTPTTL,
		Capacity:  app.cfg.OTPCapacity,
		SingleUse: app.cfg.OTPSingleUse,
	}
	if app.cfg.OTPBackend == BackendRedis {
		app.otpStore = otp.NewRedisStore(app.redis, cfg)
		return
	}
	app.otpStore = otp.NewMemoryStore(cfg)
}

// initKeys builds the proof and session key rings. The first secret signs,
// the rest only verify.
func (app *Application) initKeys() error {
	proofRing, err := jwtx.NewKeyRing([]string{app.cfg.JWTSecret, app.cfg.JWTSecretAlternative})
	if err != nil {
		return fmt.Errorf("failed to initialize proof keys: %w", err)
	}
	app.proofs = proof.NewIssuer(proofRing, app.cfg.ProofTokenTTL)

	sessionRing, err := jwtx.NewKeyRing([]string{app.cfg.SessionSecret, app.cfg.SessionSecretAlternative})
	if err != nil {
		return fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.sessions = session.NewStore(sessionRing, session.Config{Secure: app.cfg.Production()})
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	creds, err := service.NewCredentials(cryptox.Hasher{Algorithm: app.cfg.PasswordHashAlgorithm})
	if err != nil {
		return fmt.Errorf("failed to initialize credentials: %w", err)
	}

	app.authService = &service.AuthService{
		Users:       gateway.NewClient(app.cfg.DatabaseGatewayOrigin, 0),
		Mailer:      mailer.NewClient(app.cfg.EmailServiceOrigin, app.cfg.SenderEmail, app.cfg.Templates, 0),
		OTP:         app.otpStore,
		Proofs:      app.proofs,
		Credentials: creds,
	}
	if app.db != nil {
		app.authService.Ledger = app.db.UsedProofs()
	}

	app.roleGate = service.NewRoleGate(
		service.ParseAdminList(app.cfg.AdminUsernameList),
		app.cfg.DisableRoleVerification,
	)
	if app.roleGate.Disabled() {
		app.logger.Warn("role verification disabled, admin routes are open")
	}

	// Redis keys expire on their own
	if app.db != nil && app.cfg.ProofLedger == BackendSQLite {
		app.housekeepingService = service.NewHousekeepingService(
			app.db,
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.otpStore,
		app.sessions,
		app.logger,
		app.cfg.ShowDebug,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.RoleGate = app.roleGate
	router.TrustProxy = app.cfg.TrustProxy
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
