package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/mailer"
	"github.com/freecontest/userbackend/internal/userbackend/otp"
	"github.com/freecontest/userbackend/internal/userbackend/proof"
	"github.com/freecontest/userbackend/pkg/cryptox"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendOff    = "off"
)

type Config struct {
	// Collaborators and secrets, all required
	DatabaseGatewayOrigin    string
	EmailServiceOrigin       string
	SenderEmail              string
	SessionSecret            string
	SessionSecretAlternative string
	JWTSecret                string
	JWTSecretAlternative     string // Optional: previous proof secret, verify only
	AdminUsernameList        string // ';'-delimited
	DisableRoleVerification  bool
	ShowDebug                bool

	OTPTTL        time.Duration // Optional: OTP lifetime (default: 10m)
	OTPCapacity   int           // Optional: live OTP entries before eviction (default: 10000)
	OTPSingleUse  bool          // Optional: delete the OTP on successful verification (default: false)
	OTPBackend    string        // Optional: memory, redis (default: memory)
	ProofTokenTTL time.Duration // Optional: proof token lifetime (default: 10m)
	ProofLedger   string        // Optional: sqlite, redis, off (default: sqlite)
	DatabaseFile  string        // Optional: path to SQLite ledger file (default: ./userbackend.db)
	RedisURL      string        // Optional: used by the redis OTP backend and ledger

	PasswordHashAlgorithm string // Optional: bcrypt, argon2id (default: bcrypt)
	Templates             mailer.Templates

	SentryDSN            string        // Optional: Sentry disabled when empty
	Env                  string        // Environment (development, production) (default: development)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8013)
	TrustProxy           bool          // Optional: rate limit on X-Forwarded-For / X-Real-IP (default: false)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Ledger purge interval (default: 1h)

	// problems found while reading variables, reported by Validate
	problems []error
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseGatewayOrigin:    os.Getenv("DATABASE_GATEWAY_ORIGIN"),
		EmailServiceOrigin:       os.Getenv("EMAIL_SERVICE_ORIGIN"),
		SenderEmail:              os.Getenv("SENDER_EMAIL"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		SessionSecretAlternative: os.Getenv("SESSION_SECRET_ALTERNATIVE"),
		JWTSecret:                os.Getenv("JWT_SECRET"),
		JWTSecretAlternative:     os.Getenv("JWT_SECRET_ALTERNATIVE"),
		AdminUsernameList:        os.Getenv("ADMIN_USERNAME_LIST"),

		OTPTTL:        getEnvDurationOrDefault("OTP_TTL", otp.DefaultTTL),
		OTPCapacity:   getEnvIntOrDefault("OTP_CAPACITY", otp.DefaultCapacity),
		OTPBackend:    getEnvOrDefault("OTP_BACKEND", BackendMemory),
		ProofTokenTTL: getEnvDurationOrDefault("PROOF_TOKEN_TTL", proof.DefaultTTL),
		ProofLedger:   getEnvOrDefault("PROOF_LEDGER", BackendSQLite),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "userbackend.db"),
		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),

		PasswordHashAlgorithm: getEnvOrDefault("PASSWORD_HASH_ALGORITHM", cryptox.AlgorithmBcrypt),
		Templates: mailer.Templates{
			Signup:        getEnvIntOrDefault("SIGNUP_EMAIL_TEMPLATE_ID", mailer.DefaultSignupTemplate),
			ChangeEmail:   getEnvIntOrDefault("CHANGE_EMAIL_EMAIL_TEMPLATE_ID", mailer.DefaultChangeEmailTemplate),
			ResetPassword: getEnvIntOrDefault("RESET_PASSWORD_EMAIL_TEMPLATE_ID", mailer.DefaultResetPasswordTemplate),
		},

		SentryDSN:            os.Getenv("SENTRY_DSN"),
		Env:                  getEnvOrDefault("ENV", "development"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8013),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	var err error
	if cfg.DisableRoleVerification, err = getEnvStrictBool("DISABLE_ROLE_VERIFICATION"); err != nil {
		cfg.problems = append(cfg.problems, err)
	}
	if cfg.ShowDebug, err = getEnvStrictBool("SHOW_DEBUG"); err != nil {
		cfg.problems = append(cfg.problems, err)
	}
	cfg.OTPSingleUse = os.Getenv("OTP_SINGLE_USE") == "true"
	cfg.TrustProxy = os.Getenv("TRUST_PROXY") == "true"

	return cfg
}

// Validate reports every missing or invalid variable at once.
func (c Config) Validate() error {
	errs := append([]error(nil), c.problems...)

	required := []struct {
		name, value string
	}{
		{"DATABASE_GATEWAY_ORIGIN", c.DatabaseGatewayOrigin},
		{"EMAIL_SERVICE_ORIGIN", c.EmailServiceOrigin},
		{"SENDER_EMAIL", c.SenderEmail},
		{"SESSION_SECRET", c.SessionSecret},
		{"SESSION_SECRET_ALTERNATIVE", c.SessionSecretAlternative},
		{"JWT_SECRET", c.JWTSecret},
		{"ADMIN_USERNAME_LIST", c.AdminUsernameList},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is empty", r.name))
		}
	}

	switch c.OTPBackend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("OTP_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.OTPBackend))
	}
	switch c.ProofLedger {
	case BackendSQLite, BackendRedis, BackendOff:
	default:
		errs = append(errs, fmt.Errorf("PROOF_LEDGER must be %q, %q or %q, got %q",
			BackendSQLite, BackendRedis, BackendOff, c.ProofLedger))
	}
	switch c.PasswordHashAlgorithm {
	case cryptox.AlgorithmBcrypt, cryptox.AlgorithmArgon2id:
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_ALGORITHM must be %q or %q, got %q",
			cryptox.AlgorithmBcrypt, cryptox.AlgorithmArgon2id, c.PasswordHashAlgorithm))
	}

	if c.OTPTTL <= 0 || c.ProofTokenTTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL and PROOF_TOKEN_TTL must be positive"))
	}
	if c.OTPCapacity <= 0 {
		errs = append(errs, errors.New("OTP_CAPACITY must be positive"))
	}

	return errors.Join(errs...)
}

// Production reports whether the service runs with ENV=production.
func (c Config) Production() bool {
	return c.Env == "production"
}

// UsesRedis reports whether any backend needs REDIS_URL.
func (c Config) UsesRedis() bool {
	return c.OTPBackend == BackendRedis || c.ProofLedger == BackendRedis
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvStrictBool accepts exactly "true" or "false".
func getEnvStrictBool(key string) (bool, error) {
	switch os.Getenv(key) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf(`%s is empty or invalid, it must be "true" or "false"`, key)
	}
}
