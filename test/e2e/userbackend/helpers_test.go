//go:build integration

package userbackend_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/app"
	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/internal/userbackend/gateway/gatewaytest"
	"github.com/freecontest/userbackend/internal/userbackend/mailer/mailertest"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

/*
 * End-to-end tests run several userbackend instances in-process against one
 * real Redis, the way a multi-instance deployment shares OTP and ledger state.
 * The database gateway and email service are in-process fakes.
 */

const (
	adminUsername = "admin"
	adminEmail    = "admin@freecontest.net"
	adminPassword = "Admin123"
)

// setupRedisContainer starts Redis and returns its URL.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, mappedPort.Port())
}

// cluster is a set of instances sharing Redis and collaborators.
type cluster struct {
	redisURL string
	gw       *gatewaytest.Gateway
	box      *mailertest.Mailbox
}

func newCluster(t *testing.T) *cluster {
	t.Helper()
	return &cluster{
		redisURL: setupRedisContainer(t),
		gw:       gatewaytest.New(t),
		box:      mailertest.New(t),
	}
}

// instance starts one userbackend and returns a client for it.
func (c *cluster) instance(t *testing.T) *authsdk.SDKClient {
	t.Helper()

	t.Setenv("DATABASE_GATEWAY_ORIGIN", c.gw.URL)
	t.Setenv("EMAIL_SERVICE_ORIGIN", c.box.URL)
	t.Setenv("SENDER_EMAIL", "noreply@freecontest.net")
	t.Setenv("SESSION_SECRET", "e2e-session-secret")
	t.Setenv("SESSION_SECRET_ALTERNATIVE", "e2e-session-secret-old")
	t.Setenv("JWT_SECRET", "e2e-jwt-secret")
	t.Setenv("ADMIN_USERNAME_LIST", adminUsername)
	t.Setenv("DISABLE_ROLE_VERIFICATION", "false")
	t.Setenv("SHOW_DEBUG", "false")
	t.Setenv("OTP_BACKEND", "redis")
	t.Setenv("PROOF_LEDGER", "redis")
	t.Setenv("REDIS_URL", c.redisURL)
	t.Setenv("LOG_LEVEL", "warn")

	application, err := app.New(app.LoadConfig())
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Shutdown()
	})

	return authsdk.NewSDKClient(srv.URL)
}

// seed stores a user with a real password hash in the fake gateway.
func (c *cluster) seed(t *testing.T, username, email, password string) {
	t.Helper()
	hash, err := cryptox.Hasher{BcryptCost: bcrypt.MinCost}.HashPassword(password)
	require.NoError(t, err)
	c.gw.Seed(domain.User{Username: username, Email: email, FullName: username, Password: hash})
}
