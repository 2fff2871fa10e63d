//go:build integration

package userbackend_test

import (
	"context"
	"testing"

	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestSignupAcrossInstances verifies a code on a different instance than the
// one that issued it, and that a proof token is spent cluster-wide.
func TestSignupAcrossInstances(t *testing.T) {
	c := newCluster(t)
	a := c.instance(t)
	b := c.instance(t)
	ctx := context.Background()

	_, err := a.RequestSignup(ctx, authsdk.RequestSignupRequest{Email: "e2e@x.com", Username: "e2euser", FullName: "E2E"})
	require.NoError(t, err)

	verified, err := b.VerifyOTP(ctx, authsdk.VerifyOTPRequest{
		Email:    "e2e@x.com",
		Username: authsdk.String("e2euser"),
		OTP:      c.box.LastOTP("e2e@x.com"),
	})
	require.NoError(t, err)

	signup := authsdk.SignupRequest{
		Token:    verified.Token,
		Username: "e2euser",
		FullName: "E2E",
		Email:    "e2e@x.com",
		Password: "Secret123",
	}
	_, err = a.Signup(ctx, signup)
	require.NoError(t, err)
	require.Equal(t, 1, c.gw.Calls("/db/v2/users/create"))

	// Sessions are portable between instances.
	_, err = b.Login(ctx, "e2e@x.com", "Secret123")
	require.NoError(t, err)
	status, err := b.LoginStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.IsLoggedIn)
}

// TestResetPasswordReplay spends one proof token on two instances.
func TestResetPasswordReplay(t *testing.T) {
	c := newCluster(t)
	a := c.instance(t)
	b := c.instance(t)
	ctx := context.Background()

	c.seed(t, "victim", "victim@x.com", "Forgotten123")

	_, err := a.RequestResetPassword(ctx, "victim@x.com")
	require.NoError(t, err)

	verified, err := a.VerifyOTP(ctx, authsdk.VerifyOTPRequest{Email: "victim@x.com", OTP: c.box.LastOTP("victim@x.com")})
	require.NoError(t, err)

	req := authsdk.ResetPasswordRequest{Token: verified.Token, Email: "victim@x.com", NewPassword: "Newpass123"}
	_, err = a.ResetPassword(ctx, req)
	require.NoError(t, err)

	req.NewPassword = "Attacker123"
	_, err = b.ResetPassword(ctx, req)
	require.True(t, authsdk.IsCode(err, authsdk.CodeProofInvalid), "replay on another instance: %v", err)

	_, err = b.Login(ctx, "victim", "Newpass123")
	require.NoError(t, err)
}

func TestAdminOverSharedRedis(t *testing.T) {
	c := newCluster(t)
	a := c.instance(t)
	ctx := context.Background()

	_, err := a.OTPStats(ctx)
	require.True(t, authsdk.IsCode(err, authsdk.CodeUnauthorized))

	c.seed(t, adminUsername, adminEmail, adminPassword)
	_, err = a.Login(ctx, adminUsername, adminPassword)
	require.NoError(t, err)

	_, err = a.RequestSignup(ctx, authsdk.RequestSignupRequest{Email: "n@x.com", Username: "newbie", FullName: "N"})
	require.NoError(t, err)

	stats, err := a.OTPStats(ctx)
	require.NoError(t, err)
	require.Equal(t, "redis", stats.Backend)
	require.Equal(t, 1, stats.Entries)

	revoked, err := a.RevokeOTP(ctx, "n@x.com")
	require.NoError(t, err)
	require.True(t, revoked.Revoked)

	ready, err := a.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, &authsdk.HealthChecks{Ledger: "ok", OTP: "ok"}, ready.Checks)
}
