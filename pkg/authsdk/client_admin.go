package authsdk

import (
	"context"
	"net/http"
)

// OTPStats requires an admin session unless role verification is disabled
// on the server.
func (c *SDKClient) OTPStats(ctx context.Context) (*OTPStatsResponse, error) {
	var out OTPStatsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v2/admin/otp/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeOTP drops the live code for key.
func (c *SDKClient) RevokeOTP(ctx context.Context, key string) (*RevokeOTPResponse, error) {
	var out RevokeOTPResponse
	if err := c.call(ctx, http.MethodPost, "/api/v2/admin/otp/revoke", RevokeOTPRequest{Key: key}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
