package http

import (
	"net/http"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/otp"
	"github.com/freecontest/userbackend/internal/userbackend/store"
	"github.com/freecontest/userbackend/pkg/authsdk"
	"github.com/freecontest/userbackend/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe pinging the proof ledger and the OTP backend
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	otpStore otp.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Ledger: "ok",
			OTP:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// A nil store means PROOF_LEDGER=off
		if st == nil {
			checks.Ledger = "disabled"
		} else if err := st.Ping(r.Context()); err != nil {
			checks.Ledger = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := otpStore.Ping(r.Context()); err != nil {
			checks.OTP = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
