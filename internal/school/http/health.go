package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is serving, with uptime and build version
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	schoolsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, schoolsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports database connectivity and whether email and billing are configured.
//	@Description	Only the database decides readiness; the optional integrations report "disabled".
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	schoolsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	schoolsdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	mailerEnabled, billingEnabled bool,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &schoolsdk.HealthChecks{
			Database: "ok",
			Mailer:   enabled(mailerEnabled),
			Billing:  enabled(billingEnabled),
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, schoolsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

func enabled(ok bool) string {
	if ok {
		return "ok"
	}
	return "disabled"
}
