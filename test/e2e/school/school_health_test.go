package school_test

import (
	"testing"

	"github.com/aussiebroadwan/autoescuela/pkg/schoolsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	client := schoolsdk.NewSDKClient(setupService(t))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies readiness reports the database and the
// optional integrations.
func TestReadyzEndpoint(t *testing.T) {
	client := schoolsdk.NewSDKClient(setupService(t))

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "disabled", health.Checks.Mailer)
	require.Equal(t, "disabled", health.Checks.Billing)
}
