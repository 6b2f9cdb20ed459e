package planfuse_test

import (
	"testing"

	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness probe answers on a fresh service.
func TestLivezEndpoint(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies readiness includes a healthy store check.
func TestReadyzEndpoint(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
