package planfuse_test

import (
	"testing"

	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit verifies the strict limiter trips on the login
// endpoint before the lockout threshold does its own damage. This test runs
// against production rate limits, unlike the rest of the suite.
func TestLoginRateLimit(t *testing.T) {
	baseURL := setupContainerWithDefaultRateLimits(t)
	client := planfusesdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "nina", defaultPassword)
	require.NoError(t, err)

	// The strict profile allows a burst of 5 per IP+username pair.
	var limited *planfusesdk.APIError
	for i := 0; i < 10; i++ {
		_, err := client.Login(t.Context(), "nina", "not-the-password")
		var apiErr *planfusesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == 429 {
			limited = apiErr
			break
		}
	}

	require.NotNil(t, limited, "expected a 429 within 10 rapid login attempts")
	require.Equal(t, "rate_limit_exceeded", limited.Code)
}

// TestRateLimitIsPerUsername verifies throttling one username does not
// block logins for a different account from the same client.
func TestRateLimitIsPerUsername(t *testing.T) {
	baseURL := setupContainerWithDefaultRateLimits(t)
	client := planfusesdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "oscar", defaultPassword)
	require.NoError(t, err)
	_, err = client.Register(t.Context(), "peggy", defaultPassword)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, _ = client.Login(t.Context(), "oscar", "not-the-password")
	}

	_, err = client.Login(t.Context(), "peggy", defaultPassword)
	require.NoError(t, err)
}
