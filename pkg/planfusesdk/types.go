package planfusesdk

import "time"

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the standard error envelope. It is used internally for
// parsing HTTP error responses; client code should work with APIError from
// errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Authentication Types
// ============================================================================

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /v1/auth/login. On full success the
// token fields are populated. When the account has an active second factor
// the service answers with MFARequired set and a ticket instead; no session
// exists yet.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`

	// MFARequired signals that a second factor is needed before a session
	// is issued
	MFARequired bool `json:"mfa_required"`

	// MFAToken is the short-lived ticket to pass to CompleteMFA
	MFAToken string `json:"mfa_token"`
}

// TokenResponse is returned by login, mfa completion, and refresh. The token
// is a bearer session token valid until ExpiresAt.
type TokenResponse struct {
	// Token is the signed session token used to authenticate API requests
	Token string `json:"token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is when the session (and token) expires
	ExpiresAt time.Time `json:"expires_at"`
}

// MFACompleteRequest is the body of POST /v1/auth/mfa.
type MFACompleteRequest struct {
	// MFAToken is the short-lived ticket from the login MFA challenge
	MFAToken string `json:"mfa_token"`

	// Code is the six-digit TOTP code
	Code string `json:"code"`
}

// ============================================================================
// User Types
// ============================================================================

// RegisterRequest is the body of POST /v1/users.
type RegisterRequest struct {
	// Username must be 1-64 characters without control characters
	Username string `json:"username"`

	// Password must be at least 8 characters
	Password string `json:"password"`
}

// UserResponse describes a user account.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInfoResponse is returned by GET /v1/userinfo for the authenticated
// user.
type UserInfoResponse struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	TOTPActive bool      `json:"totp_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChangePasswordRequest is the body of PUT /v1/users/{id}.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ============================================================================
// Plan Types
// ============================================================================

// PlanResponse describes a single plan.
type PlanResponse struct {
	Name         string    `json:"name"`
	LastModified time.Time `json:"last_modified"`
}

// PlansResponse is returned by GET /v1/plans.
type PlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// ============================================================================
// MFA Types
// ============================================================================

// TOTPEnrollResponse carries the material needed to provision an
// authenticator app. The secret is returned exactly once, here.
type TOTPEnrollResponse struct {
	// Secret is the base32 TOTP secret
	Secret string `json:"secret"`

	// URL is the otpauth:// provisioning URL for QR code generation
	URL string `json:"url"`

	// Issuer is the service name shown in the authenticator app
	Issuer string `json:"issuer"`

	// Account is the username shown in the authenticator app
	Account string `json:"account"`
}

// TOTPCodeRequest carries a TOTP code for activate and disable calls.
type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthChecks reports the state of the service's dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the /livez and /readyz endpoints.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is how long the service has been running
	Uptime string `json:"uptime"`

	// Version is the build version of the service
	Version string `json:"version"`

	// Checks is only present on /readyz responses
	Checks *HealthChecks `json:"checks,omitempty"`
}
