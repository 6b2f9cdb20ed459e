package planfusesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/planfuse/planfuse/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAccountLocked      = "account_locked"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeSessionExpired     = "session_expired"
	ErrorCodeServerError        = "server_error"
	ErrorCodeUsernameTaken      = "username_taken"
	ErrorCodeInvalidUsername    = "invalid_username"
	ErrorCodeWeakPassword       = "weak_password"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidCode        = "invalid_code"
	ErrorCodeTOTPNotEnrolled    = "totp_not_enrolled"
	ErrorCodeTOTPAlreadyActive  = "totp_already_active"
	ErrorCodePlanExists         = "plan_exists"
	ErrorCodeInvalidPlanName    = "invalid_plan_name"
)

// ============================================================================
// APIError - wire-level error type
// ============================================================================

// APIError is the service's standard error response body. It implements the
// error interface and is used on both sides of the wire: HTTP handlers write
// it, and the SDK client returns it for non-2xx responses.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter, fails validation, or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned when the username/password pair (or
	// TOTP code) does not check out. Deliberately identical for unknown
	// usernames and wrong passwords.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrAccountLocked is returned while an account's lockout window is
	// running. The response carries a Retry-After header with the remaining
	// seconds.
	ErrAccountLocked = &APIError{
		StatusCode:  http.StatusLocked,
		Code:        ErrorCodeAccountLocked,
		Description: "account temporarily locked after repeated failures",
	}

	// ErrInvalidToken is returned when a presented token is malformed, has a
	// bad signature, or was minted for a different purpose.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the token is missing, invalid or of the wrong kind",
	}

	// ErrSessionExpired is returned when the session behind a token has
	// expired, was logged out, or was superseded by a newer login.
	ErrSessionExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeSessionExpired,
		Description: "the session has expired or was revoked",
	}

	// ErrServerError is returned for unexpected internal failures. Details
	// stay in the server logs.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrUsernameTaken is returned when registering an already-used username.
	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUsernameTaken,
		Description: "the username is already taken",
	}

	// ErrInvalidUsername is returned when a username fails validation.
	ErrInvalidUsername = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidUsername,
		Description: "usernames must be 1-64 characters without control characters",
	}

	// ErrWeakPassword is returned when a password fails the length policy.
	ErrWeakPassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWeakPassword,
		Description: "passwords must be at least 8 characters",
	}

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource was not found",
	}

	// ErrInvalidCode is returned when a TOTP code does not verify during
	// enrollment management.
	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCode,
		Description: "invalid TOTP code",
	}

	// ErrTOTPNotEnrolled is returned when managing a factor that was never
	// enrolled.
	ErrTOTPNotEnrolled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTOTPNotEnrolled,
		Description: "TOTP is not enrolled for this user",
	}

	// ErrTOTPAlreadyActive is returned when enrolling while a factor is
	// already active.
	ErrTOTPAlreadyActive = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTOTPAlreadyActive,
		Description: "TOTP is already active for this user",
	}

	// ErrPlanExists is returned when creating a plan whose name is already
	// used by the same owner.
	ErrPlanExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodePlanExists,
		Description: "a plan with this name already exists",
	}

	// ErrInvalidPlanName is returned when a plan name fails validation.
	ErrInvalidPlanName = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidPlanName,
		Description: "plan names must be 1-128 characters without control characters or slashes",
	}
)

// NewAPIError creates an APIError with the given status code, error code, and
// description, for cases the predefined errors do not cover.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// MFA Challenge
// ============================================================================

// MFARequiredError is returned by Login when the password checked out but
// the account has an active second factor. Authentication is not finished
// yet: pass the ticket to CompleteMFA together with a TOTP code within its
// five minute lifetime.
type MFARequiredError struct {
	// MFAToken is the short-lived ticket to present when completing login
	MFAToken string `json:"mfa_token"`
}

// Error implements the error interface.
func (e *MFARequiredError) Error() string {
	return "MFA required: complete login with CompleteMFA and a TOTP code"
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns an HTTP error response into a typed error using
// the standard error envelope. Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback for bodies that are not the standard envelope.
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
