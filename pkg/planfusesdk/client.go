package planfusesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the PlanFuse service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new PlanFuse service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with a username and password and returns an
// authenticated Session.
//
// When the account has an active second factor the returned error is a
// *MFARequiredError carrying a short-lived ticket; complete authentication
// with CompleteMFA.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	if loginResp.MFARequired {
		return nil, &MFARequiredError{MFAToken: loginResp.MFAToken}
	}

	return newSession(c, loginResp.Token, loginResp.ExpiresAt), nil
}

// CompleteMFA finishes a login that answered with an MFA challenge.
// The code is a six-digit TOTP code from the user's authenticator app.
func (c *SDKClient) CompleteMFA(
	ctx context.Context,
	challenge *MFARequiredError,
	code string,
) (*Session, error) {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, "/v1/auth/mfa", MFACompleteRequest{
		MFAToken: challenge.MFAToken,
		Code:     code,
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, tokenResp.Token, tokenResp.ExpiresAt), nil
}

// NewSessionFromToken creates an authenticated session from an existing
// session token. This is useful when a token from a previous login was
// persisted (e.g., in a cookie jar or config file). The server remains the
// authority on whether the token is still good.
func (c *SDKClient) NewSessionFromToken(token string, expiresAt time.Time) *Session {
	return &Session{
		client:    c,
		token:     token,
		expiresAt: expiresAt,
	}
}
