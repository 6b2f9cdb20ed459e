package planfusesdk

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Session represents an authenticated session holding a bearer session
// token. Session tokens live for 24 hours and are not refreshed
// automatically; call Refresh to trade the current token for a fresh one
// before it runs out.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	uid       string // lazily resolved from userinfo
}

// newSession creates a new authenticated session from a login or mfa
// completion response.
func newSession(client *SDKClient, token string, expiresAt time.Time) *Session {
	return &Session{
		client:    client,
		token:     token,
		expiresAt: expiresAt,
	}
}

// Token returns the current session token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns when the current session token expires.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Expired reports whether the session token's expiry has passed. The server
// is the final authority; a logout elsewhere invalidates the token early.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !time.Now().Before(s.expiresAt)
}

// Refresh trades the current session token for a fresh 24 hour one. The
// old token stops verifying as soon as the new session is issued. The
// session handle is updated in place.
func (s *Session) Refresh(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/refresh", nil, nil)
	if err != nil {
		return err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = tokenResp.Token
	s.expiresAt = tokenResp.ExpiresAt
	s.mu.Unlock()

	return nil
}

// Logout revokes the session server-side. The token stops verifying
// immediately; the handle should be discarded afterwards.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// GetUserInfo retrieves user information for the authenticated session.
func (s *Session) GetUserInfo(ctx context.Context) (*UserInfoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/userinfo", nil, nil)
	if err != nil {
		return nil, err
	}

	var userInfo UserInfoResponse
	if err := decodeJSON(resp, &userInfo, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.uid = userInfo.UserID
	s.mu.Unlock()

	return &userInfo, nil
}

// ChangePassword changes the authenticated user's password. The current
// password must be presented again even though the session is already
// authenticated.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}

	path := "/v1/users/" + url.PathEscape(userID)
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPut, path, ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// userID returns the authenticated user's id, resolving it through
// userinfo on first use.
func (s *Session) userID(ctx context.Context) (string, error) {
	s.mu.RLock()
	uid := s.uid
	s.mu.RUnlock()

	if uid != "" {
		return uid, nil
	}

	userInfo, err := s.GetUserInfo(ctx)
	if err != nil {
		return "", err
	}

	return userInfo.UserID, nil
}
