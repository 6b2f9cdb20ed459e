package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/planfuse/planfuse/pkg/slogx"
)

// Principal identifies the caller behind an authenticated request.
type Principal struct {
	UserID    string
	SessionID string
}

// SessionAuthenticator resolves a bearer token to a live session. A token is
// only accepted when the session that issued it still exists server-side, so
// logged-out sessions fail here even while their token signature checks out.
type SessionAuthenticator interface {
	AuthenticateToken(ctx context.Context, token string) (Principal, error)
}

// SessionCookieName is the cookie browsers receive at login. Requests may
// present the token either here or in the Authorization header.
const SessionCookieName = "token"

func AuthnMiddleware(a SessionAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerToken(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			principal, err := a.AuthenticateToken(ctx, raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("session token rejected", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = context.WithValue(ctx, CtxKeyUserID, principal.UserID)
			ctx = context.WithValue(ctx, CtxKeySessionID, principal.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the session token from a request. The Authorization
// header takes precedence over the session cookie.
func BearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// RFC 6750 challenge header plus the standard error envelope, so both
// browsers and SDK clients get a code they can act on.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
