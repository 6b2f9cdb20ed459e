package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/idx"
	"github.com/planfuse/planfuse/pkg/jwtx"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// DefaultSessionTTL is the fixed lifetime of a session. Sessions do not
// slide; a refresh mints a whole new session.
const DefaultSessionTTL = 24 * time.Hour

var (
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenCreation  = errors.New("token creation failed")
)

// SessionService issues and validates bearer session tokens. Tokens are
// signed JWTs, but the session row in the store stays authoritative: a
// token only counts while its row exists and is unexpired, so logout and
// supersede revoke immediately without a blocklist.
type SessionService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	TTL      time.Duration // zero means DefaultSessionTTL
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Create mints a new session for the user and returns it with its signed
// token. Any prior session for the user is superseded: the old row is
// deleted and the new one inserted in a single transaction, so at most one
// session per user ever exists.
//
// The token is signed before anything is written; a signing failure leaves
// no orphan row behind.
func (s *SessionService) Create(ctx context.Context, userID string) (domain.Session, string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(session.ID, session.UserID, session.ExpiresAt, now))
	if err != nil {
		l.Error("failed to sign session token", "error", err, "user_id", userID)
		return domain.Session{}, "", ErrTokenCreation
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeleteSessionsByUser(ctx, userID); err != nil {
			return fmt.Errorf("supersede sessions: %w", err)
		}
		if err := tx.Sessions().InsertSession(ctx, session); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
	if err != nil {
		l.Error("failed to store session", "error", err, "user_id", userID)
		return domain.Session{}, "", err
	}

	l.Info("session created", "user_id", userID, "session_id", session.ID, "expires_at", session.ExpiresAt)
	return session, token, nil
}

// DecodeAndVerify validates a session token end to end: signature and
// time-window checks first, then the store. The claims alone are never
// enough; the row must still exist, match the token's session id, and be
// unexpired.
//
// Returns:
//   - ErrInvalidToken for malformed tokens, bad signatures, and tokens
//     minted for another purpose.
//   - ErrSessionExpired when the token or row is past expiry, when the row
//     is gone (logged out), or when a newer login superseded this session.
//
// A row found expired is deleted on the way out, so the store converges
// without waiting for the housekeeping sweep.
func (s *SessionService) DecodeAndVerify(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Session{}, ErrSessionExpired
		}
		return domain.Session{}, ErrInvalidToken
	}
	if err := claims.RequirePurpose(jwtx.PurposeSession); err != nil {
		return domain.Session{}, ErrInvalidToken
	}

	session, err := s.Store.Sessions().GetSessionByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrSessionExpired
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	// A different row id means a newer login superseded this token.
	if session.ID != claims.ID {
		return domain.Session{}, ErrSessionExpired
	}

	if session.Expired(time.Now().UTC()) {
		// Lazy purge. Best effort; the sweeper catches anything left.
		if err := s.Store.Sessions().DeleteSession(ctx, session.ID); err != nil {
			slogx.FromContext(ctx).Warn("failed to purge expired session", "error", err, "session_id", session.ID)
		}
		return domain.Session{}, ErrSessionExpired
	}

	return session, nil
}

// AuthenticateToken adapts DecodeAndVerify to the shape the HTTP
// authentication middleware consumes.
func (s *SessionService) AuthenticateToken(ctx context.Context, token string) (httpx.Principal, error) {
	session, err := s.DecodeAndVerify(ctx, token)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: session.UserID, SessionID: session.ID}, nil
}

// Logout deletes the session row. The token keeps verifying
// cryptographically but no longer resolves to a session, which is exactly
// the revocation the store-backed check buys us. Logging out an already
// absent session is fine.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.Store.Sessions().DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	slogx.FromContext(ctx).Info("session revoked", "session_id", sessionID)
	return nil
}
