package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/lockout"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/pkg/cryptox"
	"github.com/planfuse/planfuse/pkg/jwtx"
	"github.com/planfuse/planfuse/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

var (
	// ErrWrongCredentials covers unknown usernames, wrong passwords and
	// wrong TOTP codes alike, so responses never reveal which part failed.
	ErrWrongCredentials = errors.New("wrong credentials")

	// ErrLocked is returned while an account's lock window is running.
	// Compare with errors.Is; errors.As against *LockedError yields the
	// expiry for a Retry-After header.
	ErrLocked = errors.New("account locked")
)

// LockedError carries the lock expiry alongside the ErrLocked sentinel.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.Until.UTC().Format(time.RFC3339))
}

func (e *LockedError) Unwrap() error { return ErrLocked }

// AuthResult is the outcome of a successful credential check. For accounts
// without an active second factor it carries the freshly minted session and
// its token. For TOTP-active accounts it instead carries a short-lived
// ticket; the session is only minted once CompleteMFA accepts a code.
type AuthResult struct {
	Session *domain.Session
	Token   string

	// MFAToken is set instead of Session/Token when a second factor is
	// still required.
	MFAToken string
}

// MFARequired reports whether the caller still owes a second factor.
func (r *AuthResult) MFARequired() bool { return r.MFAToken != "" }

// AuthService runs the password login flow: resolve the account, enforce
// the lockout gate, check credentials, then hand off to the session issuer.
// Every failed attempt feeds the lockout policy through the store's atomic
// counter, TOTP failures included.
type AuthService struct {
	Store    store.Store
	Hasher   cryptox.PasswordHasher
	Sealer   *cryptox.Sealer
	Sessions *SessionService
	Policy   lockout.Policy

	// Signer and Verifier mint and redeem MFA tickets. They share the
	// session secret; the purpose claim keeps the two token kinds apart.
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	MFATicketTTL time.Duration // zero means jwtx.DefaultMFATicketTTL
}

// Authenticate checks a username/password pair and, when it holds, issues a
// session. The flow per attempt:
//
//  1. Resolve the account. Unknown usernames fail exactly like wrong
//     passwords.
//  2. Lock gate, before the password is even looked at. A running lock
//     window rejects the attempt without touching the counter; an expired
//     one is lifted here (counter reset included) and the attempt proceeds.
//  3. Password check. A mismatch increments the attempt counter at the
//     store row; reaching the threshold arms a lock of
//     min(base*factor, cap) seconds. The arming attempt itself still
//     reports ErrWrongCredentials.
//  4. Success resets the counter and mints a session. Accounts with an
//     active TOTP factor get a short-lived mfa ticket instead; see
//     CompleteMFA.
//
// Returns ErrWrongCredentials, ErrLocked (as *LockedError),
// ErrTokenCreation, or a wrapped store error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := s.admit(ctx, &user, now); err != nil {
		return nil, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return nil, s.fail(ctx, &user, now)
		}
		l.Error("password verification failed", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if user.TOTPActive {
		ttl := s.MFATicketTTL
		if ttl <= 0 {
			ttl = jwtx.DefaultMFATicketTTL
		}
		ticket, err := s.Signer.Sign(jwtx.NewMFAClaims(user.ID, ttl, now))
		if err != nil {
			l.Error("failed to sign mfa ticket", "error", err, "user_id", user.ID)
			return nil, ErrTokenCreation
		}
		l.Info("password accepted, second factor required", "user_id", user.ID)
		return &AuthResult{MFAToken: ticket}, nil
	}

	return s.issue(ctx, &user)
}

// CompleteMFA redeems an mfa ticket with a TOTP code and finishes the
// login. The lockout gate applies here too, and a wrong code counts as a
// failed attempt on the same counter as a wrong password.
//
// Returns ErrInvalidToken for bad or expired tickets (a ticket is not a
// session, so it never reports ErrSessionExpired), ErrWrongCredentials for
// wrong codes, ErrLocked while locked, or a wrapped store error.
func (s *AuthService) CompleteMFA(ctx context.Context, mfaToken, code string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	claims, err := s.Verifier.Verify(mfaToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if err := claims.RequirePurpose(jwtx.PurposeMFA); err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := s.admit(ctx, &user, now); err != nil {
		return nil, err
	}

	// The factor may have been disabled between ticket and redemption.
	if !user.TOTPActive || user.TOTPSecret == nil {
		return nil, ErrInvalidToken
	}

	secret, err := s.Sealer.Open(*user.TOTPSecret)
	if err != nil {
		l.Error("failed to unseal totp secret", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("unseal totp secret: %w", err)
	}

	if !totp.Validate(code, string(secret)) {
		return nil, s.fail(ctx, &user, now)
	}

	l.Info("second factor accepted", "user_id", user.ID)
	return s.issue(ctx, &user)
}

// admit enforces the lock gate. While a lock window runs it returns
// *LockedError; an expired lock is lifted and persisted (attempt counter
// reset with it) and the attempt is admitted.
func (s *AuthService) admit(ctx context.Context, u *domain.User, now time.Time) error {
	if !s.Policy.IsLocked(u) {
		return nil
	}
	if s.Policy.TryUnlock(u, now) == lockout.StillLocked {
		return &LockedError{Until: *u.LockedUntil}
	}
	if err := s.Store.Users().ClearLock(ctx, u.ID); err != nil {
		return fmt.Errorf("clear lock: %w", err)
	}
	slogx.FromContext(ctx).Info("lock lifted", "user_id", u.ID)
	return nil
}

// fail records a failed attempt. The store increment is the authoritative
// count, so concurrent failures cannot undercount; the attempt that reaches
// the threshold arms the lock but still reports wrong credentials. The next
// attempt hits the gate.
func (s *AuthService) fail(ctx context.Context, u *domain.User, now time.Time) error {
	attempts, err := s.Store.Users().IncrementLoginAttempts(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	if until := s.Policy.RecordFailure(u, attempts, now); until != nil {
		if err := s.Store.Users().LockAccount(ctx, u.ID, *until); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		slogx.FromContext(ctx).Warn("account locked after repeated failures",
			"user_id", u.ID, "attempts", attempts, "locked_until", *until)
	}
	return ErrWrongCredentials
}

// issue finishes a successful authentication: the counter resets first,
// then the session issuer supersedes any previous session and signs the
// token.
func (s *AuthService) issue(ctx context.Context, u *domain.User) (*AuthResult, error) {
	if u.InvalidLoginAttempts > 0 {
		if err := s.Store.Users().ResetLoginAttempts(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("reset login attempts: %w", err)
		}
		s.Policy.RecordSuccess(u)
	}

	session, token, err := s.Sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Session: &session, Token: token}, nil
}
