package store

import (
	"context"
	"errors"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	Plans() Plans

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g., superseding a user's session).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is the login-path lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2).
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// IncrementLoginAttempts bumps invalid_login_attempts by one at the row
	// and returns the new count. Concurrent failures serialize here; the
	// lockout decision must use the returned count, never a stale read.
	IncrementLoginAttempts(ctx context.Context, userID string) (int, error)

	// LockAccount sets locked_until.
	LockAccount(ctx context.Context, userID string, until time.Time) error

	// ClearLock clears locked_until and resets invalid_login_attempts to 0.
	ClearLock(ctx context.Context, userID string) error

	// ResetLoginAttempts resets invalid_login_attempts to 0, leaving any
	// lock fields alone.
	ResetLoginAttempts(ctx context.Context, userID string) error

	// UpdateTOTPSecret stores the sealed TOTP secret without activating it.
	UpdateTOTPSecret(ctx context.Context, userID string, sealed string) error

	// ActivateTOTP marks the stored TOTP secret as active.
	ActivateTOTP(ctx context.Context, userID string) error

	// DisableTOTP clears the TOTP secret and active flag.
	DisableTOTP(ctx context.Context, userID string) error
}

type Sessions interface {
	// GetSessionByUserID returns the user's session row, expired or not.
	// Expiry policy belongs to the caller.
	GetSessionByUserID(ctx context.Context, userID string) (domain.Session, error)

	// InsertSession writes a new session row.
	InsertSession(ctx context.Context, s domain.Session) error

	// DeleteSession removes a single session row by id. Deleting an absent
	// row is not an error.
	DeleteSession(ctx context.Context, id string) error

	// DeleteSessionsByUser removes all session rows for a user (logout,
	// supersede on login).
	DeleteSessionsByUser(ctx context.Context, userID string) error

	// DeleteExpiredSessions removes rows past their expiry and reports how
	// many went.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Plans interface {
	// ListPlansByUser returns the user's plans ordered by name.
	ListPlansByUser(ctx context.Context, userID string) ([]domain.Plan, error)

	// CreatePlan inserts a plan. Duplicate (user_id, name) pairs return
	// ErrAlreadyExists.
	CreatePlan(ctx context.Context, p domain.Plan) error

	// DeletePlan removes a plan by owner and name. ErrNotFound when absent.
	DeletePlan(ctx context.Context, userID string, name string) error
}
