package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, password_hash, totp_secret, totp_active,
	invalid_login_attempts, lock_base_duration, lock_duration_factor,
	lock_duration_cap, locked_until, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u           domain.User
		totpSecret  sql.NullString
		lockedUntil sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash,
		&totpSecret, &u.TOTPActive,
		&u.InvalidLoginAttempts,
		&u.LockBaseDuration, &u.LockDurationFactor, &u.LockDurationCap,
		&lockedUntil, &u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.TOTPSecret = mapNullStringPtr(totpSecret)
	u.LockedUntil = mapNullTimePtr(lockedUntil)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			id, username, password_hash, totp_secret, totp_active,
			invalid_login_attempts, lock_base_duration, lock_duration_factor,
			lock_duration_cap, locked_until, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash,
		mapOptionalString(u.TOTPSecret), u.TOTPActive,
		u.InvalidLoginAttempts,
		u.LockBaseDuration, u.LockDurationFactor, u.LockDurationCap,
		mapOptionalTime(u.LockedUntil), u.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, newHash, userID)
	return err
}

// IncrementLoginAttempts bumps the failure counter at the database and reads
// the new value back in the same statement, so concurrent failed logins each
// observe a distinct count.
func (r *usersRepo) IncrementLoginAttempts(ctx context.Context, userID string) (int, error) {
	var attempts int
	err := r.db.QueryRowContext(ctx,
		`UPDATE users SET invalid_login_attempts = invalid_login_attempts + 1
		 WHERE id = ?
		 RETURNING invalid_login_attempts`, userID,
	).Scan(&attempts)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return attempts, nil
}

func (r *usersRepo) LockAccount(ctx context.Context, userID string, until time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET locked_until = ? WHERE id = ?`, until, userID)
	return err
}

func (r *usersRepo) ClearLock(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET locked_until = NULL, invalid_login_attempts = 0 WHERE id = ?`, userID)
	return err
}

func (r *usersRepo) ResetLoginAttempts(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET invalid_login_attempts = 0 WHERE id = ?`, userID)
	return err
}

func (r *usersRepo) UpdateTOTPSecret(ctx context.Context, userID string, sealed string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_secret = ?, totp_active = 0 WHERE id = ?`, sealed, userID)
	return err
}

func (r *usersRepo) ActivateTOTP(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_active = 1 WHERE id = ?`, userID)
	return err
}

func (r *usersRepo) DisableTOTP(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_secret = NULL, totp_active = 0 WHERE id = ?`, userID)
	return err
}
