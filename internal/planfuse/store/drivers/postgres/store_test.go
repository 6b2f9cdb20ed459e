package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestGetUserByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &usersRepo{db: db}

	q := `(?s)^SELECT\s+.*\s+FROM users WHERE username = \$1$`

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "username", "password_hash", "totp_secret", "totp_active",
			"invalid_login_attempts", "lock_base_duration", "lock_duration_factor",
			"lock_duration_cap", "locked_until", "created_at",
		}).AddRow("u-1", "alice", "hash", nil, false, 2, 60, 2, 3600, nil, now)

		mock.ExpectQuery(q).WithArgs("alice").WillReturnRows(rows)

		u, err := repo.GetUserByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.Equal(t, "u-1", u.ID)
		require.Equal(t, 2, u.InvalidLoginAttempts)
		require.Nil(t, u.LockedUntil)
		require.Nil(t, u.TOTPSecret)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByUsername(context.Background(), "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateUserMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &usersRepo{db: db}

	mock.ExpectExec(`(?s)^INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.CreateUser(context.Background(), domain.User{
		ID:        "u-1",
		Username:  "alice",
		CreatedAt: time.Now(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestIncrementLoginAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &usersRepo{db: db}

	q := `(?s)^UPDATE users SET invalid_login_attempts = invalid_login_attempts \+ 1\s+WHERE id = \$1\s+RETURNING invalid_login_attempts$`

	t.Run("returns the fresh count", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"invalid_login_attempts"}).AddRow(3)
		mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

		got, err := repo.IncrementLoginAttempts(context.Background(), "u-1")
		require.NoError(t, err)
		require.Equal(t, 3, got)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.IncrementLoginAttempts(context.Background(), "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestLockAndClearLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &usersRepo{db: db}

	until := time.Now().Add(2 * time.Minute)
	mock.ExpectExec(`(?s)^UPDATE users SET locked_until = \$1 WHERE id = \$2$`).
		WithArgs(until, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.LockAccount(context.Background(), "u-1", until))

	mock.ExpectExec(`(?s)^UPDATE users SET locked_until = NULL, invalid_login_attempts = 0 WHERE id = \$1$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearLock(context.Background(), "u-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredSessions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &sessionsRepo{db: db}

	now := time.Now()
	mock.ExpectExec(`(?s)^DELETE FROM sessions WHERE expires_at <= \$1$`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpiredSessions(context.Background(), now)
	require.NoError(t, err)
	require.EqualValues(t, 4, n)
}

func TestGetSessionByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &sessionsRepo{db: db}

	q := `(?s)^SELECT id, user_id, expires_at, created_at\s+FROM sessions WHERE user_id = \$1$`

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}).
			AddRow("s-1", "u-1", now.Add(24*time.Hour), now)
		mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

		s, err := repo.GetSessionByUserID(context.Background(), "u-1")
		require.NoError(t, err)
		require.Equal(t, "s-1", s.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs("u-2").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetSessionByUserID(context.Background(), "u-2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeletePlan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &plansRepo{db: db}

	q := `(?s)^DELETE FROM plans WHERE user_id = \$1 AND name = \$2$`

	t.Run("deletes the owner's plan", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs("u-1", "roadmap").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeletePlan(context.Background(), "u-1", "roadmap"))
	})

	t.Run("missing plan", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs("u-1", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeletePlan(context.Background(), "u-1", "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreatePlanMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &plansRepo{db: db}

	mock.ExpectExec(`(?s)^INSERT INTO plans`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.CreatePlan(context.Background(), domain.Plan{
		UserID:       "u-1",
		Name:         "roadmap",
		LastModified: time.Now(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}
