package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/lockout"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/pkg/cryptox"
	"github.com/planfuse/planfuse/pkg/idx"
	"github.com/planfuse/planfuse/pkg/slogx"
)

const (
	maxUsernameLen = 64
	minPasswordLen = 8
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
	ErrWeakPassword    = errors.New("password too short")
)

type UserService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
}

// Register creates a new account with the default lockout tuning. The
// password is argon2id hashed before anything touches the store.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := validateUsername(username); err != nil {
		return domain.User{}, err
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		l.Error("failed to hash password", "error", err)
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:                 idx.New().String(),
		Username:           username,
		PasswordHash:       hash,
		LockBaseDuration:   lockout.DefaultBaseDurationS,
		LockDurationFactor: lockout.DefaultDurationFactor,
		LockDurationCap:    lockout.DefaultDurationCapS,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		l.Error("failed to create user", "error", err, "username", username)
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetUserByUsername fetches a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ChangePassword rotates a user's password after re-checking the current
// one. Wrong current passwords report ErrWrongCredentials without feeding
// the lockout counter; the caller already holds an authenticated session.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrWrongCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}

	if utf8.RuneCountInString(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}

	l.Info("password changed", "user_id", userID)
	return nil
}

// validateUsername enforces 1..64 characters with no control characters.
func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n == 0 || n > maxUsernameLen {
		return ErrInvalidUsername
	}
	for _, r := range username {
		if unicode.IsControl(r) {
			return ErrInvalidUsername
		}
	}
	return nil
}
