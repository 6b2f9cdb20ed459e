// Package lockout implements the progressive lockout policy applied to
// password authentication. The policy is pure decision logic over a user's
// attempt counter and lock expiry; persisting the resulting state is the
// caller's job, through the store's narrow lockout updates.
package lockout

import (
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
)

// Defaults applied to new accounts. Base, factor and cap live on the user
// row so individual accounts can be tuned; the threshold is service
// configuration.
const (
	DefaultThreshold      = 3
	DefaultBaseDurationS  = 60
	DefaultDurationFactor = 2
	DefaultDurationCapS   = 3600
)

// Outcome reports the result of an unlock attempt.
type Outcome int

const (
	StillLocked Outcome = iota
	Unlocked
)

func (o Outcome) String() string {
	if o == Unlocked {
		return "unlocked"
	}
	return "still_locked"
}

// Policy decides whether authentication attempts are admitted and computes
// lock windows on failure.
type Policy struct {
	// Threshold is the attempt count at which an account locks.
	Threshold int
}

// NewPolicy returns a Policy with the given failure threshold, falling back
// to DefaultThreshold for non-positive values.
func NewPolicy(threshold int) Policy {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Policy{Threshold: threshold}
}

// IsLocked reports whether the account currently holds a lock. An expired
// lock still counts as locked until TryUnlock clears it; expiry alone never
// lifts a lock.
func (p Policy) IsLocked(u *domain.User) bool {
	return u.LockedUntil != nil
}

// TryUnlock lifts the lock if its expiry has passed, resetting the attempt
// counter to zero. A lock whose window is still running is left untouched.
// The caller persists a lifted lock via Users.ClearLock. Calling TryUnlock
// on an account with no lock is a no-op reporting Unlocked.
func (p Policy) TryUnlock(u *domain.User, now time.Time) Outcome {
	if u.LockedUntil == nil {
		return Unlocked
	}
	if u.LockedUntil.After(now) {
		return StillLocked
	}
	u.LockedUntil = nil
	u.InvalidLoginAttempts = 0
	return Unlocked
}

// RecordFailure applies a failed attempt. The attempts argument is the
// authoritative post-increment counter value; the increment itself happens
// at the store row (Users.IncrementLoginAttempts) so that concurrent
// failures cannot undercount. When the count reaches the threshold the
// account locks for Duration(u) and the new expiry is returned for the
// caller to persist; otherwise nil.
func (p Policy) RecordFailure(u *domain.User, attempts int, now time.Time) *time.Time {
	u.InvalidLoginAttempts = attempts
	if attempts < p.Threshold {
		return nil
	}
	until := now.Add(Duration(u))
	u.LockedUntil = &until
	return &until
}

// RecordSuccess resets the attempt counter after a successful login.
func (p Policy) RecordSuccess(u *domain.User) {
	u.InvalidLoginAttempts = 0
}

// Duration computes the account's lock window: base times factor, capped.
// The per-account fields are read-only here; a lock never rewrites them.
func Duration(u *domain.User) time.Duration {
	secs := u.LockBaseDuration * u.LockDurationFactor
	if secs > u.LockDurationCap {
		secs = u.LockDurationCap
	}
	return time.Duration(secs) * time.Second
}
