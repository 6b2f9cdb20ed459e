package domain

import "time"

// Session is a server-acknowledged authenticated period for one user. A user
// holds at most one active session; creating a new one supersedes the old.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
