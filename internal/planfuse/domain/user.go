package domain

import "time"

type User struct {
	ID                   string
	Username             string
	PasswordHash         string  // argon2 encoded
	TOTPSecret           *string // sealed TOTP secret (nullable, base64 of AES-GCM box)
	TOTPActive           bool
	InvalidLoginAttempts int
	LockBaseDuration     int        // seconds
	LockDurationFactor   int        // multiplier applied when a lock is computed
	LockDurationCap      int        // seconds, ceiling for the computed window
	LockedUntil          *time.Time // nil while the account is not locked
	CreatedAt            time.Time
}
