package domain

import "time"

// Plan is a user-owned planning document. Names are unique per owner.
type Plan struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	LastModified time.Time `json:"last_modified"`
}
