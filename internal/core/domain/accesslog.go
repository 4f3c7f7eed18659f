package domain

import "time"

// AccessLog is an append-only login/logout event. Entries are never
// mutated or deleted.
type AccessLog struct {
	ID        string    `json:"id"`
	Type      bool      `json:"type"` // true = login, false = logout
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// User is the resolved owner, populated by list views. Never stored.
	User *User `json:"user,omitempty"`
}
