package domain

import "time"

type User struct {
	Email        string // Unique identifying key, treated as an opaque string
	Name         string
	PasswordHash string         // argon2 encoded
	Preferences  map[string]any // Nil when the user has never set preferences
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
