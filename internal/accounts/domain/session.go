package domain

import "time"

// Session is the single active login session for a user. UserID holds the
// user's identifying key (email), so a session can be cleaned up during
// account deletion without a lookup.
type Session struct {
	UserID    string
	JWT       string // Opaque token string; minted and verified outside the store
	CreatedAt time.Time
}
