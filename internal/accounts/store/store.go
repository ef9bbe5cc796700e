package store

import (
	"context"
	"errors"

	"github.com/reelhouse/accounts/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Durability selects how hard a driver must try to make a single write
// survive failure before acknowledging it. Account records are inserted with
// DurabilityMajority; everything else uses the driver's default.
type Durability int

const (
	// DurabilityDefault accepts whatever the driver's connection defaults are.
	DurabilityDefault Durability = iota

	// DurabilityMajority requires the write to be acknowledged by a majority
	// of replicas (or the strongest equivalent the backend offers) before the
	// call returns.
	DurabilityMajority
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. Uniqueness of users.email and sessions.user_id is
// enforced by the driver's schema, not by callers; drivers surface violations
// as ErrAlreadyExists.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error
}

type Users interface {
	// GetByEmail returns the user with the given email or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user at the requested durability. Returns
	// ErrAlreadyExists when the email is already taken.
	Create(ctx context.Context, u domain.User, d Durability) error

	// ReplacePreferences overwrites the user's entire preferences value.
	// It never merges. Returns ErrNotFound when no user matches.
	ReplacePreferences(ctx context.Context, email string, prefs map[string]any) error

	// Delete removes the user by email. A nil error means the store
	// acknowledged the delete, whether or not a row existed.
	Delete(ctx context.Context, email string) error
}

type Sessions interface {
	// GetByUserID returns the session for the given user or ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (domain.Session, error)

	// Create inserts a new session. Returns ErrAlreadyExists when the user
	// already has one.
	Create(ctx context.Context, s domain.Session) error

	// DeleteByUserID removes all sessions for the user (at most one by
	// schema) and reports how many rows went away.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
