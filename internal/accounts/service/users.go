package service

import (
	"context"
	"errors"

	"github.com/reelhouse/accounts/internal/accounts/domain"
	"github.com/reelhouse/accounts/internal/accounts/store"
	"github.com/reelhouse/accounts/pkg/slogx"
)

var (
	// ErrEmailRequired is returned when an operation is attempted without an
	// email key.
	ErrEmailRequired = errors.New("accounts: email is required")

	// ErrPreferencesRequired rejects nil or empty preference payloads, so an
	// accidental empty body can never wipe a user's preferences.
	ErrPreferencesRequired = errors.New("accounts: preferences must not be empty")
)

// AccountService owns the users and sessions collections through the injected
// Store. It holds no state of its own: any number of concurrent callers may
// share one instance.
//
// Uniqueness under races is guaranteed by the store's schema, not by this
// layer. The existence checks before inserts are a fast path only; when two
// concurrent calls both pass the check, the second insert hits the store's
// unique constraint and is reported as a benign false.
type AccountService struct {
	Store store.Store
}

// AddUser inserts a new user record at majority durability. Account records
// are high-value and must survive a node failure immediately after signup.
//
// Adding an email that already exists is a no-op success. A store-level
// uniqueness conflict (a concurrent signup won the race) returns false with a
// nil error; any other store failure propagates.
func (s *AccountService) AddUser(ctx context.Context, u domain.User) (bool, error) {
	if u.Email == "" {
		return false, ErrEmailRequired
	}

	l := slogx.FromContext(ctx)

	_, err := s.Store.Users().GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, err
	}

	if err := s.Store.Users().Create(ctx, u, store.DurabilityMajority); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Debug("user insert lost a signup race", "email", u.Email)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetUser returns the user identified by email, or store.ErrNotFound.
func (s *AccountService) GetUser(ctx context.Context, email string) (domain.User, error) {
	return s.Store.Users().GetByEmail(ctx, email)
}

// DeleteUser removes the user's sessions and then the user record. Session
// cleanup is best-effort: a failure there is logged and never blocks the
// account deletion, so a partially completed delete is an accepted end state.
// The returned bool reports whether the store acknowledged the user delete.
func (s *AccountService) DeleteUser(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, ErrEmailRequired
	}

	// Sessions are keyed by the user's email, so no lookup is needed.
	if _, err := s.Store.Sessions().DeleteByUserID(ctx, email); err != nil {
		slogx.FromContext(ctx).Debug("session cleanup failed during account deletion",
			"email", email, "err", err)
	}

	if err := s.Store.Users().Delete(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateUserPreferences replaces the user's entire preferences value; it
// never merges with what was stored before. Nil or empty preferences are
// rejected with ErrPreferencesRequired. Updating an unknown email returns
// store.ErrNotFound rather than claiming success.
func (s *AccountService) UpdateUserPreferences(ctx context.Context, email string, prefs map[string]any) (bool, error) {
	if email == "" {
		return false, ErrEmailRequired
	}
	if len(prefs) == 0 {
		return false, ErrPreferencesRequired
	}

	if err := s.Store.Users().ReplacePreferences(ctx, email, prefs); err != nil {
		return false, err
	}
	return true, nil
}
