package service

import (
	"context"
	"errors"

	"github.com/reelhouse/accounts/internal/accounts/domain"
	"github.com/reelhouse/accounts/internal/accounts/store"
	"github.com/reelhouse/accounts/pkg/slogx"
)

// CreateUserSession stores the session token for a user. A user holds at most
// one session: if one already exists the call is a no-op success and the
// stored token is kept (first session wins, no refresh). A store-level
// uniqueness conflict from a concurrent login returns false with a nil error.
func (s *AccountService) CreateUserSession(ctx context.Context, userID, jwt string) (bool, error) {
	if userID == "" {
		return false, ErrEmailRequired
	}

	_, err := s.Store.Sessions().GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, err
	}

	if err := s.Store.Sessions().Create(ctx, domain.Session{UserID: userID, JWT: jwt}); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			slogx.FromContext(ctx).Debug("session insert lost a login race", "user_id", userID)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetUserSession returns the user's active session, or store.ErrNotFound.
func (s *AccountService) GetUserSession(ctx context.Context, userID string) (domain.Session, error) {
	return s.Store.Sessions().GetByUserID(ctx, userID)
}

// DeleteUserSessions removes the user's sessions and reports whether at
// least one record was removed. Deleting for a user with no session is not an
// error, just false.
func (s *AccountService) DeleteUserSessions(ctx context.Context, userID string) (bool, error) {
	deleted, err := s.Store.Sessions().DeleteByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
