package accountsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated handle on the accounts service. It is safe for
// concurrent use; the token never changes for the life of the session.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the session's bearer token, for callers that need to persist
// it or pass it to another system.
func (s *Session) Token() string {
	return s.token
}

// GetProfile returns the account behind this session.
func (s *Session) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/me", s.token, nil)
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdatePreferences replaces the account's preference set wholesale. The
// service rejects an empty set, so clearing preferences is not possible
// through this call.
func (s *Session) UpdatePreferences(ctx context.Context, prefs map[string]any) error {
	resp, err := s.client.doJSON(ctx, http.MethodPut, "/v1/me/preferences", s.token, PreferencesRequest{
		Preferences: prefs,
	})
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// Logout ends the session server-side. The call is idempotent; logging out a
// session that is already gone still succeeds.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/logout", s.token, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// DeleteAccount removes the account behind this session along with its
// session. The token becomes useless afterwards.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.client.doJSON(ctx, http.MethodDelete, "/v1/me", s.token, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
