package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "github.com/reelhouse/accounts/internal/accounts/http"
	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/reelhouse/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSigner([]byte("test-secret"), "accounts-test", time.Hour)
	require.NoError(t, err)

	accounts := &service.AccountService{Store: st}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := httpapi.NewRouter(signer, "test", st, accounts, logger)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func signup(t *testing.T, srv *httptest.Server, email, name, password string) string {
	t.Helper()

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/v1/signup", "", httpapi.SignupRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var tok httpapi.TokenResponse
	require.NoError(t, json.Unmarshal(raw, &tok))
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func TestSignupLoginFlow(t *testing.T) {
	srv := newServer(t)

	token := signup(t, srv, "ada@example.com", "Ada Lovelace", "hunter2hunter2")

	// The signup token is the active session; logging in returns it
	// unchanged rather than minting a replacement.
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", httpapi.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var tok httpapi.TokenResponse
	require.NoError(t, json.Unmarshal(raw, &tok))
	require.Equal(t, token, tok.Token)

	// Profile is readable with that token.
	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var profile httpapi.ProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Equal(t, "ada@example.com", profile.Email)
	require.Equal(t, "Ada Lovelace", profile.Name)
	require.Nil(t, profile.Preferences)
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv := newServer(t)

	signup(t, srv, "ada@example.com", "Ada", "hunter2hunter2")

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/v1/signup", "", httpapi.SignupRequest{
		Email:    "ada@example.com",
		Name:     "Impostor",
		Password: "different",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newServer(t)

	signup(t, srv, "ada@example.com", "Ada", "hunter2hunter2")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", httpapi.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", httpapi.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPreferencesRoundTrip(t *testing.T) {
	srv := newServer(t)
	token := signup(t, srv, "ada@example.com", "Ada", "hunter2hunter2")

	// Empty payload must not wipe preferences.
	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/v1/me/preferences", token, httpapi.PreferencesRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/v1/me/preferences", token, httpapi.PreferencesRequest{
		Preferences: map[string]any{"theme": "dark"},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Second update replaces the first wholesale.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/v1/me/preferences", token, httpapi.PreferencesRequest{
		Preferences: map[string]any{"lang": "en"},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile httpapi.ProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Equal(t, map[string]any{"lang": "en"}, profile.Preferences)
}

func TestLogout(t *testing.T) {
	srv := newServer(t)
	token := signup(t, srv, "ada@example.com", "Ada", "hunter2hunter2")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Logging out twice is fine.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Logging in again mints a fresh session.
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", httpapi.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
}

func TestDeleteAccount(t *testing.T) {
	srv := newServer(t)
	token := signup(t, srv, "ada@example.com", "Ada", "hunter2hunter2")

	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/v1/me", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The token still verifies, but the account behind it is gone.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/me", token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", httpapi.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	srv := newServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newServer(t)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health.Status)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health.Checks.Database)
}
