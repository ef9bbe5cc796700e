package accountsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the accounts service. It provides access to
// unauthenticated operations and can open authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new accounts service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Signup registers a new account and returns the session opened for it.
// An email that already has an account yields an *APIError with code
// "already_registered".
func (c *SDKClient) Signup(ctx context.Context, email, name, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/signup", "", SignupRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusCreated); err != nil {
		return nil, err
	}

	return &Session{client: c, token: tok.Token}, nil
}

// Login authenticates a user and returns their session. The service keeps at
// most one session per user, so a login during an active session returns the
// existing token rather than a fresh one.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{client: c, token: tok.Token}, nil
}

// NewSessionFromToken creates a session from an existing bearer token, for
// example one stored from a previous login.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
