package http

// Request and response bodies for the account API.

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by signup and login. The token is the user's
// single active session credential; logging in again while a session is
// active returns the original token, not a fresh one.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // always "Bearer"
}

type ProfileResponse struct {
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type PreferencesRequest struct {
	Preferences map[string]any `json:"preferences"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
