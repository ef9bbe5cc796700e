package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reelhouse/accounts/internal/accounts/domain"
	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/pkg/cryptox"
	"github.com/reelhouse/accounts/pkg/httpx"
	"github.com/reelhouse/accounts/pkg/jwtx"
	"github.com/reelhouse/accounts/pkg/slogx"
)

type SignupHandler struct {
	Accounts *service.AccountService
	Signer   *jwtx.Signer
}

// ServeHTTP registers a new account and opens its first session. Signing up
// with an email that already has an account is reported as a conflict, not as
// a silent success, so the client can route the user to login.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	// An idempotent AddUser would mask "already registered" here: probe first
	// so the common case gets a clear conflict. The store constraint still
	// decides races.
	if _, err := h.Accounts.GetUser(ctx, req.Email); err == nil {
		httpx.WriteError(w, http.StatusConflict, "already_registered", "An account with this email already exists")
		return
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		log.Error("password hashing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	ok, err := h.Accounts.AddUser(ctx, domain.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		log.Error("signup failed", "email", req.Email, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	if !ok {
		// Lost a signup race against a concurrent request for the same email.
		httpx.WriteError(w, http.StatusConflict, "already_registered", "An account with this email already exists")
		return
	}

	token, err := openSession(ctx, h.Accounts, h.Signer, req.Email, req.Name)
	if err != nil {
		log.Error("session creation failed after signup", "email", req.Email, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, TokenResponse{Token: token, TokenType: "Bearer"})
}
