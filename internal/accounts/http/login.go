package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/internal/accounts/store"
	"github.com/reelhouse/accounts/pkg/cryptox"
	"github.com/reelhouse/accounts/pkg/httpx"
	"github.com/reelhouse/accounts/pkg/jwtx"
	"github.com/reelhouse/accounts/pkg/slogx"
)

type LoginHandler struct {
	Accounts *service.AccountService
	Signer   *jwtx.Signer
}

// ServeHTTP authenticates a user and returns their session token. A user has
// at most one session, so logging in while one is active returns the stored
// token unchanged.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	user, err := h.Accounts.GetUser(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "")
			return
		}
		log.Error("user lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	if cryptox.VerifyPassword(req.Password, user.PasswordHash) != nil {
		log.Info("login rejected", "email", req.Email)
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "")
		return
	}

	token, err := openSession(ctx, h.Accounts, h.Signer, user.Email, user.Name)
	if err != nil {
		log.Error("session creation failed", "email", req.Email, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer"})
}

// openSession returns the user's active session token, minting and storing a
// new one only when none exists. When a concurrent login wins the insert
// race, the winner's token is re-read and returned so both callers end up
// holding the same session.
func openSession(ctx context.Context, accounts *service.AccountService, signer *jwtx.Signer, email, name string) (string, error) {
	if sess, err := accounts.GetUserSession(ctx, email); err == nil {
		return sess.JWT, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	token, err := signer.Mint(email, name)
	if err != nil {
		return "", err
	}

	created, err := accounts.CreateUserSession(ctx, email, token)
	if err != nil {
		return "", err
	}
	if !created {
		sess, err := accounts.GetUserSession(ctx, email)
		if err != nil {
			return "", err
		}
		return sess.JWT, nil
	}
	return token, nil
}
