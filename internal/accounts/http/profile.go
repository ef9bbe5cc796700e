package http

import (
	"errors"
	"net/http"

	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/internal/accounts/store"
	"github.com/reelhouse/accounts/pkg/httpx"
	"github.com/reelhouse/accounts/pkg/slogx"
)

type ProfileHandler struct {
	Accounts *service.AccountService
}

// HandleGet returns the authenticated user's profile.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "")
		return
	}

	user, err := h.Accounts.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Valid token for an account that has since been deleted.
			httpx.WriteError(w, http.StatusNotFound, "not_found", "")
			return
		}
		slogx.FromContext(ctx).Error("profile lookup failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{
		Email:       user.Email,
		Name:        user.Name,
		Preferences: user.Preferences,
	})
}

// HandleDelete removes the authenticated user's account. The account's
// session goes first, best-effort, so a token for a deleted account cannot
// keep a live session behind it.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "")
		return
	}

	if _, err := h.Accounts.DeleteUser(ctx, userID); err != nil {
		slogx.FromContext(ctx).Error("account deletion failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
