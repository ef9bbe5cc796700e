package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/internal/accounts/store"
	"github.com/reelhouse/accounts/pkg/httpx"
	"github.com/reelhouse/accounts/pkg/slogx"
)

type PreferencesHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP replaces the authenticated user's preferences wholesale. An empty
// payload is rejected rather than treated as "clear everything".
func (h *PreferencesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "")
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	_, err := h.Accounts.UpdateUserPreferences(ctx, userID, req.Preferences)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrPreferencesRequired):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "preferences must not be empty")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
	default:
		slogx.FromContext(ctx).Error("preferences update failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
	}
}
