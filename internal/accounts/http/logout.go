package http

import (
	"net/http"

	"github.com/reelhouse/accounts/internal/accounts/service"
	"github.com/reelhouse/accounts/pkg/httpx"
	"github.com/reelhouse/accounts/pkg/slogx"
)

type LogoutHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP ends the caller's session. Logging out twice is fine: the second
// call finds nothing to delete and still returns success.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "")
		return
	}

	if _, err := h.Accounts.DeleteUserSessions(ctx, userID); err != nil {
		slogx.FromContext(ctx).Error("logout failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
