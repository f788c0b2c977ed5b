// internal/handlers/notifications/notifications.go
package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpserver "propcheck/internal/http"
	"propcheck/internal/httpctx"
	"propcheck/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(r repo.Repo) *Handler {
	return &Handler{repo: r}
}

// List returns the caller's notifications, newest first. ?unread=true
// narrows to unread only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := httpctx.UserID(r.Context())
	if !ok {
		httpserver.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	list, err := h.repo.ListNotifications(r.Context(), uid, unreadOnly)
	if err != nil {
		status, msg := httpserver.PGErrorMessage(err, "list failed")
		httpserver.Error(w, status, msg)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"content": list})
}

// MarkRead handles POST /api/notifications/{id}/read. Scoped to the
// caller so one user cannot ack another's notifications.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := httpctx.UserID(r.Context())
	if !ok {
		httpserver.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.repo.MarkNotificationRead(r.Context(), uid, id); err != nil {
		status, msg := httpserver.PGErrorMessage(err, "update failed")
		httpserver.Error(w, status, msg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
