package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	httpserver "propcheck/internal/http"
	"propcheck/internal/models"
	"propcheck/internal/repo"
	"propcheck/internal/security"
	"propcheck/internal/session"
)

// ListSessionsHandler returns JSON of active sessions. The router gates
// it behind the admin role.
func ListSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		type item struct {
			ID        string    `json:"id"`
			UserID    string    `json:"user_id"`
			Role      string    `json:"role"`
			Provider  string    `json:"provider"`
			ExpiresAt time.Time `json:"expires_at"`
		}
		entries := session.DefaultStore.List()
		out := make([]item, 0, len(entries))
		for _, e := range entries {
			out = append(out, item{
				ID:        e.ID,
				UserID:    e.Session.UserID.String(),
				Role:      string(e.Session.Role),
				Provider:  e.Session.Provider,
				ExpiresAt: e.Session.Expiry,
			})
		}
		httpserver.JSON(w, http.StatusOK, out)
	}
}

// ListUsersHandler returns all user accounts.
func ListUsersHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		users, err := r.ListUsers(req.Context())
		if err != nil {
			status, msg := httpserver.PGErrorMessage(err, "list failed")
			httpserver.Error(w, status, msg)
			return
		}
		httpserver.JSON(w, http.StatusOK, map[string]any{"content": users})
	}
}

// SetRoleHandler changes a user's role.
// Body: { "user_id": "...", "role": "inspector" }
func SetRoleHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			UserID uuid.UUID `json:"user_id"`
			Role   string    `json:"role"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)).Decode(&body); err != nil {
			httpserver.Error(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		role := models.Role(body.Role)
		switch role {
		case models.RoleAdmin, models.RoleSupervisor, models.RoleInspector, models.RoleClient:
		default:
			httpserver.Error(w, http.StatusBadRequest, "unknown role")
			return
		}
		if err := r.SetUserRole(req.Context(), body.UserID, role); err != nil {
			status, msg := httpserver.PGErrorMessage(err, "role update failed")
			httpserver.Error(w, status, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DenyUserHandler blocks a user id at the middleware layer and drops
// their live sessions. AllowUserHandler reverses the block.
func DenyUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id, ok := decodeUserID(w, req)
		if !ok {
			return
		}
		security.DenyUser(id)
		for _, e := range session.DefaultStore.List() {
			if e.Session.UserID == id {
				session.DefaultStore.Delete(e.ID)
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AllowUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id, ok := decodeUserID(w, req)
		if !ok {
			return
		}
		security.AllowUser(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeUserID(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	var body struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)).Decode(&body); err != nil || body.UserID == uuid.Nil {
		httpserver.Error(w, http.StatusBadRequest, "user_id required")
		return uuid.Nil, false
	}
	return body.UserID, true
}
