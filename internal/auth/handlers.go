// internal/auth/handlers.go
package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"propcheck/internal/models"
	"propcheck/internal/repo"
	"propcheck/internal/security"
	"propcheck/internal/session"
)

const sessionTTL = 8 * time.Hour

// POST /auth/signup
// Body: { "email": "...", "name": "...", "password": "..." }
// New accounts always start as clients; role changes are an admin operation.
func SignupHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		email := strings.ToLower(strings.TrimSpace(body.Email))
		if email == "" || len(body.Password) < 8 {
			http.Error(w, "missing fields or weak password", http.StatusBadRequest)
			return
		}

		u, err := r.CreateUser(req.Context(), email, strings.TrimSpace(body.Name), models.RoleClient)
		if err != nil {
			http.Error(w, "user create failed", http.StatusConflict)
			return
		}
		phc, err := HashPassword(body.Password, defaultArgonParams())
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		if err := r.CreateLocalCredential(req.Context(), u.ID, email, phc); err != nil {
			http.Error(w, "username taken", http.StatusConflict)
			return
		}

		SetSessionCookie(w, models.Session{
			UserID:   u.ID,
			Role:     u.Role,
			Provider: "local",
			Expiry:   time.Now().Add(sessionTTL),
		})
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
	}
}

// POST /auth/login
// Body: { "username": "...", "password": "..." }
func LoginHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		username := strings.ToLower(strings.TrimSpace(body.Username))
		if username == "" || body.Password == "" {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}

		cred, user, err := r.GetLocalCredentialByUsername(req.Context(), username)
		if err != nil {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			slog.DebugContext(req.Context(), "login unknown username", "username", username)
			return
		}
		if !VerifyPassword(body.Password, cred.PasswordHash) {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			slog.InfoContext(req.Context(), "login bad password", "username", username)
			if ip, ok := clientIP(req); ok {
				_ = r.RecordLoginFailure(req.Context(), username, ip)
			}
			return
		}
		if security.IsUserDenied(user.ID) {
			// Denied accounts cannot re-establish a session; admin deny
			// already dropped their live ones.
			http.Error(w, "account disabled", http.StatusForbidden)
			slog.InfoContext(req.Context(), "login denied user", "username", username)
			return
		}

		SetSessionCookie(w, models.Session{
			UserID:   user.ID,
			Role:     user.Role,
			Provider: "local",
			Expiry:   time.Now().Add(sessionTTL),
		})
		if ip, ok := clientIP(req); ok {
			_ = r.RecordLoginSuccess(req.Context(), username, ip)
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "role": user.Role})
	}
}

// POST /auth/logout
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		// Best-effort delete server-side session
		if c, err := req.Cookie("session"); err == nil && c.Value != "" {
			session.DefaultStore.Delete(c.Value)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   cookieSecure,
			SameSite: sameSiteMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /auth/me
func ProfileHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sess := ReadSession(req)
		if sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		u, err := r.GetUserByID(req.Context(), sess.UserID)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// UpdateProfileHandler allows a logged-in user to update optional profile fields.
// PUT /auth/profile
// Body: { "name": "...", "phone": "...", "avatar_url": "..." }
func UpdateProfileHandler(r repo.Repo) http.HandlerFunc {
	type bodyT struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		AvatarURL *string `json:"avatar_url"`
	}
	return func(w http.ResponseWriter, req *http.Request) {
		sess := ReadSession(req)
		if sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var b bodyT
		if err := json.NewDecoder(req.Body).Decode(&b); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		norm := func(p *string) *string {
			if p == nil {
				return nil
			}
			s := strings.TrimSpace(*p)
			return &s
		}
		if err := r.UpdateUserProfile(req.Context(), sess.UserID, norm(b.Name), norm(b.AvatarURL), norm(b.Phone)); err != nil {
			http.Error(w, "update failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
