package middleware

import (
	"net/http"

	"propcheck/internal/auth"
	"propcheck/internal/repo"
	"propcheck/internal/security"
)

// RequireAuth authenticates using the "session" cookie (auth.ReadSession),
// then loads the user by Session.UserID from the repo and injects both
// session and user into the context. Denied users are rejected here, after
// the session is resolved, so a deny takes effect on their next request.
func RequireAuth(r repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s := auth.ReadSession(req)
			if s == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if security.IsUserDenied(s.UserID) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			user, err := r.GetUserByID(req.Context(), s.UserID)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			// Role in the session can go stale after an admin change; the
			// user row is authoritative.
			s.Role = user.Role

			ctx := auth.WithSession(req.Context(), s)
			ctx = auth.WithUser(ctx, &user)

			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// OptionalAuth reads the session cookie if present and valid, loads the user
// and injects session and user into context. It never returns 401; on any
// failure it simply passes the request through unauthenticated.
func OptionalAuth(r repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s := auth.ReadSession(req)
			if s == nil || security.IsUserDenied(s.UserID) {
				next.ServeHTTP(w, req)
				return
			}
			if u, err := r.GetUserByID(req.Context(), s.UserID); err == nil {
				s.Role = u.Role
				ctx := auth.WithSession(req.Context(), s)
				ctx = auth.WithUser(ctx, &u)
				next.ServeHTTP(w, req.WithContext(ctx))
				return
			}
			// If user load fails, continue unauthenticated
			next.ServeHTTP(w, req)
		})
	}
}
