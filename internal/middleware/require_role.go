// internal/middleware/require_role.go
package middleware

import (
	"net/http"

	"propcheck/internal/auth"
	"propcheck/internal/models"
)

// Map role to integer level, clients at the bottom and admins at the top.
var roleLevels = map[models.Role]int{
	models.RoleClient:     1,
	models.RoleInspector:  2,
	models.RoleSupervisor: 3,
	models.RoleAdmin:      4,
}

// RequireRole admits a request when the session's role is at or above the
// lowest role in allowed.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	minAllowedLevel := 9999
	for _, role := range allowed {
		lvl, ok := roleLevels[role]
		if !ok {
			continue
		}
		if lvl < minAllowedLevel {
			minAllowedLevel = lvl
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, _ := auth.SessionFromContext(req.Context())
			if sess == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			userLevel, ok := roleLevels[sess.Role]
			if !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			if userLevel < minAllowedLevel {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}
