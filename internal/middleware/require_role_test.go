package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"propcheck/internal/auth"
	"propcheck/internal/models"
)

func roleRequest(role models.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	sess := &models.Session{UserID: uuid.New(), Role: role, Provider: "local"}
	return req.WithContext(auth.WithSession(req.Context(), sess))
}

func TestRequireRoleLevels(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireRole(models.RoleSupervisor, models.RoleAdmin)(ok)

	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleClient, http.StatusForbidden},
		{models.RoleInspector, http.StatusForbidden},
		{models.RoleSupervisor, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.Role("weird"), http.StatusForbidden},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, roleRequest(c.role))
		assert.Equal(t, c.want, rec.Code, "role %s", c.role)
	}
}

func TestRequireRoleNoSession(t *testing.T) {
	guard := RequireRole(models.RoleClient)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
