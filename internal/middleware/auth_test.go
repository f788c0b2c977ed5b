package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/internal/auth"
	"propcheck/internal/models"
	"propcheck/internal/repo"
	"propcheck/internal/security"
	"propcheck/internal/session"
)

// userRepo embeds the interface so only GetUserByID needs a real
// implementation here.
type userRepo struct {
	repo.Repo
	user models.User
}

func (f *userRepo) GetUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	if id != f.user.ID {
		return models.User{}, models.ErrUserNotFound
	}
	return f.user, nil
}

func sessionRequest(t *testing.T, uid uuid.UUID, role models.Role) *http.Request {
	t.Helper()
	sid := session.DefaultStore.Create(models.Session{
		UserID:   uid,
		Role:     role,
		Provider: "local",
		Expiry:   time.Now().Add(time.Hour),
	})
	t.Cleanup(func() { session.DefaultStore.Delete(sid) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sid})
	return req
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthLoadsSessionAndUser(t *testing.T) {
	u := models.User{ID: uuid.New(), Email: "i@example.com", Role: models.RoleInspector}
	guard := RequireAuth(&userRepo{user: u})

	var gotSess *models.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSess, _ = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	guard(inner).ServeHTTP(rec, sessionRequest(t, u.ID, models.RoleInspector))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotSess)
	assert.Equal(t, u.ID, gotSess.UserID)
}

func TestRequireAuthNoCookie(t *testing.T) {
	var hit bool
	guard := RequireAuth(&userRepo{})
	rec := httptest.NewRecorder()
	guard(okHandler(&hit)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestRequireAuthRejectsDeniedUser(t *testing.T) {
	u := models.User{ID: uuid.New(), Email: "d@example.com", Role: models.RoleInspector}
	guard := RequireAuth(&userRepo{user: u})

	// a still-valid session cookie must stop working the moment the
	// account is denied
	req := sessionRequest(t, u.ID, models.RoleInspector)
	security.DenyUser(u.ID)
	t.Cleanup(func() { security.AllowUser(u.ID) })

	var hit bool
	rec := httptest.NewRecorder()
	guard(okHandler(&hit)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, hit)

	// and works again once allowed
	security.AllowUser(u.ID)
	rec = httptest.NewRecorder()
	guard(okHandler(&hit)).ServeHTTP(rec, sessionRequest(t, u.ID, models.RoleInspector))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hit)
}

func TestOptionalAuthPassesThroughUnauthenticated(t *testing.T) {
	guard := OptionalAuth(&userRepo{})

	var gotSess *models.Session
	var hit bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		gotSess, _ = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	guard(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hit)
	assert.Nil(t, gotSess)
}

func TestOptionalAuthInjectsSessionWhenPresent(t *testing.T) {
	u := models.User{ID: uuid.New(), Email: "o@example.com", Role: models.RoleClient}
	guard := OptionalAuth(&userRepo{user: u})

	var gotSess *models.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSess, _ = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	guard(inner).ServeHTTP(rec, sessionRequest(t, u.ID, models.RoleClient))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotSess)
	assert.Equal(t, u.ID, gotSess.UserID)
}
