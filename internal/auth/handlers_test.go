package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/internal/models"
	"propcheck/internal/repo"
	"propcheck/internal/security"
)

type credRepo struct {
	repo.Repo
	cred models.LocalCredential
	user models.User
}

func (f *credRepo) GetLocalCredentialByUsername(_ context.Context, username string) (models.LocalCredential, models.User, error) {
	if username != f.cred.Username {
		return models.LocalCredential{}, models.User{}, models.ErrUserNotFound
	}
	return f.cred, f.user, nil
}

func (f *credRepo) RecordLoginSuccess(_ context.Context, _ string, _ netip.Addr) error { return nil }
func (f *credRepo) RecordLoginFailure(_ context.Context, _ string, _ netip.Addr) error { return nil }

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:4242"
	return req
}

func TestLoginHandler(t *testing.T) {
	phc, err := HashPassword("hunter22hunter22", ArgonParams{Time: 1, Memory: 16 << 10, Threads: 1, SaltLen: 16, KeyLen: 32})
	require.NoError(t, err)

	uid := uuid.New()
	r := &credRepo{
		cred: models.LocalCredential{UserID: uid, Username: "dana@example.com", PasswordHash: phc},
		user: models.User{ID: uid, Email: "dana@example.com", Role: models.RoleInspector},
	}
	h := LoginHandler(r)

	t.Run("valid credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h(rec, loginRequest(`{"username":"dana@example.com","password":"hunter22hunter22"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h(rec, loginRequest(`{"username":"dana@example.com","password":"nope"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("denied user cannot re-login", func(t *testing.T) {
		security.DenyUser(uid)
		t.Cleanup(func() { security.AllowUser(uid) })

		rec := httptest.NewRecorder()
		h(rec, loginRequest(`{"username":"dana@example.com","password":"hunter22hunter22"}`))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}
