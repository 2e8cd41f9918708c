package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/service"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t   *testing.T
	h   http.Handler
	cfg *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Env:           "test",
		JWTSecret:     "e2e-secret",
		StoreDriver:   config.StoreMemory,
		BcryptCost:    bcrypt.MinCost,
		ShutdownGrace: time.Second,
		Redis:         config.RedisConfig{CacheTTL: time.Minute},
		SuperAdmin:    config.SuperAdminConfig{Email: "root@example.com", Password: "rootpass"},
	}
	app, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	return &testServer{t: t, h: app.Handler(), cfg: cfg}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *testServer) login(role, email, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/"+role+"/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code, env.Message)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (s *testServer) create(path, token string, body any) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, path, token, body)
	require.Equal(s.t, http.StatusCreated, code, env.Message)
	var data struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func listEmails(t *testing.T, env envelope) []string {
	t.Helper()
	var rows []struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Email
	}
	return out
}

func TestE2E_ProvisioningChain(t *testing.T) {
	s := newTestServer(t)
	root := s.login("super-admin", "root@example.com", "rootpass")

	s.create("/api/super-admin/admins", root, map[string]string{"email": "a@x.com", "password": "secret1"})
	admin := s.login("admin", "a@x.com", "secret1")

	s.create("/api/admin/clients", admin, map[string]string{"email": "c@x.com", "password": "secret1", "business_name": "Shop"})
	client := s.login("client", "c@x.com", "secret1")

	s.create("/api/client/users", client, map[string]any{"email": "u@x.com", "password": "secret1"})
	user := s.login("user", "u@x.com", "secret1")

	code, env := s.do(http.MethodGet, "/api/users/profile", user, nil)
	require.Equal(t, http.StatusOK, code)
	var profile domain.User
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "u@x.com", profile.Email)
	assert.True(t, profile.LoginApproved)

	code, env = s.do(http.MethodGet, "/api/auth/me", client, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"role":"client"`)
}

func TestE2E_SelfRegistrationAwaitsApproval(t *testing.T) {
	s := newTestServer(t)
	root := s.login("super-admin", "root@example.com", "rootpass")

	id := s.create("/api/auth/user/register", "", map[string]string{"email": "u@x.com", "password": "secret1"})

	creds := map[string]string{"email": "u@x.com", "password": "secret1"}
	code, env := s.do(http.MethodPost, "/api/auth/user/login", "", creds)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "not approved")

	code, env = s.do(http.MethodGet, "/api/super-admin/pending-approvals", root, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), id)

	code, _ = s.do(http.MethodPost, "/api/super-admin/approve-login/user/"+id, root, nil)
	require.Equal(t, http.StatusOK, code)

	token := s.login("user", "u@x.com", "secret1")
	claims, err := service.NewTokenService(s.cfg.JWTSecret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, id, claims.AccountID())
}

func TestE2E_ClientListingIsScoped(t *testing.T) {
	s := newTestServer(t)
	root := s.login("super-admin", "root@example.com", "rootpass")

	s.create("/api/super-admin/admins", root, map[string]string{"email": "a1@x.com", "password": "secret1"})
	s.create("/api/super-admin/admins", root, map[string]string{"email": "a2@x.com", "password": "secret1"})
	a1 := s.login("admin", "a1@x.com", "secret1")
	a2 := s.login("admin", "a2@x.com", "secret1")

	s.create("/api/admin/clients", a1, map[string]string{"email": "c1@x.com", "password": "secret1"})
	c2 := s.create("/api/admin/clients", a2, map[string]string{"email": "c2@x.com", "password": "secret1"})

	code, env := s.do(http.MethodGet, "/api/admin/clients", a1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"c1@x.com"}, listEmails(t, env))

	code, env = s.do(http.MethodGet, "/api/admin/clients", root, nil)
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []string{"c1@x.com", "c2@x.com"}, listEmails(t, env))

	code, env = s.do(http.MethodPut, "/api/admin/clients/"+c2, a1, map[string]string{"business_name": "hijack"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Client not found", env.Message)
}

func TestE2E_GatesAndErrors(t *testing.T) {
	s := newTestServer(t)
	root := s.login("super-admin", "root@example.com", "rootpass")
	adminID := s.create("/api/super-admin/admins", root, map[string]string{"email": "a@x.com", "password": "secret1"})
	admin := s.login("admin", "a@x.com", "secret1")

	code, env := s.do(http.MethodGet, "/api/super-admin/admins", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "no token provided, authentication required", env.Message)

	code, _ = s.do(http.MethodGet, "/api/super-admin/admins", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/super-admin/admins", admin, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, "/api/super-admin/reject-login/client/"+adminID, root, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "clients do not require approval", env.Message)

	code, env = s.do(http.MethodPost, "/api/auth/admin/login", "", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "email and password are required", env.Message)

	code, env = s.do(http.MethodPost, "/api/super-admin/admins", root, map[string]string{"email": "A@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Admin already exists with this email", env.Message)

	// Deactivation revokes the still-valid admin token on the next request.
	code, _ = s.do(http.MethodDelete, "/api/super-admin/admins/"+adminID, root, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, "/api/admin/clients", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "user account is inactive", env.Message)
}

func TestE2E_SuperAdminImmutable(t *testing.T) {
	s := newTestServer(t)
	root := s.login("super-admin", "root@example.com", "rootpass")

	code, env := s.do(http.MethodGet, "/api/auth/me", root, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))

	code, env = s.do(http.MethodPost, "/api/super-admin/reject-login/admin/"+me.User.ID, root, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "cannot modify super admin permissions", env.Message)

	s.login("super-admin", "root@example.com", "rootpass")
}

func TestE2E_Health(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/health", "/api/health/ready"} {
		rec := httptest.NewRecorder()
		s.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`, path)
	}
}
