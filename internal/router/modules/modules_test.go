package modules

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/user-auth-service/config"
	"github.com/oksasatya/user-auth-service/internal/container"
	"github.com/oksasatya/user-auth-service/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		AppName:         "user-auth-service",
		Port:            "3000",
		StoreDriver:     config.StoreMemory,
		JWTAccessSecret: "test-secret",
		AccessTTL:       time.Hour,
		JWTIssuer:       "user-auth-service",
		BcryptCost:      bcrypt.MinCost,
	}
	c, err := container.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	engine, err := NewEngine(c)
	require.NoError(t, err)
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path string, body any, token string) (int, envelope) {
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
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) register(email, password, name string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/users", map[string]any{"email": email, "password": password, "name": name}, "")
	require.Equal(s.t, http.StatusCreated, code, string(env.Error))
	var u struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &u))
	return u.ID
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(s.t, http.StatusOK, code, env.Message)
	var tok struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		ExpiresAt   time.Time `json:"expires_at"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tok))
	require.Equal(s.t, "Bearer", tok.TokenType)
	require.NotEmpty(s.t, tok.AccessToken)
	return tok.AccessToken
}

func TestAliceLoginScenario(t *testing.T) {
	s := newTestServer(t)
	id := s.register("alice@example.com", "secret123", "Alice")

	token := s.login("alice@example.com", "secret123")

	code, env := s.do(http.MethodGet, "/profile", nil, token)
	require.Equal(t, http.StatusOK, code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, id, profile["id"])
	assert.NotContains(t, profile, "password")

	code, env = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "alice@example.com", "password": "secret124"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", env.Message)

	_, unknown := s.do(http.MethodPost, "/auth/login", map[string]string{"email": "nobody@example.com", "password": "secret123"}, "")
	assert.Equal(t, env.Message, unknown.Message)
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"name":"user-auth-service","message":"Hello World!"}`, string(env.Data))

	code, _ = s.do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestProtectedRoutesRejectMissingOrBadToken(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/profile"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/search?q=a"},
		{http.MethodGet, "/users/abc"},
		{http.MethodPatch, "/users/abc"},
		{http.MethodDelete, "/users/abc"},
	} {
		for _, token := range []string{"", "not-a-token"} {
			code, env := s.do(tc.method, tc.path, nil, token)
			assert.Equal(t, http.StatusUnauthorized, code, tc.method+" "+tc.path)
			assert.Equal(t, "unauthorized", env.Message)
		}
	}
}

func TestUserCRUD(t *testing.T) {
	s := newTestServer(t)
	id := s.register("alice@example.com", "secret123", "Alice")
	token := s.login("alice@example.com", "secret123")

	code, env := s.do(http.MethodPost, "/users", map[string]any{"email": "ALICE@example.com", "password": "other123"}, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "user with this email already exists", env.Message)

	code, env = s.do(http.MethodPost, "/users", map[string]any{"email": "bob", "password": "123"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "email")
	assert.Contains(t, string(env.Error), "password")

	code, env = s.do(http.MethodGet, "/users", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "$2a$")

	code, _ = s.do(http.MethodGet, "/users/"+id, nil, token)
	assert.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, "/users/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "user not found", env.Message)

	code, env = s.do(http.MethodPatch, "/users/"+id, map[string]any{"name": "Alice B", "password": "newsecret1"}, token)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Alice B")
	s.login("alice@example.com", "newsecret1")

	code, env = s.do(http.MethodPatch, "/users/missing", map[string]any{"name": "x"}, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "user not found or no changes made", env.Message)

	code, env = s.do(http.MethodGet, "/users/search?q=alice", nil, token)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/users/search", nil, token)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodDelete, "/users/"+id, nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"removed":true}`, string(env.Data))

	code, _ = s.do(http.MethodDelete, "/users/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/users", nil, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "there are no users", env.Message)
}

func TestOverlongPasswordIsClientError(t *testing.T) {
	s := newTestServer(t)
	long := strings.Repeat("a", 73)

	code, env := s.do(http.MethodPost, "/users", map[string]any{"email": "long@example.com", "password": long}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid payload", env.Message)
	assert.Contains(t, string(env.Error), "password")

	id := s.register("alice@example.com", "secret123", "Alice")
	token := s.login("alice@example.com", "secret123")

	code, env = s.do(http.MethodPatch, "/users/"+id, map[string]any{"password": long}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "password")

	s.login("alice@example.com", "secret123")
}
