package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/internal/service"
	"github.com/viewtube/user-service/models"
)

// ---- Mock: AuthService ----

type mockAuthSvc struct{}

func (m *mockAuthSvc) Register(_ context.Context, _ service.RegisterInput) (models.User, error) {
	return models.User{UserID: 1}, nil
}
func (m *mockAuthSvc) Login(_ context.Context, _, _ string) (models.TokenPair, error) {
	return models.TokenPair{}, nil
}
func (m *mockAuthSvc) Logout(_ context.Context, _ string) error {
	return nil
}
func (m *mockAuthSvc) Authenticate(_ context.Context, _ string) (models.Token, error) {
	return models.Token{UserID: 1}, nil
}
func (m *mockAuthSvc) CurrentUser(_ context.Context, _ int64) (models.User, error) {
	return models.User{UserID: 1}, nil
}

// ---- Helper ----

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: &mockAuthSvc{},
		},
	}
	return h.Init()
}

func validAuthHeader() string { return "Bearer stub-token" }

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/users/register"},
		{http.MethodPost, "/api/v1/users/login"},
		{http.MethodPost, "/api/v1/users/logout"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.NotEqual(t, http.StatusNotFound, rr.Code,
				"route should be registered: %s %s", tt.method, tt.path)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code,
				"public route should not require auth: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "missing token should result in 401")
}

// ---- Protected routes: pass with valid token ----

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "valid token should reach the handler")
}

// ---- Unknown routes return 404 ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/totally/wrong"},
		{http.MethodPost, "/api/v1/users/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// ---- X-Trace-ID is always present in the response ----

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))
}

// ---- Incoming X-Trace-ID is echoed back ----

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	router := newTestRouter(t)
	const customTraceID = "my-custom-trace-id-12345"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.Header.Set("X-Trace-ID", customTraceID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, customTraceID, rr.Header().Get("X-Trace-ID"))
}
