package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/services"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newTestEngine(auth Authenticator, class policy.ResourceClass) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), AuthMiddleware(auth))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CallerFrom(c).Username})
	}
	engine.GET("/resource", Authorize(class), handler)
	engine.POST("/resource", Authorize(class), handler)
	return engine
}

func perform(engine *gin.Engine, method, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/resource", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AnonymousCaller(t *testing.T) {
	auth := new(mockAuthenticator)
	engine := newTestEngine(auth, policy.Catalog)

	w := perform(engine, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":""}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = perform(engine, http.MethodPost, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth := new(mockAuthenticator)
	auth.On("Authenticate", mock.Anything, "good").
		Return(&models.User{ID: 7, Username: "alice", Role: models.RoleUser}, nil)
	engine := newTestEngine(auth, policy.Catalog)

	w := perform(engine, http.MethodGet, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())

	w = perform(engine, http.MethodPost, "Bearer good")
	assert.Equal(t, http.StatusForbidden, w.Code)

	auth.AssertExpectations(t)
}

func TestAuthMiddleware_AdminPasses(t *testing.T) {
	auth := new(mockAuthenticator)
	auth.On("Authenticate", mock.Anything, "admin").
		Return(&models.User{ID: 1, Username: "root", Role: models.RoleAdmin}, nil)
	engine := newTestEngine(auth, policy.Catalog)

	w := perform(engine, http.MethodPost, "Bearer admin")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RejectsBadCredentials(t *testing.T) {
	auth := new(mockAuthenticator)
	auth.On("Authenticate", mock.Anything, "expired").Return(nil, services.ErrUnauthenticated)
	engine := newTestEngine(auth, policy.Catalog)

	w := perform(engine, http.MethodGet, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)

	w = perform(engine, http.MethodGet, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	engine := newTestEngine(new(mockAuthenticator), policy.Catalog)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "client-id", w.Header().Get(RequestIDHeader))
}
