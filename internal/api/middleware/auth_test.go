package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviehub/internal/api/models"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) IssueToken(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func probeRouter(auths service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(auths)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/probe", handlers...)
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	auths := new(MockAuthService)
	router := probeRouter(auths)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	auths.AssertNotCalled(t, "Authenticate")
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	auths := new(MockAuthService)
	router := probeRouter(auths)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auths := new(MockAuthService)
	router := probeRouter(auths)

	auths.On("Authenticate", mock.Anything, "bogus").Return(nil, service.ErrInvalidToken)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_SetsUserContext(t *testing.T) {
	auths := new(MockAuthService)
	router := probeRouter(auths)

	auths.On("Authenticate", mock.Anything, "good-token").Return(&models.User{
		ID:       "user-1",
		Email:    "test@gmail.com",
		IsActive: true,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_TokenScheme(t *testing.T) {
	auths := new(MockAuthService)
	router := probeRouter(auths)

	auths.On("Authenticate", mock.Anything, "good-token").Return(&models.User{
		ID:       "user-1",
		IsActive: true,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireStaff(t *testing.T) {
	auths := new(MockAuthService)
	router := probeRouter(auths, RequireStaff())

	auths.On("Authenticate", mock.Anything, "user-token").Return(&models.User{
		ID:       "user-1",
		IsActive: true,
		IsStaff:  false,
	}, nil)
	auths.On("Authenticate", mock.Anything, "staff-token").Return(&models.User{
		ID:       "staff-1",
		IsActive: true,
		IsStaff:  true,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
