package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"spendtrack/internal/auth"
	"spendtrack/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newGateFixture(jwtService *auth.JWTService, users *MockUserRepository) *echo.Echo {
	e := echo.New()
	e.GET("/public", func(c echo.Context) error {
		return c.String(http.StatusOK, "public")
	})
	secured := e.Group("", Authenticate(jwtService, users))
	secured.GET("/protected", func(c echo.Context) error {
		// The resolved principal is available to handlers behind the gate.
		return c.String(http.StatusOK, Principal(c).Email)
	})
	return e
}

func TestAuthenticate_BlocksByDefault(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing token", header: ""},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			e := newGateFixture(jwtService, users)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// No user lookup happens before the token verifies.
			users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expiredIssuer := auth.NewJWTService("test-secret", -time.Minute)
	jwtService := auth.NewJWTService("test-secret", time.Hour)

	token, err := expiredIssuer.Issue("alice@example.com")
	assert.NoError(t, err)

	users := new(MockUserRepository)
	e := newGateFixture(jwtService, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ResolvesPrincipal(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.Issue("alice@example.com")
	assert.NoError(t, err)

	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{ID: 1, Email: "alice@example.com"}, nil)

	e := newGateFixture(jwtService, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Body.String())

	users.AssertExpectations(t)
}

func TestAuthenticate_DeletedUserRejected(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.Issue("ghost@example.com")
	assert.NoError(t, err)

	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	e := newGateFixture(jwtService, users)

	// The token is still signature-valid, but the account is gone.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}

func TestAuthenticate_PublicPathUntouched(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	users := new(MockUserRepository)
	e := newGateFixture(jwtService, users)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public", rec.Body.String())
}
