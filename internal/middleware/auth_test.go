package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusdir/internal/models"
	"campusdir/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	claims *models.Claims
	err    error
}

func (f *fakeAuthService) Register(username, email, password string, role models.Role, department models.Department) (*models.User, error) {
	return nil, nil
}

func (f *fakeAuthService) Login(email, password string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (f *fakeAuthService) Logout(token string) error { return nil }

func (f *fakeAuthService) ValidateToken(token string) (*models.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newTestRouter(auth service.AuthService, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(auth, zap.NewNop())}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet(ContextUserID)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newTestRouter(&fakeAuthService{})
	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	r := newTestRouter(&fakeAuthService{})
	if w := doRequest(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_InvalidatedToken(t *testing.T) {
	r := newTestRouter(&fakeAuthService{err: service.ErrTokenInvalidated})
	if w := doRequest(r, "Bearer abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	r := newTestRouter(&fakeAuthService{err: errors.New("db down")})
	if w := doRequest(r, "Bearer abc"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := newTestRouter(&fakeAuthService{claims: &models.Claims{UserID: "u1", Role: models.RoleStudent}})
	if w := doRequest(r, "Bearer abc"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoles(t *testing.T) {
	admin := &fakeAuthService{claims: &models.Claims{UserID: "a1", Role: models.RoleAdmin}}
	student := &fakeAuthService{claims: &models.Claims{UserID: "s1", Role: models.RoleStudent}}

	if w := doRequest(newTestRouter(admin, models.RoleAdmin), "Bearer abc"); w.Code != http.StatusOK {
		t.Fatalf("admin should pass, got %d", w.Code)
	}
	if w := doRequest(newTestRouter(student, models.RoleAdmin, models.RoleHOD), "Bearer abc"); w.Code != http.StatusForbidden {
		t.Fatalf("student should be forbidden, got %d", w.Code)
	}
}
