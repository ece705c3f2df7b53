package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusdir/internal/middleware"
	"campusdir/internal/models"
	"campusdir/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type fakeAuthService struct {
	registerUser *models.User
	registerErr  error
	loginToken   string
	loginErr     error
	logoutErr    error
}

func (f *fakeAuthService) Register(username, email, password string, role models.Role, department models.Department) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerUser, nil
}

func (f *fakeAuthService) Login(email, password string) (string, time.Time, error) {
	if f.loginErr != nil {
		return "", time.Time{}, f.loginErr
	}
	return f.loginToken, time.Now().Add(time.Hour), nil
}

func (f *fakeAuthService) Logout(token string) error { return f.logoutErr }

func (f *fakeAuthService) ValidateToken(token string) (*models.Claims, error) { return nil, nil }

func setAuthContext(userID string, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextToken, token)
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, logrus.New())
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", setAuthContext("u1", "tok"), h.Logout)
	return r
}

func TestRegisterHandler(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{registerUser: &models.User{ID: "u1"}})

	w := postJSON(r, "/api/auth/register", `{"username":"anu","email":"anu@college.edu","password":"pass","role":"Student","department":"CSE"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "u1") {
		t.Fatalf("response missing user id: %s", w.Body.String())
	}
}

func TestRegisterHandler_MissingFields(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{})

	w := postJSON(r, "/api/auth/register", `{"username":"anu"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{registerErr: service.ErrEmailTaken})

	w := postJSON(r, "/api/auth/register", `{"username":"anu","email":"anu@college.edu","password":"pass","role":"Student","department":"CSE"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginHandler(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{loginToken: "signed-token"})

	w := postJSON(r, "/api/auth/login", `{"email":"anu@college.edu","password":"pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "signed-token") {
		t.Fatalf("response missing token: %s", w.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{loginErr: service.ErrInvalidCredentials})

	w := postJSON(r, "/api/auth/login", `{"email":"anu@college.edu","password":"bad"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLogoutHandler(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{})

	w := postJSON(r, "/api/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
