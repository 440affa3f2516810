package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/emapp/employee-manager/internal/core/domain"
	"github.com/emapp/employee-manager/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
	logoutFn  func(ctx context.Context, refreshToken string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.logoutFn(ctx, refreshToken)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validRegisterBody = `{
	"email": "alice@example.com",
	"phone": "5512345678",
	"password": "s3cret-pass",
	"first_name": "Alice",
	"last_name": "Smith",
	"date_of_birth": "1990-04-12",
	"address": {
		"address_line1": "12 Main St",
		"city": "Springfield",
		"state": "IL",
		"country": "US",
		"zip_code": "627010"
	}
}`

func TestAuthHandler_RegisterSuperUser_Success(t *testing.T) {
	users := &stubUserService{
		registerSuperUserFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Password != "s3cret-pass" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Role: domain.RoleSuperUser, IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(users, &stubAuthService{})

	c, rec := newTestContext(http.MethodPost, "/auth/superuser", validRegisterBody)
	if err := handler.RegisterSuperUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["role"] != "SuperUser" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must never appear in a response")
	}
}

func TestAuthHandler_RegisterManager_Duplicate(t *testing.T) {
	users := &stubUserService{
		registerManagerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(users, &stubAuthService{})

	c, rec := newTestContext(http.MethodPost, "/auth/manager", validRegisterBody)
	_ = handler.RegisterManager(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	users := &stubUserService{
		registerSuperUserFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(users, &stubAuthService{})

	c, rec := newTestContext(http.MethodPost, "/auth/superuser", `{"email":"not-an-email"}`)
	_ = handler.RegisterSuperUser(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
			if email != "alice@example.com" || password != "s3cret-pass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			user := &domain.User{Email: email, Role: domain.RoleManager}
			return user, ports.TokenPair{Access: "acc123", Refresh: "ref456"}, nil
		},
	}
	handler := NewAuthHandler(&stubUserService{}, auth)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret-pass"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["role"] != "Manager" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["access"] != "acc123" || resp["refresh"] != "ref456" {
		t.Fatalf("expected both tokens, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
			return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(&stubUserService{}, auth)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	auth := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			if refreshToken != "ref456" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return "acc789", nil
		},
	}
	handler := NewAuthHandler(&stubUserService{}, auth)

	c, rec := newTestContext(http.MethodPost, "/auth/refresh", `{"refresh":"ref456"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "acc789") {
		t.Fatalf("expected new access token in body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Refresh_Revoked(t *testing.T) {
	auth := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			return "", domain.ErrTokenRevoked
		},
	}
	handler := NewAuthHandler(&stubUserService{}, auth)

	c, rec := newTestContext(http.MethodPost, "/auth/refresh", `{"refresh":"ref456"}`)
	_ = handler.Refresh(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	var revoked string
	auth := &stubAuthService{
		logoutFn: func(ctx context.Context, refreshToken string) error {
			revoked = refreshToken
			return nil
		},
	}
	handler := NewAuthHandler(&stubUserService{}, auth)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", `{"refresh":"ref456"}`)
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != "ref456" {
		t.Fatalf("expected the presented token to be revoked, got %q", revoked)
	}
	if !strings.Contains(rec.Body.String(), "logout successful") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout_InvalidToken(t *testing.T) {
	auth := &stubAuthService{
		logoutFn: func(ctx context.Context, refreshToken string) error {
			return domain.ErrInvalidToken
		},
	}
	handler := NewAuthHandler(&stubUserService{}, auth)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", `{"refresh":"garbage"}`)
	_ = handler.Logout(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
