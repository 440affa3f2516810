package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/emapp/employee-manager/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		Phone:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if !active {
		repo.users[user.ID].IsActive = false
	}
	return user
}

func newAuthService(repo *stubUserRepo, blacklist *stubBlacklist) *AuthService {
	return NewAuthService(repo, blacklist, "secret", 15*time.Minute, time.Hour, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seeded := seedUser(t, repo, "m@x.com", "secret1", domain.RoleManager, true)

	user, pair, err := svc.Login(context.Background(), "m@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if user.LastLogin.IsZero() {
		t.Fatalf("expected last login to be set")
	}
	if stored := repo.users[seeded.ID]; stored.LastLogin.IsZero() {
		t.Fatalf("last login not persisted")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(pair.Access, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleManager) {
		t.Fatalf("expected Manager role claim, got %v", claims["role"])
	}
	if claims["typ"] != "access" {
		t.Fatalf("expected access typ, got %v", claims["typ"])
	}
	if claims["sub"] != seeded.ID {
		t.Fatalf("expected sub %s, got %v", seeded.ID, claims["sub"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seedUser(t, repo, "m@x.com", "secret1", domain.RoleManager, true)

	if _, _, err := svc.Login(context.Background(), "m@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubBlacklist())

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seedUser(t, repo, "m@x.com", "secret1", domain.RoleManager, false)

	if _, _, err := svc.Login(context.Background(), "m@x.com", "secret1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_LastLoginWriteFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seedUser(t, repo, "m@x.com", "secret1", domain.RoleManager, true)
	repo.lastLoginErr = errors.New("write timeout")

	if _, _, err := svc.Login(context.Background(), "m@x.com", "secret1"); err == nil {
		t.Fatalf("expected login to fail when the last-login write fails")
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seeded := seedUser(t, repo, "e@x.com", "secret1", domain.RoleEmployee, true)

	_, pair, err := svc.Login(context.Background(), "e@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(access, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("minted token invalid: %v", err)
	}
	if claims["sub"] != seeded.ID || claims["typ"] != "access" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Refresh_WithAccessToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seedUser(t, repo, "e@x.com", "secret1", domain.RoleEmployee, true)

	_, pair, _ := svc.Login(context.Background(), "e@x.com", "secret1")

	if _, err := svc.Refresh(context.Background(), pair.Access); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubBlacklist())

	if _, err := svc.Refresh(context.Background(), "not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Logout_RevokesRefresh(t *testing.T) {
	repo := newStubUserRepo()
	blacklist := newStubBlacklist()
	svc := newAuthService(repo, blacklist)
	seedUser(t, repo, "e@x.com", "secret1", domain.RoleEmployee, true)

	_, pair, _ := svc.Login(context.Background(), "e@x.com", "secret1")

	if err := svc.Logout(context.Background(), pair.Refresh); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// The revoked token must never mint an access token again.
	if _, err := svc.Refresh(context.Background(), pair.Refresh); err != domain.ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
	// A second attempt stays revoked.
	if _, err := svc.Refresh(context.Background(), pair.Refresh); err != domain.ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked on retry, got %v", err)
	}
}

func TestAuthService_Logout_DoesNotRevokeOtherSessions(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubBlacklist())
	seedUser(t, repo, "e@x.com", "secret1", domain.RoleEmployee, true)

	_, first, _ := svc.Login(context.Background(), "e@x.com", "secret1")
	_, second, _ := svc.Login(context.Background(), "e@x.com", "secret1")

	if err := svc.Logout(context.Background(), first.Refresh); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), second.Refresh); err != nil {
		t.Fatalf("second session should survive: %v", err)
	}
}
