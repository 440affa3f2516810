package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/emapp/employee-manager/internal/core/domain"
	"github.com/emapp/employee-manager/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenBlacklist abstracts the revocation store (Redis). Revoke and IsRevoked
// are single keyed operations, so a revoked jti can never be observed as live
// again even when a refresh races a logout.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService verifies credentials and manages the session token lifecycle.
type AuthService struct {
	repo       ports.UserRepository
	blacklist  TokenBlacklist
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, blacklist TokenBlacklist, jwtSecret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		blacklist:  blacklist,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Login verifies the email/password pair, updates the last-login timestamp
// and issues a fresh access/refresh pair. Unknown email, wrong password and
// deactivated accounts all collapse into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	access, err := s.signToken(user, tokenTypeAccess, now, s.accessTTL)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	refresh, err := s.signToken(user, tokenTypeRefresh, now, s.refreshTTL)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	// Recording the login is part of the operation, not telemetry: a login
	// either completes in full or fails.
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
		return nil, ports.TokenPair{}, fmt.Errorf("record last login: %w", err)
	}
	user.LastLogin = now

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return user, ports.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and mints a new access token carrying the
// same identity and role claims.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	jti, _ := claims["jti"].(string)
	revoked, err := s.blacklist.IsRevoked(ctx, jti)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}

	sub, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	user := &domain.User{ID: sub, Role: role}
	return s.signToken(user, tokenTypeAccess, time.Now().UTC(), s.accessTTL)
}

// Logout revokes the refresh token for its remaining lifetime. Subsequent
// Refresh calls with the same token fail with ErrTokenRevoked.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)

	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		ttl = time.Minute
	}

	if err := s.blacklist.Revoke(ctx, jti, ttl); err != nil {
		return err
	}

	s.log.Info().Str("jti", jti).Msg("refresh token revoked")
	return nil
}

func (s *AuthService) signToken(user *domain.User, typ string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"typ":  typ,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(token, wantType string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
