package ports

import (
	"context"

	"github.com/emapp/employee-manager/internal/core/domain"
)

// TokenPair carries the two JWTs issued on a successful login.
type TokenPair struct {
	Access  string
	Refresh string
}

type AuthService interface {
	// Login verifies the credentials, records the login time and issues a
	// fresh token pair.
	Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error)

	// Refresh mints a new access token from a live refresh token. A revoked
	// or non-refresh token fails with domain.ErrTokenRevoked or
	// domain.ErrInvalidToken respectively.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Logout revokes the refresh token for the remainder of its lifetime.
	Logout(ctx context.Context, refreshToken string) error
}
