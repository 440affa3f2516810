package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUnknownRole      = errors.New("unknown role")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrEmailMismatch     = errors.New("email does not match account on file")
	ErrPasswordMismatch  = errors.New("new password and confirmation do not match")
	ErrIncorrectPassword = errors.New("current password is incorrect")
)
