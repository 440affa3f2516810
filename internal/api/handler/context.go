package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emapp/employee-manager/internal/core/domain"
)

// ctxActor builds the acting identity from the claims injected by the Auth
// middleware. Presence of a parseable role proves the middleware ran; the
// actor is then threaded explicitly into every service call.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if id == "" || roleStr == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unrecognised role claim")
	}

	return domain.Actor{ID: id, Role: role}, nil
}

// respondError maps domain errors onto their HTTP status and the canonical
// error envelope. Unknown errors fall through as 500 with a generic message.
func respondError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "employee not found"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrEmailMismatch):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPasswordMismatch), errors.Is(err, domain.ErrIncorrectPassword):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Phone:       u.Phone,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DateOfBirth: u.DateOfBirth,
		Address: addressResponse{
			Line1:   u.Address.Line1,
			Line2:   u.Address.Line2,
			City:    u.Address.City,
			State:   u.Address.State,
			Country: u.Address.Country,
			ZipCode: u.Address.ZipCode,
		},
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
