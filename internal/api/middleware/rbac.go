package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emapp/employee-manager/internal/core/domain"
)

// RequireOperation rejects requests whose actor role is not permitted to
// perform op. It is a transport-level early gate; the lifecycle service
// re-checks the same policy matrix with the explicit actor.
func RequireOperation(op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, _ := c.Get("role").(string)
			role, err := domain.ParseRole(roleStr)
			if err != nil || !role.Can(op) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
