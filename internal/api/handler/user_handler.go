package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emapp/employee-manager/internal/api/metrics"
	"github.com/emapp/employee-manager/internal/core/domain"
	"github.com/emapp/employee-manager/internal/core/ports"
)

// UserHandler wires HTTP endpoints for the identity lifecycle: employee
// registration, listing, retrieval, updates, deletion and password flows.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterEmployee creates an Employee account on behalf of a Manager.
// The temporary password is generated server-side and mailed; it never
// appears in the response.
//
// @Summary      Register an Employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Employee details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/employees [post]
func (h *UserHandler) RegisterEmployee(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.users.RegisterEmployee(c.Request().Context(), actor, ports.RegisterInput{
		Email:       req.Email,
		Phone:       req.Phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Address: ports.AddressInput{
			Line1:   req.Address.Line1,
			Line2:   req.Address.Line2,
			City:    req.Address.City,
			State:   req.Address.State,
			Country: req.Address.Country,
			ZipCode: req.Address.ZipCode,
		},
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleEmployee)).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// ListUsers returns a summary of every account. SuperUser only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersListResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.users.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, usersListResponse{Users: toSummaries(users)})
}

// ListEmployees returns a summary of every Employee. Manager only.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  employeesListResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees [get]
func (h *UserHandler) ListEmployees(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	employees, err := h.users.ListEmployees(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, employeesListResponse{Employees: toSummaries(employees)})
}

// GetEmployee retrieves one Employee by id. Manager only.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees/{id} [get]
func (h *UserHandler) GetEmployee(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetEmployee(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateEmployee applies a partial update to an Employee. Manager only.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /employees/{id} [patch]
func (h *UserHandler) UpdateEmployee(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.users.UpdateEmployee(c.Request().Context(), actor, c.Param("id"), ports.EmployeePatch{
		Email:       req.Email,
		Phone:       req.Phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Address: ports.AddressPatch{
			Line1:   req.Address.Line1,
			Line2:   req.Address.Line2,
			City:    req.Address.City,
			State:   req.Address.State,
			Country: req.Address.Country,
			ZipCode: req.Address.ZipCode,
		},
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteEmployee removes an Employee together with its address. Manager only.
//
// @Summary      Delete an employee
// @Tags         employees
// @Security     BearerAuth
// @Param        id  path  string  true  "Employee id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees/{id} [delete]
func (h *UserHandler) DeleteEmployee(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteEmployee(c.Request().Context(), actor, c.Param("id")); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword issues a new temporary password after email confirmation.
// No authentication required; the email on file is the shared secret.
//
// @Summary      Forgot password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "User id"
// @Param        body  body      forgotPasswordRequest  true  "Email on file"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/forgot-password [patch]
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.users.ForgotPassword(c.Request().Context(), c.Param("id"), req.Email); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("forgot", "failure").Inc()
		return respondError(c, err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("forgot", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "password reset successful, new password sent to your email address",
	})
}

// ResetPassword replaces the caller's own password after re-verifying the
// current one.
//
// @Summary      Reset password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id (must be the caller)"
// @Param        body  body      resetPasswordRequest  true  "Password change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/{id}/reset-password [patch]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.users.ResetPassword(c.Request().Context(), actor, c.Param("id"),
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("reset", "failure").Inc()
		return respondError(c, err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("reset", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset successful"})
}

func toSummaries(users []ports.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userSummaryResponse{
			ID:        u.ID,
			Email:     u.Email,
			Phone:     u.Phone,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	return out
}
