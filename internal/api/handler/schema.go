package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type addressRequest struct {
	Line1   string `json:"address_line1" validate:"required"`
	Line2   string `json:"address_line2"`
	City    string `json:"city"          validate:"required"`
	State   string `json:"state"         validate:"required"`
	Country string `json:"country"       validate:"required"`
	ZipCode string `json:"zip_code"      validate:"required,len=6"`
}

// registerRequest covers SuperUser and Manager self-registration, where the
// caller chooses the password.
type registerRequest struct {
	Email       string         `json:"email"         validate:"required,email"`
	Phone       string         `json:"phone"         validate:"required,len=10"`
	Password    string         `json:"password"      validate:"required,min=8"`
	FirstName   string         `json:"first_name"    validate:"required"`
	LastName    string         `json:"last_name"     validate:"required"`
	DateOfBirth string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address     addressRequest `json:"address"       validate:"required"`
}

// employeeRequest deliberately has no password field: employee secrets are
// system-generated and delivered out-of-band.
type employeeRequest struct {
	Email       string         `json:"email"         validate:"required,email"`
	Phone       string         `json:"phone"         validate:"required,len=10"`
	FirstName   string         `json:"first_name"    validate:"required"`
	LastName    string         `json:"last_name"     validate:"required"`
	DateOfBirth string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address     addressRequest `json:"address"       validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type addressPatchRequest struct {
	Line1   *string `json:"address_line1"`
	Line2   *string `json:"address_line2"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	ZipCode *string `json:"zip_code" validate:"omitempty,len=6"`
}

// updateEmployeeRequest is a partial update: absent keys keep stored values.
type updateEmployeeRequest struct {
	Email       *string             `json:"email" validate:"omitempty,email"`
	Phone       *string             `json:"phone" validate:"omitempty,len=10"`
	FirstName   *string             `json:"first_name"`
	LastName    *string             `json:"last_name"`
	DateOfBirth *string             `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address     addressPatchRequest `json:"address"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type addressResponse struct {
	Line1   string `json:"address_line1"`
	Line2   string `json:"address_line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

// userResponse never carries a password or hash.
type userResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	DateOfBirth string          `json:"date_of_birth"`
	Address     addressResponse `json:"address"`
	Role        string          `json:"role"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type userSummaryResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type usersListResponse struct {
	Users []userSummaryResponse `json:"users"`
}

type employeesListResponse struct {
	Employees []userSummaryResponse `json:"employees"`
}

type loginResponse struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

type messageResponse struct {
	Message string `json:"message"`
}
