package domain

import "time"

// Role is the closed set of account roles. External input must go through
// ParseRole; nothing else in the codebase compares raw role strings.
type Role string

const (
	RoleEmployee  Role = "Employee"
	RoleManager   Role = "Manager"
	RoleSuperUser Role = "SuperUser"
)

// ParseRole converts an external string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleSuperUser:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Actor identifies the authenticated account performing an operation,
// resolved from its access token by the transport layer.
type Actor struct {
	ID   string
	Role Role
}

// Address is owned by exactly one user. It is stored embedded in the user
// document, so deleting the user removes the address in the same write.
type Address struct {
	Line1   string `json:"address_line1"`
	Line2   string `json:"address_line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

// User is the core identity record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	Address      Address   `json:"address"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsStaff      bool      `json:"is_staff"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}
