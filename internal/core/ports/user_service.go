package ports

import (
	"context"

	"github.com/emapp/employee-manager/internal/core/domain"
)

// AddressInput carries address fields for registration.
type AddressInput struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Country string
	ZipCode string
}

// RegisterInput carries the fields for creating an account. Password is
// ignored for employee registration, where the secret is always generated.
type RegisterInput struct {
	Email       string
	Phone       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth string
	Address     AddressInput
}

// AddressPatch holds a partial address update. Nil means "leave unchanged";
// each sub-field merges independently of the top-level fields.
type AddressPatch struct {
	Line1   *string
	Line2   *string
	City    *string
	State   *string
	Country *string
	ZipCode *string
}

// EmployeePatch holds a partial employee update. Nil fields keep their
// stored values.
type EmployeePatch struct {
	Email       *string
	Phone       *string
	FirstName   *string
	LastName    *string
	DateOfBirth *string
	Address     AddressPatch
}

// UserSummary is the lightweight projection used by list endpoints.
type UserSummary struct {
	ID        string
	Email     string
	Phone     string
	FirstName string
	LastName  string
}

type UserService interface {
	RegisterSuperUser(ctx context.Context, in RegisterInput) (*domain.User, error)
	RegisterManager(ctx context.Context, in RegisterInput) (*domain.User, error)
	RegisterEmployee(ctx context.Context, actor domain.Actor, in RegisterInput) (*domain.User, error)

	ListUsers(ctx context.Context, actor domain.Actor) ([]UserSummary, error)
	ListEmployees(ctx context.Context, actor domain.Actor) ([]UserSummary, error)

	GetEmployee(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	UpdateEmployee(ctx context.Context, actor domain.Actor, id string, patch EmployeePatch) (*domain.User, error)
	DeleteEmployee(ctx context.Context, actor domain.Actor, id string) error

	ForgotPassword(ctx context.Context, id, claimedEmail string) error
	ResetPassword(ctx context.Context, actor domain.Actor, id, current, newSecret, confirm string) error
}
