package ports

import (
	"context"
	"time"

	"github.com/emapp/employee-manager/internal/core/domain"
)

// UserRepository defines the persistence contract for identity records.
// Email and phone carry unique constraints in the backing store; violations
// surface as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)

	// FindEmployeeByID resolves the (id, role=Employee) scope. A user that
	// exists under another role yields domain.ErrEmployeeNotFound.
	FindEmployeeByID(ctx context.Context, id string) (*domain.User, error)

	ListAll(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// DeleteEmployee removes the employee record together with its embedded
	// address as one atomic write.
	DeleteEmployee(ctx context.Context, id string) error
}
