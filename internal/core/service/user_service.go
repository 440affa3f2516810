package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/emapp/employee-manager/internal/core/domain"
	"github.com/emapp/employee-manager/internal/core/ports"
)

// UserService orchestrates the identity lifecycle: registration, listing,
// partial updates, deletion and the two password flows. Every role-gated
// operation consults the domain policy matrix with an explicit actor.
type UserService struct {
	repo     ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, notifier: notifier, log: log}
}

// RegisterSuperUser creates a SuperUser account. Bootstrap operation: no
// actor required, the caller supplies the password.
func (s *UserService) RegisterSuperUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.register(ctx, domain.RoleSuperUser, in.Password, in)
}

// RegisterManager creates a Manager account. Bootstrap operation like
// RegisterSuperUser.
func (s *UserService) RegisterManager(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.register(ctx, domain.RoleManager, in.Password, in)
}

// RegisterEmployee creates an Employee on behalf of a Manager. The password
// is always system-generated and dispatched out-of-band; a caller-supplied
// password is ignored. Credential delivery failure aborts the registration.
func (s *UserService) RegisterEmployee(ctx context.Context, actor domain.Actor, in ports.RegisterInput) (*domain.User, error) {
	if !actor.Role.Can(domain.OpCreateEmployee) {
		return nil, domain.ErrForbidden
	}

	// Both unique fields are checked before the secret leaves the process:
	// a mailed credential for an account that never gets created is worse
	// than a lost registration.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	}
	if _, err := s.repo.FindByPhone(ctx, in.Phone); err == nil {
		return nil, domain.ErrUserExists
	}

	secret, err := GeneratePassword()
	if err != nil {
		return nil, err
	}

	// Dispatch before persisting: the mailed secret is the only copy, so a
	// delivery failure must leave no stored account behind.
	subject, body := onboardingMail(in.Email, secret)
	if err := s.notifier.Send(ctx, subject, body, in.Email); err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("onboarding mail dispatch failed")
		return nil, fmt.Errorf("dispatch onboarding credentials: %w", err)
	}

	user, err := s.register(ctx, domain.RoleEmployee, secret, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("actor_id", actor.ID).Msg("employee registered")
	return user, nil
}

// ListUsers returns a summary of every account. SuperUser only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]ports.UserSummary, error) {
	if !actor.Role.Can(domain.OpListAllUsers) {
		return nil, domain.ErrForbidden
	}

	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

// ListEmployees returns a summary of every Employee account. Manager only;
// an empty result is reported as not found.
func (s *UserService) ListEmployees(ctx context.Context, actor domain.Actor) ([]ports.UserSummary, error) {
	if !actor.Role.Can(domain.OpListEmployees) {
		return nil, domain.ErrForbidden
	}

	employees, err := s.repo.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	return summaries(employees), nil
}

// GetEmployee retrieves one Employee by id. Manager only; ids belonging to
// non-Employee accounts resolve as not found, not as forbidden.
func (s *UserService) GetEmployee(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if !actor.Role.Can(domain.OpManageEmployee) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindEmployeeByID(ctx, id)
}

// UpdateEmployee applies a partial update. Absent fields keep their stored
// values; address sub-fields merge independently of the top-level fields.
func (s *UserService) UpdateEmployee(ctx context.Context, actor domain.Actor, id string, patch ports.EmployeePatch) (*domain.User, error) {
	if !actor.Role.Can(domain.OpManageEmployee) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(user, patch)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("actor_id", actor.ID).Msg("employee updated")
	return user, nil
}

// DeleteEmployee removes an Employee together with its address.
func (s *UserService) DeleteEmployee(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.Role.Can(domain.OpManageEmployee) {
		return domain.ErrForbidden
	}

	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("employee deleted")
	return nil
}

// ForgotPassword generates and stores a new temporary secret after the caller
// confirms the exact email on file. The secret travels only by mail.
func (s *UserService) ForgotPassword(ctx context.Context, id, claimedEmail string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Email != claimedEmail {
		return domain.ErrEmailMismatch
	}

	secret, err := GeneratePassword()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Mail first: if dispatch fails the stored hash is untouched and the old
	// password keeps working.
	subject, body := passwordResetMail(secret)
	if err := s.notifier.Send(ctx, subject, body, user.Email); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset mail dispatch failed")
		return fmt.Errorf("dispatch reset credentials: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("temporary password issued")
	return nil
}

// ResetPassword replaces the actor's own password after re-verifying the
// current one. The mismatch check runs first, regardless of whether the
// current password is correct.
func (s *UserService) ResetPassword(ctx context.Context, actor domain.Actor, id, current, newSecret, confirm string) error {
	if id != actor.ID {
		return domain.ErrForbidden
	}
	if newSecret != confirm {
		return domain.ErrPasswordMismatch
	}

	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *UserService) register(ctx context.Context, role domain.Role, password string, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		Phone:        in.Phone,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  in.DateOfBirth,
		PasswordHash: string(hash),
		Role:         role,
		IsStaff:      role == domain.RoleSuperUser,
		IsActive:     true,
		CreatedAt:    now,
		Address: domain.Address{
			Line1:   in.Address.Line1,
			Line2:   in.Address.Line2,
			City:    in.Address.City,
			State:   in.Address.State,
			Country: in.Address.Country,
			ZipCode: in.Address.ZipCode,
		},
	}

	return s.repo.Create(ctx, user)
}

func applyPatch(user *domain.User, patch ports.EmployeePatch) {
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = *patch.DateOfBirth
	}

	addr := patch.Address
	if addr.Line1 != nil {
		user.Address.Line1 = *addr.Line1
	}
	if addr.Line2 != nil {
		user.Address.Line2 = *addr.Line2
	}
	if addr.City != nil {
		user.Address.City = *addr.City
	}
	if addr.State != nil {
		user.Address.State = *addr.State
	}
	if addr.Country != nil {
		user.Address.Country = *addr.Country
	}
	if addr.ZipCode != nil {
		user.Address.ZipCode = *addr.ZipCode
	}
}

func summaries(users []domain.User) []ports.UserSummary {
	out := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ports.UserSummary{
			ID:        u.ID,
			Email:     u.Email,
			Phone:     u.Phone,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	return out
}
