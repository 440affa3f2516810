package service

import (
	"context"
	"strconv"
	"time"

	"github.com/emapp/employee-manager/internal/core/domain"
	"github.com/emapp/employee-manager/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository for service tests.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	lastLoginErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	created.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindEmployeeByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok && u.Role == domain.RoleEmployee {
		return cloneUser(u), nil
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if r.lastLoginErr != nil {
		return r.lastLoginErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = at
	return nil
}

func (r *stubUserRepo) DeleteEmployee(_ context.Context, id string) error {
	if u, ok := r.users[id]; ok && u.Role == domain.RoleEmployee {
		delete(r.users, id)
		return nil
	}
	return domain.ErrEmployeeNotFound
}

var _ ports.UserRepository = (*stubUserRepo)(nil)

// stubBlacklist is an in-memory TokenBlacklist.
type stubBlacklist struct {
	revoked map[string]bool
}

func newStubBlacklist() *stubBlacklist {
	return &stubBlacklist{revoked: make(map[string]bool)}
}

func (b *stubBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	b.revoked[jti] = true
	return nil
}

func (b *stubBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return b.revoked[jti], nil
}

// stubNotifier records every dispatched message, optionally failing.
type sentMail struct {
	subject   string
	body      string
	recipient string
}

type stubNotifier struct {
	sent []sentMail
	err  error
}

func (n *stubNotifier) Send(_ context.Context, subject, body, recipient string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{subject: subject, body: body, recipient: recipient})
	return nil
}

var _ ports.Notifier = (*stubNotifier)(nil)
