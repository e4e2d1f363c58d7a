package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
)

type mockUserRepository struct {
	users         map[string]*user.User
	updates       int
	GetByEmailErr error
	UpdateErr     error
}

func newMockUserRepository(seed ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: map[string]*user.User{}}
	for _, u := range seed {
		m.users[u.Email()] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if _, ok := m.users[u.Email()]; ok {
		return errors.NewConflictError("user already exists", u.Email())
	}
	m.users[u.Email()] = u
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailErr != nil {
		return nil, m.GetByEmailErr
	}
	return m.users[email], nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.updates++
	m.users[u.Email()] = u
	return nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email() < out[j].Email() })
	return out, nil
}

// fakeHasher prefixes "$2fake$" so NeedsRehash behaves like bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "$2fake$" + password, nil
}

func (fakeHasher) Verify(password, stored string) error {
	if stored == "$2fake$"+password || stored == password {
		return nil
	}
	return fmt.Errorf("password verification failed")
}

func (fakeHasher) NeedsRehash(stored string) bool {
	return len(stored) < 2 || stored[:2] != "$2"
}

type mockSessionIssuer struct {
	issued []authorization.Identity
	err    error
}

func (m *mockSessionIssuer) Issue(id authorization.Identity) (string, int64, error) {
	if m.err != nil {
		return "", 0, m.err
	}
	m.issued = append(m.issued, id)
	return "token-for-" + id.Email, 3600, nil
}

type mockRoleSyncer struct {
	assigned map[string]authorization.UserRole
}

func (m *mockRoleSyncer) AssignRole(ctx context.Context, email string, role authorization.UserRole) error {
	if m.assigned == nil {
		m.assigned = map[string]authorization.UserRole{}
	}
	m.assigned[email] = role
	return nil
}
