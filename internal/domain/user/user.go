package user

import (
	"fmt"
	"strings"

	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

// User is a portal account keyed by normalized email.
type User struct {
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
}

// NormalizeEmail trims and lowercases an email; login and registration both use it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a user with an already hashed password.
func NewUser(email, name, passwordHash string, role authorization.UserRole) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if role == "" {
		role = authorization.RoleUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		email:        email,
		name:         strings.TrimSpace(name),
		passwordHash: passwordHash,
		role:         role,
	}, nil
}

// ReconstructUser rebuilds a stored user; an empty or unknown role falls back to usuario.
func ReconstructUser(email, name, passwordHash, role string) *User {
	return &User{
		email:        NormalizeEmail(email),
		name:         name,
		passwordHash: passwordHash,
		role:         authorization.ParseUserRole(role),
	}
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) IsSupport() bool {
	return u.role.IsSupport()
}

// Identity is the session view of the user.
func (u *User) Identity() authorization.Identity {
	return authorization.Identity{
		Email: u.email,
		Name:  u.name,
		Role:  u.role,
	}
}

// ReplacePasswordHash is used when a legacy plaintext password is upgraded.
func (u *User) ReplacePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = hash
	return nil
}
