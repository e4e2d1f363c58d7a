package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	// Create fails with a conflict error when the email is taken.
	Create(ctx context.Context, user *User) error

	// GetByEmail returns nil, nil when the email is unknown.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update replaces the stored record for user.Email().
	Update(ctx context.Context, user *User) error

	// List returns every user ordered by email.
	List(ctx context.Context) ([]*User, error)
}
