package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/application/user/dto"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error)
}

type AuthenticateExecutor interface {
	Execute(ctx context.Context, cmd AuthenticateCommand) (*dto.SessionDTO, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context) ([]dto.UserDTO, error)
}

// SessionIssuer signs a session token for an authenticated identity.
type SessionIssuer interface {
	Issue(id authorization.Identity) (token string, expiresIn int64, err error)
}

// RoleSyncer mirrors a user's role into the authorization policy store.
type RoleSyncer interface {
	AssignRole(ctx context.Context, email string, role authorization.UserRole) error
}
