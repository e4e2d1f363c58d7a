package usecases

import (
	"context"
	"strings"

	"github.com/sismaterial/helpdesk/internal/application/user/dto"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type RegisterUserUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	roles          RoleSyncer
	logger         logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	roles RoleSyncer,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		roles:          roles,
		logger:         logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error) {
	email := user.NormalizeEmail(cmd.Email)
	if email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	if cmd.Password == "" {
		return nil, errors.NewValidationError("password is required")
	}

	role := authorization.RoleUser
	if r := strings.TrimSpace(cmd.Role); r != "" {
		role = authorization.UserRole(r)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role", r)
		}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "email", email, "error", err)
		return nil, storageError(err, "failed to register user")
	}
	if existing != nil {
		return nil, errors.NewConflictError("user already exists", email)
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	newUser, err := user.NewUser(email, cmd.Name, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		uc.logger.Errorw("failed to create user", "email", email, "error", err)
		return nil, storageError(err, "failed to register user")
	}

	if uc.roles != nil {
		if err := uc.roles.AssignRole(ctx, newUser.Email(), newUser.Role()); err != nil {
			uc.logger.Warnw("failed to sync role policy", "email", newUser.Email(), "error", err)
		}
	}

	uc.logger.Infow("user registered", "email", newUser.Email(), "role", newUser.Role())

	result := dto.ToUserDTO(newUser)
	return &result, nil
}
