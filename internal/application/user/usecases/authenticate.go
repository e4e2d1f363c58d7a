package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/application/user/dto"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type AuthenticateCommand struct {
	Email     string
	Password  string
	IPAddress string
}

type AuthenticateUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	sessions       SessionIssuer
	logger         logger.Interface
}

func NewAuthenticateUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	sessions SessionIssuer,
	logger logger.Interface,
) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		sessions:       sessions,
		logger:         logger,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) (*dto.SessionDTO, error) {
	email := user.NormalizeEmail(cmd.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, storageError(err, "failed to authenticate")
	}

	// unknown email and wrong password look the same to the caller
	if existing == nil {
		uc.logger.Warnw("login failed", "email", email, "ip", cmd.IPAddress, "reason", "unknown email")
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := uc.passwordHasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		uc.logger.Warnw("login failed", "email", email, "ip", cmd.IPAddress, "reason", "bad password")
		return nil, errors.NewInvalidCredentialsError()
	}

	if uc.passwordHasher.NeedsRehash(existing.PasswordHash()) {
		uc.upgradePassword(ctx, existing, cmd.Password)
	}

	token, expiresIn, err := uc.sessions.Issue(existing.Identity())
	if err != nil {
		uc.logger.Errorw("failed to issue session", "email", email, "error", err)
		return nil, errors.NewInternalError("failed to create session")
	}

	uc.logger.Infow("user logged in successfully", "email", email, "role", existing.Role())

	return &dto.SessionDTO{
		User:      dto.ToUserDTO(existing),
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// upgradePassword replaces a legacy plaintext password with a hash. A failure
// here does not fail the login.
func (uc *AuthenticateUseCase) upgradePassword(ctx context.Context, u *user.User, password string) {
	hash, err := uc.passwordHasher.Hash(password)
	if err != nil {
		uc.logger.Errorw("failed to hash legacy password", "email", u.Email(), "error", err)
		return
	}
	if err := u.ReplacePasswordHash(hash); err != nil {
		uc.logger.Errorw("failed to replace legacy password", "email", u.Email(), "error", err)
		return
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save upgraded password", "email", u.Email(), "error", err)
		return
	}
	uc.logger.Infow("upgraded legacy plaintext password", "email", u.Email())
}
