package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/application/user/dto"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, storageError(err, "failed to list users")
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDTO(u))
	}
	return out, nil
}
