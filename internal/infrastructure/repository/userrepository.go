package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/models"
	"github.com/sismaterial/helpdesk/internal/shared/db"
	apperrors "github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// UserRepository implements user.Repository with gorm.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("user already exists", u.Email())
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infow("user created successfully", "id", model.ID, "email", model.Email)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("email = ?", user.NormalizeEmail(email)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("email = ?", model.Email).
		Updates(map[string]any{
			"name":          model.Name,
			"password_hash": model.PasswordHash,
			"role":          model.Role,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "email", model.Email, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// RowsAffected is 0 for identical values on MySQL, so confirm the row exists
		existing, err := r.GetByEmail(ctx, model.Email)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NewNotFoundError("user not found", model.Email)
		}
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var rows []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Order("email ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.mapper.ToDomainList(rows), nil
}
