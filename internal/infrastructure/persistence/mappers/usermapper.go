package mappers

import (
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/models"
)

// UserMapper converts between user entities and rows.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) *user.User
	ToDomainList(models []*models.UserModel) []*user.User
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return user.ReconstructUser(model.Email, model.Name, model.PasswordHash, model.Role)
}

func (m *UserMapperImpl) ToDomainList(list []*models.UserModel) []*user.User {
	out := make([]*user.User, 0, len(list))
	for _, model := range list {
		out = append(out, m.ToDomain(model))
	}
	return out
}
