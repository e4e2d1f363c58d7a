package models

import (
	"time"

	"github.com/sismaterial/helpdesk/internal/shared/constants"
)

// UserModel represents the database persistence model for users.
// PasswordHash may hold a legacy plaintext value until the next login.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;default:usuario;size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
