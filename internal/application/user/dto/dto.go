package dto

import "github.com/sismaterial/helpdesk/internal/domain/user"

type UserDTO struct {
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		Email: u.Email(),
		Name:  u.Name(),
		Role:  u.Role().String(),
	}
}

// SessionDTO is returned by a successful login.
type SessionDTO struct {
	User      UserDTO `json:"user"`
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expires_in"`
}
