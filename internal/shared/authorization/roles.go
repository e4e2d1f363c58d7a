package authorization

// UserRole is persisted verbatim as the "perfil" of a user record.
type UserRole string

const (
	RoleUser    UserRole = "usuario"
	RoleSupport UserRole = "suporte"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSupport() bool {
	return r == RoleSupport
}

func (r UserRole) IsValid() bool {
	return r == RoleSupport || r == RoleUser
}

// ParseUserRole maps unknown or empty values to the default role.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
