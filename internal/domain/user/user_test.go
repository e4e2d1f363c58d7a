package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

func TestNewUser_NormalizesEmail(t *testing.T) {
	u, err := NewUser("  Ana@X.com ", " Ana ", "$2a$hash", "")
	require.NoError(t, err)

	assert.Equal(t, "ana@x.com", u.Email())
	assert.Equal(t, "Ana", u.Name())
	assert.Equal(t, authorization.RoleUser, u.Role())
	assert.False(t, u.IsSupport())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("   ", "Ana", "hash", authorization.RoleUser)
	assert.Error(t, err)

	_, err = NewUser("a@x.com", "Ana", "", authorization.RoleUser)
	assert.Error(t, err)

	_, err = NewUser("a@x.com", "Ana", "hash", authorization.UserRole("admin"))
	assert.Error(t, err)
}

func TestReconstructUser_DefaultsRole(t *testing.T) {
	u := ReconstructUser("sup@x.com", "Suporte", "pw", "suporte")
	assert.True(t, u.IsSupport())

	u = ReconstructUser("a@x.com", "Ana", "pw", "")
	assert.Equal(t, authorization.RoleUser, u.Role())
}

func TestUser_Identity(t *testing.T) {
	u := ReconstructUser("a@x.com", "Ana", "pw", "suporte")

	id := u.Identity()
	assert.Equal(t, "a@x.com", id.Email)
	assert.Equal(t, "Ana", id.Name)
	assert.True(t, id.IsSupport())
}

func TestUser_ReplacePasswordHash(t *testing.T) {
	u := ReconstructUser("a@x.com", "Ana", "pw1", "")

	require.NoError(t, u.ReplacePasswordHash("$2a$new"))
	assert.Equal(t, "$2a$new", u.PasswordHash())
	assert.Error(t, u.ReplacePasswordHash(""))
}
