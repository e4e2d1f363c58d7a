package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/domain/shared"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func TestAuthenticate_RegisteredUser(t *testing.T) {
	repo := newMockUserRepository()
	_, err := NewRegisterUserUseCase(repo, fakeHasher{}, nil, logger.Nop()).
		Execute(context.Background(), RegisterUserCommand{Email: "a@x.com", Name: "Ana", Password: "pw1"})
	require.NoError(t, err)

	sessions := &mockSessionIssuer{}
	uc := NewAuthenticateUseCase(repo, fakeHasher{}, sessions, logger.Nop())

	got, err := uc.Execute(context.Background(), AuthenticateCommand{Email: "  A@X.COM", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.User.Name)
	assert.Equal(t, "token-for-a@x.com", got.Token)
	assert.Equal(t, int64(3600), got.ExpiresIn)

	_, err = uc.Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "wrong"})
	assert.True(t, errors.IsInvalidCredentialsError(err))
}

func TestAuthenticate_UnknownEmailSameError(t *testing.T) {
	repo := newMockUserRepository(user.ReconstructUser("a@x.com", "Ana", "$2fake$pw1", ""))
	uc := NewAuthenticateUseCase(repo, fakeHasher{}, &mockSessionIssuer{}, logger.Nop())

	_, unknown := uc.Execute(context.Background(), AuthenticateCommand{Email: "b@x.com", Password: "pw1"})
	_, wrong := uc.Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "nope"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestAuthenticate_UpgradesLegacyPlaintext(t *testing.T) {
	repo := newMockUserRepository(user.ReconstructUser("a@x.com", "Ana", "segredo", ""))
	uc := NewAuthenticateUseCase(repo, fakeHasher{}, &mockSessionIssuer{}, logger.Nop())

	_, err := uc.Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "segredo"})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, "$2fake$segredo", repo.users["a@x.com"].PasswordHash())

	// second login does not rewrite again
	_, err = uc.Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)
}

func TestAuthenticate_UpgradeFailureStillLogsIn(t *testing.T) {
	repo := newMockUserRepository(user.ReconstructUser("a@x.com", "Ana", "segredo", ""))
	repo.UpdateErr = fmt.Errorf("read-only file system")

	got, err := NewAuthenticateUseCase(repo, fakeHasher{}, &mockSessionIssuer{}, logger.Nop()).
		Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "segredo"})

	require.NoError(t, err)
	assert.NotEmpty(t, got.Token)
}

func TestAuthenticate_CorruptStore(t *testing.T) {
	repo := newMockUserRepository()
	repo.GetByEmailErr = fmt.Errorf("decode users: %w", shared.ErrCorruptStore)

	_, err := NewAuthenticateUseCase(repo, fakeHasher{}, &mockSessionIssuer{}, logger.Nop()).
		Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "pw"})

	require.Error(t, err)
	assert.Equal(t, constants.ErrMsgStoreUnreadable, errors.GetAppError(err).Message)
}

func TestAuthenticate_SessionIssueError(t *testing.T) {
	repo := newMockUserRepository(user.ReconstructUser("a@x.com", "Ana", "$2fake$pw", ""))

	_, err := NewAuthenticateUseCase(repo, fakeHasher{}, &mockSessionIssuer{err: fmt.Errorf("sign")}, logger.Nop()).
		Execute(context.Background(), AuthenticateCommand{Email: "a@x.com", Password: "pw"})

	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
}

func TestListUsersUseCase(t *testing.T) {
	repo := newMockUserRepository(
		user.ReconstructUser("b@x.com", "Bia", "h", "suporte"),
		user.ReconstructUser("a@x.com", "Ana", "h", ""),
	)

	got, err := NewListUsersUseCase(repo, logger.Nop()).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a@x.com", got[0].Email)
	assert.Equal(t, "suporte", got[1].Role)
}
