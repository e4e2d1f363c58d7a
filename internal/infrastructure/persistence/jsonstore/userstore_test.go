package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/domain/shared"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	apperrors "github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func TestUserStore_CreateAndGet(t *testing.T) {
	store := NewUserStore(filepath.Join(t.TempDir(), "usuarios.json"), logger.Nop())
	ctx := context.Background()

	u, err := user.NewUser("Ana@X.com", "Ana", "$2a$10$hash", authorization.RoleSupport)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, u))

	got, err := store.GetByEmail(ctx, " ana@x.COM ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ana@x.com", got.Email())
	assert.Equal(t, "Ana", got.Name())
	assert.True(t, got.IsSupport())

	err = store.Create(ctx, u)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestUserStore_ReadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.json")
	legacy := `{"Bia@X.com": {"nome": "Bia", "senha": "plain"}}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	store := NewUserStore(path, logger.Nop())
	ctx := context.Background()

	got, err := store.GetByEmail(ctx, "bia@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, authorization.RoleUser, got.Role())
	assert.Equal(t, "plain", got.PasswordHash())

	require.NoError(t, got.ReplacePasswordHash("$2a$10$new"))
	require.NoError(t, store.Update(ctx, got))

	again, err := store.GetByEmail(ctx, "bia@x.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$new", again.PasswordHash())

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserStore_UnknownUser(t *testing.T) {
	store := NewUserStore(filepath.Join(t.TempDir(), "usuarios.json"), logger.Nop())

	got, err := store.GetByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ana@x.com": `), 0o644))
	store := NewUserStore(path, logger.Nop())
	ctx := context.Background()

	_, err := store.GetByEmail(ctx, "ana@x.com")
	assert.ErrorIs(t, err, shared.ErrCorruptStore)

	_, err = store.List(ctx)
	assert.ErrorIs(t, err, shared.ErrCorruptStore)

	u, err := user.NewUser("bia@x.com", "Bia", "$2a$10$hash", authorization.RoleUser)
	require.NoError(t, err)
	assert.ErrorIs(t, store.Create(ctx, u), shared.ErrCorruptStore)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ana@x.com": `, string(data))
}
