package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/models"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/db"
	apperrors "github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(&models.UserModel{}, &models.TicketModel{}, &models.MessageModel{})
	require.NoError(t, err)

	return gdb
}

func createTestTicket(t *testing.T, title string) *ticket.Ticket {
	tk, err := ticket.NewTicket(title, "Test description", vo.CategorySystemData, vo.PriorityMedium,
		"Ana", "ana@x.com", []string{"a.pdf", "b.png"}, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_Create(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), logger.Nop())
	ctx := context.Background()

	t.Run("numbers are sequential", func(t *testing.T) {
		first := createTestTicket(t, "Primeiro")
		require.NoError(t, repo.Create(ctx, first))
		assert.Equal(t, 1, first.Seq())

		second := createTestTicket(t, "Segundo")
		require.NoError(t, repo.Create(ctx, second))
		assert.Equal(t, "0002", second.Number())
	})

	t.Run("round trip keeps fields", func(t *testing.T) {
		found, err := repo.GetByNumber(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Primeiro", found.Title())
		assert.Equal(t, vo.CategorySystemData, found.Category())
		assert.Equal(t, vo.PriorityMedium, found.Priority())
		assert.Equal(t, vo.StatusOpen, found.Status())
		assert.Equal(t, []string{"a.pdf", "b.png"}, found.Attachments())
		assert.True(t, found.CreatedAt().Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("unknown number returns nil", func(t *testing.T) {
		found, err := repo.GetByNumber(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTicketRepository_UpdateMessagesAndStatus(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), logger.Nop())
	ctx := context.Background()

	tk := createTestTicket(t, "Chat")
	require.NoError(t, repo.Create(ctx, tk))

	for i, text := range []string{"um", "dois", "três"} {
		msg, err := ticket.NewMessage("Ana", text, time.Date(2024, 5, 1, 13+i, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, tk.AddMessage(msg))
	}
	_, err := tk.ChangeStatus(vo.StatusAwaitingResponse)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByNumber(ctx, tk.Seq())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusAwaitingResponse, found.Status())
	require.Len(t, found.Messages(), 3)
	assert.Equal(t, "três", found.Messages()[0].Text())
	assert.Equal(t, "um", found.Messages()[2].Text())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Messages(), 3)
}

func TestTicketRepository_UpdateUnknown(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t), logger.Nop())

	tk, err := ticket.ReconstructTicket(5, "Ana", "ana@x.com", time.Now().UTC(), "A",
		vo.CategorySystem, vo.PriorityLow, "d", nil, vo.StatusOpen, nil)
	require.NoError(t, err)

	err = repo.Update(context.Background(), tk)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketRepository_CreateInsideTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, logger.Nop())
	tm := db.NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return repo.Create(ctx, createTestTicket(t, "Tx"))
	})
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.Nop())
	ctx := context.Background()

	u, err := user.NewUser("Bia@X.com", "Bia", "secret", authorization.RoleUser)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup, err := user.NewUser("bia@x.com", "Other", "x", authorization.RoleUser)
		require.NoError(t, err)
		assert.True(t, apperrors.IsConflictError(repo.Create(ctx, dup)))
	})

	t.Run("lookup normalizes email", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "  BIA@x.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Bia", found.Name())
	})

	t.Run("update replaces hash", func(t *testing.T) {
		require.NoError(t, u.ReplacePasswordHash("$2a$10$abc"))
		require.NoError(t, repo.Update(ctx, u))

		found, err := repo.GetByEmail(ctx, "bia@x.com")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$abc", found.PasswordHash())
	})

	t.Run("update unknown user", func(t *testing.T) {
		ghost, err := user.NewUser("ghost@x.com", "G", "x", authorization.RoleUser)
		require.NoError(t, err)
		assert.True(t, apperrors.IsNotFoundError(repo.Update(ctx, ghost)))
	})

	t.Run("list is ordered", func(t *testing.T) {
		other, err := user.NewUser("ana@x.com", "Ana", "x", authorization.RoleSupport)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, other))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "ana@x.com", list[0].Email())
		assert.True(t, list[0].IsSupport())
	})
}
