package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func TestChangeStatusUseCase_SupportPersists(t *testing.T) {
	repo, store := newMemoryRepository(storedTicket(1, "Erro", time.Now()))
	updates := 0
	update := repo.UpdateFunc
	repo.UpdateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		updates++
		return update(ctx, tk)
	}
	pub := &mockPublisher{}
	metrics := &mockMetrics{}

	uc := NewChangeStatusUseCase(repo, pub, metrics, logger.Nop())
	result, err := uc.Execute(context.Background(), ChangeStatusCommand{Number: "0001", Status: "Resolvido", Caller: support})

	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "Resolvido", result.Status)
	assert.Equal(t, vo.StatusResolved, (*store)[0].Status())
	assert.Equal(t, 1, updates)
	assert.Equal(t, []string{ticket.EventTypeTicketStatusChanged}, pub.types())
	assert.Equal(t, []string{"resolved"}, metrics.statuses)
}

func TestChangeStatusUseCase_AcceptsCodes(t *testing.T) {
	repo, store := newMemoryRepository(storedTicket(1, "Erro", time.Now()))

	_, err := NewChangeStatusUseCase(repo, &mockPublisher{}, NopMetrics(), logger.Nop()).
		Execute(context.Background(), ChangeStatusCommand{Number: "1", Status: "awaiting_response", Caller: support})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusAwaitingResponse, (*store)[0].Status())
}

func TestChangeStatusUseCase_NonSupportForbidden(t *testing.T) {
	repo, store := newMemoryRepository(storedTicket(1, "Erro", time.Now()))
	repo.UpdateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		t.Fatal("update must not be called")
		return nil
	}

	_, err := NewChangeStatusUseCase(repo, &mockPublisher{}, NopMetrics(), logger.Nop()).
		Execute(context.Background(), ChangeStatusCommand{Number: "1", Status: "Resolvido", Caller: ana})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
	assert.Equal(t, vo.StatusOpen, (*store)[0].Status())
}

func TestChangeStatusUseCase_UnknownNumber(t *testing.T) {
	repo, _ := newMemoryRepository(storedTicket(1, "Erro", time.Now()))

	_, err := NewChangeStatusUseCase(repo, &mockPublisher{}, NopMetrics(), logger.Nop()).
		Execute(context.Background(), ChangeStatusCommand{Number: "9", Status: "Resolvido", Caller: support})

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestChangeStatusUseCase_InvalidStatus(t *testing.T) {
	repo, _ := newMemoryRepository(storedTicket(1, "Erro", time.Now()))

	_, err := NewChangeStatusUseCase(repo, &mockPublisher{}, NopMetrics(), logger.Nop()).
		Execute(context.Background(), ChangeStatusCommand{Number: "1", Status: "Fechado", Caller: support})

	assert.True(t, apperrors.IsValidationError(err))
}

func TestChangeStatusUseCase_SameStatusNoop(t *testing.T) {
	repo, _ := newMemoryRepository(storedTicket(1, "Erro", time.Now()))
	repo.UpdateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		t.Fatal("update must not be called")
		return nil
	}
	pub := &mockPublisher{}

	result, err := NewChangeStatusUseCase(repo, pub, NopMetrics(), logger.Nop()).
		Execute(context.Background(), ChangeStatusCommand{Number: "1", Status: "open", Caller: support})

	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, pub.types())
}
