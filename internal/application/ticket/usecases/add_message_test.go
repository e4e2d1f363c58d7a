package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	apperrors "github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func TestAddMessageUseCase_InsertsAtHead(t *testing.T) {
	seed := storedTicket(1, "Erro", time.Now())
	older, err := ticket.NewMessage("Ana", "mensagem antiga", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, seed.AddMessage(older))

	repo, store := newMemoryRepository(seed)
	pub := &mockPublisher{}
	metrics := &mockMetrics{}

	uc := NewAddMessageUseCase(repo, pub, metrics, logger.Nop())
	got, err := uc.Execute(context.Background(), AddMessageCommand{Number: "1", Text: "  hello  ", Author: support})

	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "Suporte", got.Author)

	msgs := (*store)[0].Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Text())
	assert.Equal(t, "mensagem antiga", msgs[1].Text())
	assert.Equal(t, []string{ticket.EventTypeTicketMessageAdded}, pub.types())
	assert.Equal(t, 1, metrics.messages)
}

func TestAddMessageUseCase_BlankRejected(t *testing.T) {
	repo, store := newMemoryRepository(storedTicket(1, "Erro", time.Now()))
	repo.UpdateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		t.Fatal("update must not be called")
		return nil
	}

	_, err := NewAddMessageUseCase(repo, &mockPublisher{}, NopMetrics(), logger.Nop()).
		Execute(context.Background(), AddMessageCommand{Number: "1", Text: " \n\t ", Author: ana})

	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, (*store)[0].Messages())
}

func TestAddMessageUseCase_UnknownTicket(t *testing.T) {
	repo, _ := newMemoryRepository()

	_, err := NewAddMessageUseCase(repo, &mockPublisher{}, NopMetrics(), logger.Nop()).
		Execute(context.Background(), AddMessageCommand{Number: "3", Text: "oi", Author: ana})

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestAddMessageUseCase_UpdateError(t *testing.T) {
	repo, _ := newMemoryRepository(storedTicket(1, "Erro", time.Now()))
	repo.UpdateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		return errors.New("rename failed")
	}
	pub := &mockPublisher{}

	_, err := NewAddMessageUseCase(repo, pub, NopMetrics(), logger.Nop()).
		Execute(context.Background(), AddMessageCommand{Number: "1", Text: "oi", Author: ana})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
	assert.Empty(t, pub.types())
}
