package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/application/ticket/dto"
	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/biztime"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type AddMessageCommand struct {
	Number string
	Text   string
	Author authorization.Identity
}

type AddMessageUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	metrics    TicketMetrics
	logger     logger.Interface
}

func NewAddMessageUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	metrics TicketMetrics,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*dto.MessageDTO, error) {
	msg, err := ticket.NewMessage(cmd.Author.Name, cmd.Text, biztime.NowMinute())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := loadTicket(ctx, uc.ticketRepo, cmd.Number)
	if err != nil {
		return nil, err
	}

	if err := t.AddMessage(msg); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to save message", "number", t.Number(), "error", err)
		return nil, storageError(err, "failed to save message")
	}

	uc.metrics.MessageAdded()
	if err := uc.publisher.Publish(ticket.NewTicketMessageAddedEvent(t, msg, cmd.Author.Email)); err != nil {
		uc.logger.Warnw("failed to publish message added event", "number", t.Number(), "error", err)
	}

	uc.logger.Infow("message added to ticket", "number", t.Number(), "author", cmd.Author.Email)

	result := dto.ToMessageDTO(msg)
	return &result, nil
}
