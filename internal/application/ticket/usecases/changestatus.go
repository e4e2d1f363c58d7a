package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	Number string
	Status string
	Caller authorization.Identity
}

type ChangeStatusResult struct {
	Number  string `json:"number"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	metrics    TicketMetrics
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	metrics TicketMetrics,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"number", cmd.Number,
		"status", cmd.Status,
		"caller", cmd.Caller.Email,
	)

	if !cmd.Caller.IsSupport() {
		uc.logger.Warnw("status change denied", "number", cmd.Number, "caller", cmd.Caller.Email, "role", cmd.Caller.Role)
		return nil, errors.NewForbiddenError("only support can change ticket status")
	}

	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("invalid status", cmd.Status)
	}

	t, err := loadTicket(ctx, uc.ticketRepo, cmd.Number)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status()
	changed, err := t.ChangeStatus(newStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return &ChangeStatusResult{Number: t.Number(), Status: t.Status().String()}, nil
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket status", "number", t.Number(), "error", err)
		return nil, storageError(err, "failed to update ticket")
	}

	uc.metrics.StatusChanged(newStatus.Code())
	if err := uc.publisher.Publish(ticket.NewTicketStatusChangedEvent(t, oldStatus, cmd.Caller.Name)); err != nil {
		uc.logger.Warnw("failed to publish status changed event", "number", t.Number(), "error", err)
	}

	uc.logger.Infow("ticket status changed", "number", t.Number(), "from", oldStatus, "to", newStatus)

	return &ChangeStatusResult{
		Number:  t.Number(),
		Status:  t.Status().String(),
		Changed: true,
	}, nil
}
