package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/application/ticket/dto"
	"github.com/sismaterial/helpdesk/internal/domain/attachment"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Number string
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	files      attachment.Store
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, files attachment.Store, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		files:      files,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, query.Number)
	if err != nil {
		return nil, err
	}

	available := make(map[string]bool, len(t.Attachments()))
	for _, name := range t.Attachments() {
		ok, err := uc.files.Exists(ctx, name)
		if err != nil {
			uc.logger.Warnw("failed to check attachment", "number", t.Number(), "filename", name, "error", err)
		}
		if !ok {
			uc.logger.Warnw("attachment missing from storage", "number", t.Number(), "filename", name)
		}
		available[name] = ok
	}

	return dto.ToTicketDTO(t, available), nil
}
