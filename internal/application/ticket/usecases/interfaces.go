package usecases

import (
	"context"

	"github.com/sismaterial/helpdesk/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type AddMessageExecutor interface {
	Execute(ctx context.Context, cmd AddMessageCommand) (*dto.MessageDTO, error)
}

type DownloadAttachmentExecutor interface {
	Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error)
}

// TicketMetrics records ticket activity counters.
type TicketMetrics interface {
	TicketCreated(category, priority string)
	StatusChanged(status string)
	MessageAdded()
	AttachmentStored(ok bool)
}

type nopMetrics struct{}

func (nopMetrics) TicketCreated(string, string) {}
func (nopMetrics) StatusChanged(string)         {}
func (nopMetrics) MessageAdded()                {}
func (nopMetrics) AttachmentStored(bool)        {}

// NopMetrics discards every observation.
func NopMetrics() TicketMetrics {
	return nopMetrics{}
}
