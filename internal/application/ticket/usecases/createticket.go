package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sismaterial/helpdesk/internal/domain/attachment"
	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/biztime"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// AttachmentUpload is one file sent with a new ticket.
type AttachmentUpload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

type CreateTicketCommand struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Submitter   authorization.Identity
	Attachments []AttachmentUpload
}

type CreateTicketResult struct {
	Number            string    `json:"number"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	Attachments       []string  `json:"attachments"`
	FailedAttachments []string  `json:"failed_attachments,omitempty"`
}

type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	files      attachment.Store
	publisher  events.EventPublisher
	metrics    TicketMetrics
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	files attachment.Store,
	publisher events.EventPublisher,
	metrics TicketMetrics,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		files:      files,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "submitter", cmd.Submitter.Email)

	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError("invalid category", cmd.Category)
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError("invalid priority", cmd.Priority)
	}

	// names are checked before anything is written
	names := make([]string, 0, len(cmd.Attachments))
	for _, a := range cmd.Attachments {
		name, err := attachment.ValidateName(a.Filename)
		if err != nil {
			return nil, errors.NewValidationError("invalid attachment", err.Error())
		}
		names = append(names, name)
	}

	newTicket, err := ticket.NewTicket(
		cmd.Title,
		cmd.Description,
		category,
		priority,
		cmd.Submitter.Name,
		cmd.Submitter.Email,
		names,
		biztime.NowMinute(),
	)
	if err != nil {
		uc.logger.Warnw("rejected ticket submission", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Create(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, storageError(err, "failed to save ticket")
	}

	failed := uc.storeAttachments(ctx, newTicket.Number(), cmd.Attachments, names)

	uc.metrics.TicketCreated(category.Code(), priority.Code())
	if err := uc.publisher.Publish(ticket.NewTicketCreatedEvent(newTicket)); err != nil {
		uc.logger.Warnw("failed to publish ticket created event", "number", newTicket.Number(), "error", err)
	}

	uc.logger.Infow("ticket created successfully", "number", newTicket.Number(), "attachments", len(names))

	return &CreateTicketResult{
		Number:            newTicket.Number(),
		Status:            newTicket.Status().String(),
		CreatedAt:         newTicket.CreatedAt(),
		Attachments:       names,
		FailedAttachments: failed,
	}, nil
}

// storeAttachments writes each upload after the ticket is saved. A failed
// write is reported but never rolls the ticket back.
func (uc *CreateTicketUseCase) storeAttachments(ctx context.Context, number string, uploads []AttachmentUpload, names []string) []string {
	var failed []string
	for i, upload := range uploads {
		if err := uc.storeOne(ctx, names[i], upload); err != nil {
			uc.logger.Errorw("failed to store attachment",
				"number", number,
				"filename", names[i],
				"error", err,
			)
			uc.metrics.AttachmentStored(false)
			failed = append(failed, names[i])
			continue
		}
		uc.metrics.AttachmentStored(true)
	}
	return failed
}

func (uc *CreateTicketUseCase) storeOne(ctx context.Context, name string, upload AttachmentUpload) error {
	if upload.Open == nil {
		return fmt.Errorf("no content for %s", name)
	}
	rc, err := upload.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer rc.Close()

	return uc.files.Save(ctx, name, rc)
}
